package handler

import (
	"github.com/labstack/echo/v4"

	"dailyrewards/internal/adapter/api/middleware"
	"dailyrewards/internal/usecase"
	"dailyrewards/pkg/logger"
	"dailyrewards/pkg/response"
)

type LoginHandler struct {
	users ProfileSyncer
	login DailyLoginService
}

func NewLoginHandler(users ProfileSyncer, login DailyLoginService) *LoginHandler {
	return &LoginHandler{users: users, login: login}
}

// ProcessLogin refreshes the profile from the token, then claims the daily bonus.
func (h *LoginHandler) ProcessLogin(c echo.Context) error {
	ctx := c.Request().Context()
	uid := currentUser(c)

	_, err := h.users.SyncProfile(ctx, uid, usecase.SyncProfileInput{
		Email:       contextString(c, middleware.ContextEmail),
		DisplayName: contextString(c, middleware.ContextName),
		AvatarURL:   contextString(c, middleware.ContextAvatar),
	})
	if err != nil {
		logger.Error("Failed to sync profile for %s: %v", uid, err)
		return response.Error(c, err)
	}

	result, err := h.login.ProcessLogin(ctx, uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}

func (h *LoginHandler) GetStatus(c echo.Context) error {
	status, err := h.login.GetLoginStatus(c.Request().Context(), currentUser(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, status)
}
