package handler

import (
	"github.com/labstack/echo/v4"

	"dailyrewards/pkg/response"
)

type UserHandler struct {
	users ProfileSyncer
}

func NewUserHandler(users ProfileSyncer) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := h.users.GetUserProfile(c.Request().Context(), currentUser(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"id":           user.ID,
		"email":        user.Email,
		"display_name": user.Name(),
		"avatar_url":   user.AvatarURL,
		"created_at":   user.CreatedAt,
	})
}
