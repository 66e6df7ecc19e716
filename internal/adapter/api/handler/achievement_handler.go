package handler

import (
	"github.com/labstack/echo/v4"

	"dailyrewards/internal/usecase"
	"dailyrewards/pkg/response"
)

type AchievementHandler struct {
	achievements usecase.AchievementUseCase
}

func NewAchievementHandler(achievements usecase.AchievementUseCase) *AchievementHandler {
	return &AchievementHandler{achievements: achievements}
}

func (h *AchievementHandler) List(c echo.Context) error {
	list, err := h.achievements.List(c.Request().Context(), currentUser(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, list)
}

func (h *AchievementHandler) Check(c echo.Context) error {
	unlocked, err := h.achievements.CheckAndUnlock(c.Request().Context(), currentUser(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"unlocked": unlocked,
		"count":    len(unlocked),
	})
}
