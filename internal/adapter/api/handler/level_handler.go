package handler

import (
	"github.com/labstack/echo/v4"

	"dailyrewards/pkg/response"
)

type LevelHandler struct {
	levels LevelService
}

func NewLevelHandler(levels LevelService) *LevelHandler {
	return &LevelHandler{levels: levels}
}

func (h *LevelHandler) GetLevel(c echo.Context) error {
	overview, err := h.levels.GetLevel(c.Request().Context(), currentUser(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, overview)
}
