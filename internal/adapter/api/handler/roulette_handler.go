package handler

import (
	"github.com/labstack/echo/v4"

	"dailyrewards/pkg/response"
)

type RouletteHandler struct {
	roulette RouletteService
}

func NewRouletteHandler(roulette RouletteService) *RouletteHandler {
	return &RouletteHandler{roulette: roulette}
}

func (h *RouletteHandler) GetRewards(c echo.Context) error {
	return response.Success(c, h.roulette.Rewards())
}

func (h *RouletteHandler) GetStatus(c echo.Context) error {
	status, err := h.roulette.Status(c.Request().Context(), currentUser(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, status)
}

func (h *RouletteHandler) Spin(c echo.Context) error {
	result, err := h.roulette.Spin(c.Request().Context(), currentUser(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}
