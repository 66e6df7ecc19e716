package handler

import (
	"github.com/labstack/echo/v4"

	"dailyrewards/pkg/errors"
	"dailyrewards/pkg/response"
)

type MiniGameHandler struct {
	miniGame MiniGameService
}

func NewMiniGameHandler(miniGame MiniGameService) *MiniGameHandler {
	return &MiniGameHandler{miniGame: miniGame}
}

type submitRunRequest struct {
	ReactionTimes []int `json:"reaction_times" validate:"required,len=5,dive,gt=0,max=10000"`
}

func (h *MiniGameHandler) Start(c echo.Context) error {
	return response.Success(c, h.miniGame.Start())
}

func (h *MiniGameHandler) GetStatus(c echo.Context) error {
	status, err := h.miniGame.Status(c.Request().Context(), currentUser(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, status)
}

func (h *MiniGameHandler) Submit(c echo.Context) error {
	var req submitRunRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.miniGame.Submit(c.Request().Context(), currentUser(c), req.ReactionTimes)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}
