package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type HealthHandler struct {
	storage   string
	startedAt time.Time
}

func NewHealthHandler(storage string) *HealthHandler {
	return &HealthHandler{storage: storage, startedAt: time.Now()}
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"storage": h.storage,
		"time":    time.Now().Format(time.RFC3339),
		"uptime":  time.Since(h.startedAt).Round(time.Second).String(),
	})
}
