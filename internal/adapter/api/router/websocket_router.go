package router

import (
	"github.com/labstack/echo/v4"

	"dailyrewards/internal/adapter/api/handler"
	"dailyrewards/internal/adapter/api/middleware"
)

// SetupWebSocketRouter authenticates from ?token= since browsers cannot set headers on upgrades.
func SetupWebSocketRouter(g *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	wsHandler := handler.GetWebSocketHandler()
	if wsHandler == nil {
		return
	}

	g.GET("/ws", wsHandler.HandleWebSocket, authMiddleware.AuthenticateQuery)
}
