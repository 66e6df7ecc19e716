package router

import (
	"github.com/labstack/echo/v4"

	"dailyrewards/internal/adapter/api/handler"
)

func SetupUserRouter(g *echo.Group) {
	userHandler := handler.GetUserHandler()

	g.GET("/users/me", userHandler.GetProfile)
}
