package router

import (
	"github.com/labstack/echo/v4"

	"dailyrewards/internal/adapter/api/handler"
	"dailyrewards/internal/adapter/api/middleware"
	"dailyrewards/internal/infrastructure/ratelimit"
)

func SetupLoginRouter(g *echo.Group, rateLimit *middleware.RateLimitMiddleware) {
	loginHandler := handler.GetLoginHandler()

	login := g.Group("/login")
	login.POST("/daily", loginHandler.ProcessLogin, rateLimit.Limit(ratelimit.ActionLogin))
	login.GET("/status", loginHandler.GetStatus)
}
