package router

import (
	"github.com/labstack/echo/v4"

	"dailyrewards/internal/adapter/api/middleware"
	"dailyrewards/internal/infrastructure/ratelimit"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimit *middleware.RateLimitMiddleware) {
	SetupHealthRouter(e)

	v1 := e.Group("/v1")
	SetupWebSocketRouter(v1, authMiddleware)

	protected := v1.Group("")
	protected.Use(authMiddleware.Authenticate)
	protected.Use(rateLimit.Limit(ratelimit.ActionAPI))

	SetupUserRouter(protected)
	SetupLoginRouter(protected, rateLimit)
	SetupRouletteRouter(protected, rateLimit)
	SetupMiniGameRouter(protected, rateLimit)
	SetupProgressRouter(protected)
	SetupInventoryRouter(protected, rateLimit)
	SetupRankingRouter(protected)
}
