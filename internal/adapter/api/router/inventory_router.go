package router

import (
	"github.com/labstack/echo/v4"

	"dailyrewards/internal/adapter/api/handler"
	"dailyrewards/internal/adapter/api/middleware"
	"dailyrewards/internal/infrastructure/ratelimit"
)

func SetupInventoryRouter(g *echo.Group, rateLimit *middleware.RateLimitMiddleware) {
	inventoryHandler := handler.GetInventoryHandler()

	inventory := g.Group("/inventory")
	inventory.GET("", inventoryHandler.List)
	inventory.GET("/stats", inventoryHandler.GetStats)
	inventory.POST("/:id/use", inventoryHandler.UseItem, rateLimit.Limit(ratelimit.ActionItemUse))
	inventory.DELETE("/:id", inventoryHandler.DeleteItem)
}
