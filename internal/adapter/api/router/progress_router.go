package router

import (
	"github.com/labstack/echo/v4"

	"dailyrewards/internal/adapter/api/handler"
)

// SetupProgressRouter covers level and achievement endpoints.
func SetupProgressRouter(g *echo.Group) {
	levelHandler := handler.GetLevelHandler()
	achievementHandler := handler.GetAchievementHandler()

	g.GET("/level", levelHandler.GetLevel)

	achievements := g.Group("/achievements")
	achievements.GET("", achievementHandler.List)
	achievements.POST("/check", achievementHandler.Check)
}
