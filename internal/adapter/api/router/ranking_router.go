package router

import (
	"github.com/labstack/echo/v4"

	"dailyrewards/internal/adapter/api/handler"
)

func SetupRankingRouter(g *echo.Group) {
	rankingHandler := handler.GetRankingHandler()

	g.GET("/rankings/:type", rankingHandler.GetRanking)
}
