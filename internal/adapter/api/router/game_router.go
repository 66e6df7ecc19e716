package router

import (
	"github.com/labstack/echo/v4"

	"dailyrewards/internal/adapter/api/handler"
	"dailyrewards/internal/adapter/api/middleware"
	"dailyrewards/internal/infrastructure/ratelimit"
)

func SetupRouletteRouter(g *echo.Group, rateLimit *middleware.RateLimitMiddleware) {
	rouletteHandler := handler.GetRouletteHandler()

	roulette := g.Group("/roulette")
	roulette.GET("/rewards", rouletteHandler.GetRewards)
	roulette.GET("/status", rouletteHandler.GetStatus)
	roulette.POST("/spin", rouletteHandler.Spin, rateLimit.Limit(ratelimit.ActionGameAction))
}

func SetupMiniGameRouter(g *echo.Group, rateLimit *middleware.RateLimitMiddleware) {
	miniGameHandler := handler.GetMiniGameHandler()

	miniGame := g.Group("/mini-game")
	miniGame.GET("/start", miniGameHandler.Start)
	miniGame.GET("/status", miniGameHandler.GetStatus)
	miniGame.POST("/submit", miniGameHandler.Submit, rateLimit.Limit(ratelimit.ActionGameAction))
}
