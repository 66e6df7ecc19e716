package handler

import (
	"github.com/labstack/echo/v4"

	"dailyrewards/internal/domain/entity"
	"dailyrewards/pkg/response"
	"dailyrewards/pkg/utils"
)

type RankingHandler struct {
	rankings RankingService
}

func NewRankingHandler(rankings RankingService) *RankingHandler {
	return &RankingHandler{rankings: rankings}
}

func (h *RankingHandler) GetRanking(c echo.Context) error {
	rankingType := entity.RankingType(c.Param("type"))
	limit := utils.QueryInt(c, "limit", 0)

	entries, err := h.rankings.Get(c.Request().Context(), rankingType, limit)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"type":    rankingType,
		"entries": entries,
	})
}
