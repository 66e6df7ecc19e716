package usecase

import (
	"context"
	"fmt"

	"dailyrewards/internal/domain/entity"
	"dailyrewards/internal/domain/repository"
	"dailyrewards/internal/domain/service"
)

// StatsCollector builds the UserStats snapshot achievements are evaluated against.
type StatsCollector struct {
	streakRepo    repository.LoginStreakRepository
	activityRepo  repository.DailyActivityRepository
	inventoryRepo repository.InventoryRepository
	itemRepo      repository.RewardItemRepository
	levelRepo     repository.UserLevelRepository
}

func NewStatsCollector(
	streakRepo repository.LoginStreakRepository,
	activityRepo repository.DailyActivityRepository,
	inventoryRepo repository.InventoryRepository,
	itemRepo repository.RewardItemRepository,
	levelRepo repository.UserLevelRepository,
) *StatsCollector {
	return &StatsCollector{
		streakRepo:    streakRepo,
		activityRepo:  activityRepo,
		inventoryRepo: inventoryRepo,
		itemRepo:      itemRepo,
		levelRepo:     levelRepo,
	}
}

func (s *StatsCollector) Collect(ctx context.Context, userID string) (entity.UserStats, error) {
	stats := entity.UserStats{
		ItemsByRarity: make(map[entity.Rarity]int, len(entity.Rarities)),
		Level:         1,
	}

	streak, err := s.streakRepo.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		stats.LoginStreak = streak.CurrentStreak
		stats.TotalLogins = streak.TotalLoginDays
	case !isNotFound(err):
		return stats, fmt.Errorf("failed to get login streak: %w", err)
	}

	activities, err := s.activityRepo.ListByUser(ctx, userID)
	if err != nil {
		return stats, fmt.Errorf("failed to list daily activities: %w", err)
	}
	for _, a := range activities {
		if a.RouletteCompleted {
			stats.RoulettePlays++
		}
		if a.MiniGameCompleted {
			stats.MiniGamePlays++
			stats.MiniGameHighScore = max(stats.MiniGameHighScore, a.MiniGameScore)
			if service.IsPerfect(a.MiniGameScore) {
				stats.MiniGamePerfectScores++
			}
		}
	}

	items, err := s.inventoryRepo.ListByUser(ctx, userID)
	if err != nil {
		return stats, fmt.Errorf("failed to list inventory: %w", err)
	}
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.RewardItemID)
	}
	catalog, err := s.itemRepo.GetByIDs(ctx, ids)
	if err != nil {
		return stats, fmt.Errorf("failed to load reward items: %w", err)
	}
	for _, it := range items {
		stats.ItemsCollected += it.Quantity
		catalogItem, ok := catalog[it.RewardItemID]
		if !ok {
			continue
		}
		stats.ItemsByRarity[catalogItem.Rarity] += it.Quantity
		if catalogItem.Rarity == entity.RarityLegendary && it.Source == entity.SourceRoulette {
			stats.RouletteLegendaryWins += it.Quantity
		}
	}

	level, err := s.levelRepo.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		stats.Level = level.CurrentLevel
		stats.TotalExp = level.TotalExp
	case !isNotFound(err):
		return stats, fmt.Errorf("failed to get user level: %w", err)
	}

	return stats, nil
}
