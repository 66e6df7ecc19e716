package usecase

import (
	"context"
	"time"

	"dailyrewards/internal/domain/entity"
	"dailyrewards/internal/domain/repository"
	"dailyrewards/pkg/errors"
	"dailyrewards/pkg/logger"
)

// CatalogUseCase seeds the reward item and achievement catalogs.
type CatalogUseCase struct {
	itemRepo        repository.RewardItemRepository
	achievementRepo repository.AchievementRepository
	clock           Clock
	logger          logger.Logger
}

func NewCatalogUseCase(
	itemRepo repository.RewardItemRepository,
	achievementRepo repository.AchievementRepository,
	clock Clock,
	log logger.Logger,
) *CatalogUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &CatalogUseCase{
		itemRepo:        itemRepo,
		achievementRepo: achievementRepo,
		clock:           clock,
		logger:          log,
	}
}

// EnsureDefaults writes the built-in catalogs when the store has none.
// Existing catalogs are never touched.
func (uc *CatalogUseCase) EnsureDefaults(ctx context.Context) error {
	now := uc.clock()

	items, err := uc.itemRepo.ListActive(ctx)
	if err != nil {
		return errors.Internal("Failed to list reward items", err)
	}
	if len(items) == 0 {
		defaults := DefaultRewardItems()
		for i := range defaults {
			defaults[i].CreatedAt = now
		}
		if err := uc.itemRepo.SaveAll(ctx, defaults); err != nil {
			return errors.Internal("Failed to seed reward items", err)
		}
		uc.logger.Info("seeded reward item catalog", "count", len(defaults))
	}

	defs, err := uc.achievementRepo.ListActive(ctx)
	if err != nil {
		return errors.Internal("Failed to list achievements", err)
	}
	if len(defs) == 0 {
		defaults := DefaultAchievements()
		for i := range defaults {
			defaults[i].CreatedAt = now
		}
		if err := uc.achievementRepo.SaveDefinitions(ctx, defaults); err != nil {
			return errors.Internal("Failed to seed achievements", err)
		}
		uc.logger.Info("seeded achievement catalog", "count", len(defaults))
	}

	return nil
}

func (uc *CatalogUseCase) RewardItems(ctx context.Context) ([]entity.RewardItem, error) {
	items, err := uc.itemRepo.ListActive(ctx)
	if err != nil {
		return nil, errors.Internal("Failed to list reward items", err)
	}
	return items, nil
}

// DefaultRewardItems lists every item the reward rules can hand out.
func DefaultRewardItems() []entity.RewardItem {
	return []entity.RewardItem{
		{ID: "weekly-chest", Name: "Weekly Chest", Description: "Reward for a 7-day login streak", Rarity: entity.RarityRare, Type: entity.ItemTypeCosmetic, IsActive: true},
		{ID: "monthly-chest", Name: "Monthly Chest", Description: "Reward for a 30-day login streak", Rarity: entity.RarityLegendary, Type: entity.ItemTypeCosmetic, IsActive: true},
		{ID: "milestone-chest", Name: "Milestone Chest", Description: "Reward for every 10 days of streak", Rarity: entity.RarityEpic, Type: entity.ItemTypeCosmetic, IsActive: true},
		{ID: "rare-chest", Name: "Rare Chest", Description: "Won on the daily roulette", Rarity: entity.RarityEpic, Type: entity.ItemTypeGem, IsActive: true},
		{ID: "legendary-chest", Name: "Legendary Chest", Description: "The roulette jackpot", Rarity: entity.RarityLegendary, Type: entity.ItemTypeGem, IsActive: true},
		{ID: "speed-boost-legendary", Name: "Legendary Speed Boost", Rarity: entity.RarityLegendary, Type: entity.ItemTypeBoost, IsActive: true},
		{ID: "speed-boost-epic", Name: "Epic Speed Boost", Rarity: entity.RarityEpic, Type: entity.ItemTypeBoost, IsActive: true},
		{ID: "speed-boost-rare", Name: "Rare Speed Boost", Rarity: entity.RarityRare, Type: entity.ItemTypeBoost, IsActive: true},
		{ID: "rare-item-pack", Name: "Rare Item Pack", Description: "Guaranteed item of rare or better", Rarity: entity.RarityRare, Type: entity.ItemTypeCoin, IsActive: true},
		{ID: "legendary-item", Name: "Legendary Item", Description: "An item of the highest rarity", Rarity: entity.RarityLegendary, Type: entity.ItemTypeCosmetic, IsActive: true},
	}
}

func DefaultAchievements() []entity.AchievementDefinition {
	def := func(id, name, desc string, cat entity.AchievementCategory, cond entity.ConditionType, threshold, exp, points, order int) entity.AchievementDefinition {
		return entity.AchievementDefinition{
			ID:                 id,
			Name:               name,
			Description:        desc,
			Category:           cat,
			ConditionType:      cond,
			ConditionThreshold: threshold,
			RewardExp:          exp,
			Points:             points,
			SortOrder:          order,
			IsActive:           true,
		}
	}

	login := entity.AchievementCategoryLogin
	game := entity.AchievementCategoryGame
	collection := entity.AchievementCategoryCollection
	level := entity.AchievementCategoryLevel
	special := entity.AchievementCategorySpecial

	defs := []entity.AchievementDefinition{
		def("first-login", "Welcome!", "Log in for the first time", login, entity.ConditionTotalLogins, 1, 10, 5, 1),
		def("login-7-days", "Regular", "Log in on 7 different days", login, entity.ConditionTotalLogins, 7, 50, 10, 2),
		def("login-30-days", "Devoted", "Log in on 30 different days", login, entity.ConditionTotalLogins, 30, 200, 25, 3),
		def("login-100-days", "Centurion", "Log in on 100 different days", login, entity.ConditionTotalLogins, 100, 500, 50, 4),
		def("streak-7", "On a Roll", "Reach a 7-day login streak", login, entity.ConditionLoginStreak, 7, 100, 15, 5),
		def("streak-30", "Unstoppable", "Reach a 30-day login streak", login, entity.ConditionLoginStreak, 30, 300, 40, 6),

		def("roulette-10", "Spinner", "Spin the roulette 10 times", game, entity.ConditionRoulettePlays, 10, 50, 10, 10),
		def("roulette-50", "High Roller", "Spin the roulette 50 times", game, entity.ConditionRoulettePlays, 50, 150, 25, 11),
		def("roulette-100", "Wheel Master", "Spin the roulette 100 times", game, entity.ConditionRoulettePlays, 100, 300, 50, 12),
		def("roulette-legendary", "Jackpot", "Win a legendary reward on the roulette", special, entity.ConditionRouletteLegendary, 1, 200, 30, 13),

		def("mini-game-10", "Quick Fingers", "Play the reaction game 10 times", game, entity.ConditionMiniGamePlays, 10, 50, 10, 20),
		def("mini-game-50", "Reflex Veteran", "Play the reaction game 50 times", game, entity.ConditionMiniGamePlays, 50, 150, 25, 21),
		def("score-3000", "Sharp", "Score 3000 points in one run", game, entity.ConditionMiniGameScore, 3000, 75, 15, 22),
		def("score-4500", "Lightning", "Score 4500 points in one run", game, entity.ConditionMiniGameScore, 4500, 200, 35, 23),
		def("perfect-5", "Perfectionist", "Reach a perfect score 5 times", special, entity.ConditionMiniGamePerfect, 5, 150, 30, 24),

		def("level-10", "Rising Star", "Reach level 10", level, entity.ConditionLevelReached, 10, 100, 15, 30),
		def("level-25", "Seasoned", "Reach level 25", level, entity.ConditionLevelReached, 25, 250, 30, 31),
		def("level-50", "Legend", "Reach level 50", level, entity.ConditionLevelReached, 50, 500, 60, 32),
		def("exp-10000", "Experienced", "Earn 10,000 experience", level, entity.ConditionExpEarned, 10000, 100, 20, 33),
		def("exp-50000", "Sage", "Earn 50,000 experience", level, entity.ConditionExpEarned, 50000, 300, 50, 34),

		def("items-10", "Collector", "Collect 10 items", collection, entity.ConditionItemsCollected, 10, 50, 10, 40),
		def("items-50", "Hoarder", "Collect 50 items", collection, entity.ConditionItemsCollected, 50, 150, 25, 41),
		def("items-100", "Curator", "Collect 100 items", collection, entity.ConditionItemsCollected, 100, 300, 50, 42),
	}

	rare := def("rare-items-5", "Eye for Quality", "Collect 5 rare items", collection, entity.ConditionItemsCollectedRarity, 5, 100, 20, 43)
	rare.ConditionSubValue = string(entity.RarityRare)
	legendary := def("legendary-items-1", "Touched by Legend", "Collect a legendary item", collection, entity.ConditionItemsCollectedRarity, 1, 150, 30, 44)
	legendary.ConditionSubValue = string(entity.RarityLegendary)

	return append(defs, rare, legendary)
}
