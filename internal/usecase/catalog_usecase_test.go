package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailyrewards/internal/domain/entity"
	"dailyrewards/internal/domain/service"
)

func TestEnsureDefaultsSeedsEmptyCatalogs(t *testing.T) {
	items := newFakeRewardItemRepo()
	achievements := newFakeAchievementRepo()
	uc := NewCatalogUseCase(items, achievements, fixedClock(day1), nopLogger())

	require.NoError(t, uc.EnsureDefaults(context.Background()))
	assert.Len(t, items.items, len(DefaultRewardItems()))
	assert.Len(t, achievements.defs, len(DefaultAchievements()))

	// A second run leaves the catalogs alone.
	require.NoError(t, uc.EnsureDefaults(context.Background()))
	assert.Len(t, achievements.defs, len(DefaultAchievements()))
}

func TestDefaultCatalogCoversEveryGrantedItem(t *testing.T) {
	catalog := map[string]bool{}
	for _, it := range DefaultRewardItems() {
		catalog[it.ID] = true
	}

	var granted []string
	for _, r := range service.DefaultRouletteRewards() {
		if r.ItemID != "" {
			granted = append(granted, r.ItemID)
		}
	}
	for _, streak := range []int{7, 10, 30} {
		if bonus := service.CalculateLoginBonus(streak); bonus.SpecialReward != nil {
			granted = append(granted, bonus.SpecialReward.ItemID)
		}
	}
	for _, rank := range []entity.GameRank{entity.RankS, entity.RankA, entity.RankB} {
		rewards := service.RankRewards(rank, &scriptedRandom{floats: []float64{0}})
		require.NotNil(t, rewards.BonusItem)
		granted = append(granted, rewards.BonusItem.ItemID)
	}
	for _, r := range service.LevelUpRewardsBetween(1, 50) {
		if r.RewardType == service.LevelRewardItem {
			granted = append(granted, r.RewardID)
		}
	}

	for _, id := range granted {
		assert.True(t, catalog[id], "missing catalog entry %s", id)
	}
}

func TestDefaultAchievementsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, def := range DefaultAchievements() {
		assert.False(t, seen[def.ID], "duplicate achievement %s", def.ID)
		seen[def.ID] = true
		assert.True(t, def.IsActive)
		assert.Positive(t, def.ConditionThreshold)
	}
}
