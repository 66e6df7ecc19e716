package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailyrewards/internal/domain/entity"
	apperrors "dailyrewards/pkg/errors"
)

func newRanking(w *world, cache RankingCache) *RankingUseCase {
	return NewRankingUseCase(w.users, w.levels, w.streaks, w.activities, cache, nopLogger())
}

func TestRankingRejectsUnknownType(t *testing.T) {
	w := newWorld(day1)

	_, err := newRanking(w, nil).Get(context.Background(), "coins", 10)

	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidInput(err))
}

func TestLevelRankingBreaksTiesOnExperience(t *testing.T) {
	w := newWorld(day1)
	ctx := context.Background()
	require.NoError(t, w.users.Upsert(ctx, &entity.User{ID: "a", DisplayName: "Alice"}))

	w.levels.levels["a"] = entity.UserLevel{UserID: "a", CurrentLevel: 3, TotalExp: 320}
	w.levels.levels["b"] = entity.UserLevel{UserID: "b", CurrentLevel: 3, TotalExp: 450}
	w.levels.levels["c"] = entity.UserLevel{UserID: "c", CurrentLevel: 5, TotalExp: 1000}

	entries, err := newRanking(w, nil).Get(ctx, entity.RankingLevel, 0)
	require.NoError(t, err)

	require.Len(t, entries, 3)
	assert.Equal(t, "c", entries[0].UserID)
	assert.Equal(t, "b", entries[1].UserID)
	assert.Equal(t, "a", entries[2].UserID)
	assert.Equal(t, []int{1, 2, 3}, []int{entries[0].Rank, entries[1].Rank, entries[2].Rank})
	assert.Equal(t, "Alice", entries[2].DisplayName)
	assert.Equal(t, entity.DefaultDisplayName, entries[0].DisplayName)
}

func TestRankingLimit(t *testing.T) {
	w := newWorld(day1)
	for i := 0; i < 15; i++ {
		id := fmt.Sprintf("user-%02d", i)
		w.streaks.streaks[id] = entity.LoginStreak{UserID: id, CurrentStreak: i}
	}
	uc := newRanking(w, nil)

	entries, err := uc.Get(context.Background(), entity.RankingLoginStreak, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 10)
	assert.Equal(t, 14, entries[0].Value)

	entries, err = uc.Get(context.Background(), entity.RankingLoginStreak, 500)
	require.NoError(t, err)
	assert.Len(t, entries, 15)
}

func TestMiniGameRankingOneEntryPerUser(t *testing.T) {
	w := newWorld(day1)
	ctx := context.Background()
	require.NoError(t, w.activities.CompleteActivity(ctx, "a", day1, entity.ActivityMiniGame, 3000))
	require.NoError(t, w.activities.CompleteActivity(ctx, "a", day1.AddDate(0, 0, -1), entity.ActivityMiniGame, 4200))
	require.NoError(t, w.activities.CompleteActivity(ctx, "b", day1, entity.ActivityMiniGame, 3500))

	entries, err := newRanking(w, nil).Get(ctx, entity.RankingMiniGameScore, 10)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].UserID)
	assert.Equal(t, 4200, entries[0].Value)
	assert.Equal(t, "b", entries[1].UserID)
}

func TestRankingReadsThroughCache(t *testing.T) {
	w := newWorld(day1)
	cache := newFakeRankingCache()
	uc := newRanking(w, cache)
	ctx := context.Background()
	w.levels.levels["a"] = entity.UserLevel{UserID: "a", CurrentLevel: 2, TotalExp: 100}

	_, err := uc.Get(ctx, entity.RankingLevel, 10)
	require.NoError(t, err)
	require.Len(t, cache.entries[entity.RankingLevel], 1)

	// Served from the cache until the next refresh.
	w.levels.levels["b"] = entity.UserLevel{UserID: "b", CurrentLevel: 9, TotalExp: 4000}
	entries, err := uc.Get(ctx, entity.RankingLevel, 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	require.NoError(t, uc.Refresh(ctx))
	entries, err = uc.Get(ctx, entity.RankingLevel, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "b", entries[0].UserID)
	assert.Contains(t, cache.entries, entity.RankingMiniGameScore)
}
