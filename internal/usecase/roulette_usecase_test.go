package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailyrewards/internal/domain/entity"
	"dailyrewards/internal/domain/service"
	apperrors "dailyrewards/pkg/errors"
)

func newRoulette(w *world, rng service.RandomSource) *RouletteUseCase {
	roller := service.NewRewardRoller(rng, nopLogger())
	return NewRouletteUseCase(w.activities, roller, nil, w.experience, w.invUC, w.achUC, w.notifier, w.clock.Now, time.UTC, nopLogger())
}

func TestSpinConvertsCoinsToExperience(t *testing.T) {
	w := newWorld(day1)
	uc := newRoulette(w, &scriptedRandom{floats: []float64{0.0, 0.5}})

	result, err := uc.Spin(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, "coins-small", result.Reward.ID)
	// 50 coins / 10 + 20 roulette experience.
	assert.Equal(t, 25, result.ExpGained)
	assert.Nil(t, result.Item)
	assert.Contains(t, w.notifier.kinds(), entity.NotificationReward)
}

func TestSpinGrantsItemRewards(t *testing.T) {
	w := newWorld(day1)
	uc := newRoulette(w, &scriptedRandom{floats: []float64{0.999, 0.5}})

	result, err := uc.Spin(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, "legendary-chest", result.Reward.ID)
	assert.Equal(t, 20, result.ExpGained)
	require.NotNil(t, result.Item)
	assert.Equal(t, entity.SourceRoulette, result.Item.Source)

	stats, err := NewStatsCollector(w.streaks, w.activities, w.inventory, w.items, w.levels).Collect(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.RoulettePlays)
	assert.Equal(t, 1, stats.RouletteLegendaryWins)
}

func TestSpinOncePerDay(t *testing.T) {
	w := newWorld(day1)
	uc := newRoulette(w, service.NewSeededSource(42))
	ctx := context.Background()

	_, err := uc.Spin(ctx, "user-1")
	require.NoError(t, err)

	_, err = uc.Spin(ctx, "user-1")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeAlreadyClaimed))

	w.clock.Advance(24 * time.Hour)
	_, err = uc.Spin(ctx, "user-1")
	assert.NoError(t, err)
}

func TestConcurrentSpinsWinOnce(t *testing.T) {
	w := newWorld(day1)
	uc := newRoulette(w, service.NewSeededSource(7))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := uc.Spin(context.Background(), "user-1"); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
}

func TestRouletteStatus(t *testing.T) {
	w := newWorld(day1)
	uc := newRoulette(w, service.NewSeededSource(1))
	ctx := context.Background()

	status, err := uc.Status(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, status.CanPlay)
	assert.Nil(t, status.LastPlayedAt)
	require.NotEmpty(t, status.Rewards)
	assert.Equal(t, entity.RarityLegendary, status.Rewards[0].Rarity)

	_, err = uc.Spin(ctx, "user-1")
	require.NoError(t, err)

	status, err = uc.Status(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, status.CanPlay)
}

func TestSpinWithEmptyWheel(t *testing.T) {
	w := newWorld(day1)
	roller := service.NewRewardRoller(service.NewSeededSource(1), nopLogger())
	uc := NewRouletteUseCase(w.activities, roller, []entity.RewardDefinition{}, w.experience, w.invUC, nil, nil, w.clock.Now, time.UTC, nopLogger())

	_, err := uc.Spin(context.Background(), "user-1")

	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidInput(err))
	assert.Empty(t, w.activities.activities)
}
