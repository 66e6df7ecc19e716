package service

import (
	"math/rand/v2"
	"testing"

	"dailyrewards/internal/domain/entity"
	"dailyrewards/pkg/errors"
	"dailyrewards/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weighted(weights ...float64) []entity.RewardDefinition {
	rewards := make([]entity.RewardDefinition, len(weights))
	for i, w := range weights {
		rewards[i] = entity.RewardDefinition{
			ID:                string(rune('a' + i)),
			Rarity:            entity.RarityCommon,
			ProbabilityWeight: w,
		}
	}
	return rewards
}

func TestSelectIndex(t *testing.T) {
	tests := []struct {
		name    string
		weights []float64
		draw    float64
		want    int
	}{
		{"draw past first bucket", []float64{90, 10}, 95, 1},
		{"draw on boundary stays in first", []float64{90, 10}, 90, 0},
		{"zero draw", []float64{90, 10}, 0, 0},
		{"overshoot falls back to last", []float64{90, 10}, 150, 1},
		{"weights short of 100", []float64{10, 20}, 99, 1},
		{"single reward", []float64{100}, 42, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectIndex(weighted(tt.weights...), tt.draw))
		})
	}
}

func TestSpinWithScriptedDraws(t *testing.T) {
	rewards := weighted(90, 10)
	rewards[1].Rarity = entity.RarityLegendary

	// draw 0.95*100 = 95, rotations 3+1, jitter centred
	rng := &scriptedSource{floats: []float64{0.95, 0.5}, ints: []int{1}}
	roller := NewRewardRoller(rng, logger.Nop())

	result, err := roller.Spin(rewards)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Index)
	assert.Equal(t, "b", result.Reward.ID)
	assert.InDelta(t, 4*360+180, result.SpinAngle, 1e-9)
	assert.Equal(t, 6000, result.SpinDurationMs)
}

func TestSpinIsDeterministicForSeed(t *testing.T) {
	rewards := DefaultRouletteRewards()

	a := NewRewardRoller(NewSeededSource(2024), logger.Nop())
	b := NewRewardRoller(NewSeededSource(2024), logger.Nop())

	for i := 0; i < 50; i++ {
		ra, err := a.Spin(rewards)
		require.NoError(t, err)
		rb, err := b.Spin(rewards)
		require.NoError(t, err)
		require.Equal(t, ra, rb)
	}
}

func TestSpinStaysInBounds(t *testing.T) {
	gen := rand.New(rand.NewPCG(1, 2))
	roller := NewRewardRoller(NewSeededSource(99), logger.Nop())

	for i := 0; i < 300; i++ {
		n := 1 + gen.IntN(12)
		weights := make([]float64, n)
		for j := range weights {
			weights[j] = gen.Float64() * 40
		}
		rewards := weighted(weights...)

		result, err := roller.Spin(rewards)
		require.NoError(t, err)
		require.GreaterOrEqual(t, result.Index, 0)
		require.Less(t, result.Index, n)
		require.Equal(t, rewards[result.Index], result.Reward)

		segment := 360.0 / float64(n)
		target := float64(result.Index) * segment
		base := result.SpinAngle - target
		require.GreaterOrEqual(t, base, 3*360-0.4*segment-1e-9)
		require.LessOrEqual(t, base, 5*360+0.4*segment+1e-9)
	}
}

func TestSpinRejectsEmptyList(t *testing.T) {
	_, err := NewRewardRoller(nil, nil).Spin(nil)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInput(err))
}

func TestSpinWarnsOnBadWeights(t *testing.T) {
	log := &recordingLogger{}
	roller := NewRewardRoller(NewSeededSource(1), log)

	_, err := roller.Spin(weighted(50, 40))
	require.NoError(t, err)
	assert.Equal(t, 1, log.count("warn"))

	_, err = roller.Spin(weighted(50, 50))
	require.NoError(t, err)
	assert.Equal(t, 1, log.count("warn"))
}

func TestValidateWeights(t *testing.T) {
	sum, ok := ValidateWeights(DefaultRouletteRewards())
	assert.True(t, ok)
	assert.InDelta(t, 100, sum, 1e-9)

	_, ok = ValidateWeights(weighted(33.3, 33.3, 33.3))
	assert.False(t, ok)

	_, ok = ValidateWeights(weighted(33.334, 33.333, 33.333))
	assert.True(t, ok)
}

func TestSpinDuration(t *testing.T) {
	assert.Equal(t, 3000, SpinDuration(entity.RarityCommon))
	assert.Equal(t, 3600, SpinDuration(entity.RarityRare))
	assert.Equal(t, 4500, SpinDuration(entity.RarityEpic))
	assert.Equal(t, 6000, SpinDuration(entity.RarityLegendary))
	assert.Equal(t, 3000, SpinDuration("unknown"))
}

func TestSortByRarity(t *testing.T) {
	sorted := SortByRarity(DefaultRouletteRewards())

	ids := make([]string, len(sorted))
	for i, r := range sorted {
		ids[i] = r.ID
	}
	assert.Equal(t, []string{
		"legendary-chest", "rare-chest", "coins-large", "exp-medium",
		"coins-small", "coins-medium", "exp-small",
	}, ids)
	assert.Equal(t, "coins-small", DefaultRouletteRewards()[0].ID)
}
