package service

import (
	"math"
	"sort"
	"sync"

	"dailyrewards/internal/domain/entity"
	"dailyrewards/pkg/errors"
	"dailyrewards/pkg/logger"
)

const (
	totalWeight     = 100.0
	weightTolerance = 0.01
	baseSpinMs      = 3000
	minRotations    = 3
	rotationChoices = 3 // 3, 4 or 5 full turns
	jitterRatio     = 0.8
)

var rarityDurationMultiplier = map[entity.Rarity]float64{
	entity.RarityCommon:    1.0,
	entity.RarityRare:      1.2,
	entity.RarityEpic:      1.5,
	entity.RarityLegendary: 2.0,
}

var rarityOrder = map[entity.Rarity]int{
	entity.RarityLegendary: 0,
	entity.RarityEpic:      1,
	entity.RarityRare:      2,
	entity.RarityCommon:    3,
}

type SpinResult struct {
	Reward         entity.RewardDefinition `json:"reward"`
	Index          int                     `json:"index"`
	SpinAngle      float64                 `json:"spin_angle"`
	SpinDurationMs int                     `json:"spin_duration_ms"`
}

// RewardRoller performs weighted draws over a roulette wheel.
type RewardRoller struct {
	mu     sync.Mutex
	rng    RandomSource
	logger logger.Logger
}

func NewRewardRoller(rng RandomSource, log logger.Logger) *RewardRoller {
	if rng == nil {
		rng = DefaultSource()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &RewardRoller{rng: rng, logger: log}
}

// Spin picks one reward and computes the wheel animation for it.
// The three random values are always drawn in the same order, so a seeded
// source yields the same result for the same reward list.
func (r *RewardRoller) Spin(rewards []entity.RewardDefinition) (*SpinResult, error) {
	if len(rewards) == 0 {
		return nil, errors.InvalidInput("reward list is empty", nil)
	}

	if sum, ok := ValidateWeights(rewards); !ok {
		r.logger.Warn("roulette weights do not sum to 100", "sum", sum, "rewards", len(rewards))
	}

	r.mu.Lock()
	draw := r.rng.Float64() * totalWeight
	rotations := minRotations + r.rng.IntN(rotationChoices)
	jitterDraw := r.rng.Float64()
	r.mu.Unlock()

	index := SelectIndex(rewards, draw)
	reward := rewards[index]

	segment := 360.0 / float64(len(rewards))
	jitter := (jitterDraw - 0.5) * segment * jitterRatio
	angle := float64(rotations)*360 + float64(index)*segment + jitter

	return &SpinResult{
		Reward:         reward,
		Index:          index,
		SpinAngle:      angle,
		SpinDurationMs: SpinDuration(reward.Rarity),
	}, nil
}

// SelectIndex walks the cumulative weights and returns the first slot whose
// running total reaches draw. A draw past the end selects the last slot.
func SelectIndex(rewards []entity.RewardDefinition, draw float64) int {
	cumulative := 0.0
	for i, reward := range rewards {
		cumulative += reward.ProbabilityWeight
		if cumulative >= draw {
			return i
		}
	}
	return len(rewards) - 1
}

func ValidateWeights(rewards []entity.RewardDefinition) (float64, bool) {
	sum := 0.0
	for _, reward := range rewards {
		sum += reward.ProbabilityWeight
	}
	return sum, math.Abs(sum-totalWeight) <= weightTolerance
}

func SpinDuration(rarity entity.Rarity) int {
	multiplier, ok := rarityDurationMultiplier[rarity]
	if !ok {
		multiplier = 1.0
	}
	return int(math.Round(baseSpinMs * multiplier))
}

// SortByRarity returns a copy ordered legendary first, keeping catalog order within a tier.
func SortByRarity(rewards []entity.RewardDefinition) []entity.RewardDefinition {
	sorted := make([]entity.RewardDefinition, len(rewards))
	copy(sorted, rewards)
	sort.SliceStable(sorted, func(i, j int) bool {
		return rarityOrder[sorted[i].Rarity] < rarityOrder[sorted[j].Rarity]
	})
	return sorted
}

// DefaultRouletteRewards is the built-in wheel used when no catalog is configured.
func DefaultRouletteRewards() []entity.RewardDefinition {
	return []entity.RewardDefinition{
		{ID: "coins-small", Name: "50 Coins", Rarity: entity.RarityCommon, ProbabilityWeight: 30, Coins: 50},
		{ID: "coins-medium", Name: "100 Coins", Rarity: entity.RarityCommon, ProbabilityWeight: 25, Coins: 100},
		{ID: "exp-small", Name: "25 EXP", Rarity: entity.RarityCommon, ProbabilityWeight: 20, Exp: 25},
		{ID: "coins-large", Name: "200 Coins", Rarity: entity.RarityRare, ProbabilityWeight: 15, Coins: 200},
		{ID: "exp-medium", Name: "75 EXP", Rarity: entity.RarityRare, ProbabilityWeight: 7, Exp: 75},
		{ID: "rare-chest", Name: "Rare Chest", Rarity: entity.RarityEpic, ProbabilityWeight: 2.5, ItemID: "rare-chest"},
		{ID: "legendary-chest", Name: "Legendary Chest", Rarity: entity.RarityLegendary, ProbabilityWeight: 0.5, ItemID: "legendary-chest"},
	}
}
