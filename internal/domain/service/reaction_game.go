package service

import (
	"math"

	"dailyrewards/internal/domain/entity"
	"dailyrewards/pkg/errors"
)

const (
	GameRounds        = 5
	MinWaitMs         = 1000
	MaxWaitMs         = 4000
	MaxReactionMs     = 1000
	PerfectScore      = 2000
	maxRoundScore     = 1000
	humanFloorMs      = 100
	maxSubmittedMs    = 10000
	maxSubHumanRounds = 1
)

type GameResult struct {
	Scores              []int           `json:"scores"`
	TotalScore          int             `json:"total_score"`
	AverageReactionTime int             `json:"average_reaction_time"`
	Rank                entity.GameRank `json:"rank"`
	Message             string          `json:"message"`
	Perfect             bool            `json:"perfect"`
}

// RoundScore converts one reaction time into points. Faster is better;
// every started 100ms past the first costs 100 points.
func RoundScore(reactionMs int) int {
	if reactionMs >= MaxReactionMs {
		return 0
	}
	if reactionMs <= humanFloorMs {
		return maxRoundScore
	}
	return max(0, maxRoundScore-((reactionMs-humanFloorMs)/100)*100)
}

// ScoreRounds validates a full run and scores it.
func ScoreRounds(reactionTimes []int) (*GameResult, error) {
	if len(reactionTimes) != GameRounds {
		return nil, errors.InvalidInput("a run must contain exactly 5 reaction times", nil)
	}

	subHuman := 0
	scores := make([]int, len(reactionTimes))
	total := 0
	for i, rt := range reactionTimes {
		if rt <= 0 || rt > maxSubmittedMs {
			return nil, errors.InvalidInput("reaction time out of range", nil)
		}
		if rt < humanFloorMs {
			subHuman++
		}
		scores[i] = RoundScore(rt)
		total += scores[i]
	}

	if subHuman > maxSubHumanRounds {
		return nil, errors.InvalidInput("reaction times are not humanly possible", nil)
	}

	rank := Rank(total, len(reactionTimes))
	return &GameResult{
		Scores:              scores,
		TotalScore:          total,
		AverageReactionTime: AverageReactionTime(reactionTimes),
		Rank:                rank,
		Message:             ScoreMessage(rank),
		Perfect:             IsPerfect(total),
	}, nil
}

func AverageReactionTime(reactionTimes []int) int {
	if len(reactionTimes) == 0 {
		return 0
	}
	sum := 0
	for _, rt := range reactionTimes {
		sum += rt
	}
	return int(math.Round(float64(sum) / float64(len(reactionTimes))))
}

func Rank(totalScore, rounds int) entity.GameRank {
	if rounds <= 0 {
		return entity.RankF
	}
	average := float64(totalScore) / float64(rounds)
	switch {
	case average >= 900:
		return entity.RankS
	case average >= 800:
		return entity.RankA
	case average >= 700:
		return entity.RankB
	case average >= 600:
		return entity.RankC
	case average >= 500:
		return entity.RankD
	default:
		return entity.RankF
	}
}

func ScoreMessage(rank entity.GameRank) string {
	switch rank {
	case entity.RankS:
		return "Lightning reflexes!"
	case entity.RankA:
		return "Excellent reaction speed!"
	case entity.RankB:
		return "Great job!"
	case entity.RankC:
		return "Nice work."
	case entity.RankD:
		return "Not bad, keep practicing."
	default:
		return "Try again tomorrow!"
	}
}

// IsPerfect marks runs that count toward the mini_game_perfect achievement.
func IsPerfect(totalScore int) bool {
	return totalScore >= PerfectScore
}

type rankPayout struct {
	coins     int
	exp       int
	bonusRate float64
	bonusItem *entity.SpecialReward
}

var rankPayouts = map[entity.GameRank]rankPayout{
	entity.RankS: {500, 200, 0.20, &entity.SpecialReward{ItemID: "speed-boost-legendary", Rarity: entity.RarityLegendary}},
	entity.RankA: {300, 150, 0.15, &entity.SpecialReward{ItemID: "speed-boost-epic", Rarity: entity.RarityEpic}},
	entity.RankB: {200, 100, 0.10, &entity.SpecialReward{ItemID: "speed-boost-rare", Rarity: entity.RarityRare}},
	entity.RankC: {100, 50, 0, nil},
	entity.RankD: {50, 25, 0, nil},
	entity.RankF: {25, 10, 0, nil},
}

// RankRewards pays out for a rank. Top ranks have a chance at a bonus item;
// rng is consulted only for those ranks.
func RankRewards(rank entity.GameRank, rng RandomSource) entity.MiniGameRewards {
	payout, ok := rankPayouts[rank]
	if !ok {
		payout = rankPayouts[entity.RankF]
	}

	rewards := entity.MiniGameRewards{Coins: payout.coins, Exp: payout.exp}
	if payout.bonusItem != nil && rng != nil && rng.Float64() < payout.bonusRate {
		item := *payout.bonusItem
		rewards.BonusItem = &item
	}
	return rewards
}

// WaitTimes returns the delay before each round's target appears.
func WaitTimes(rng RandomSource) []int {
	waits := make([]int, GameRounds)
	for i := range waits {
		waits[i] = MinWaitMs + rng.IntN(MaxWaitMs-MinWaitMs+1)
	}
	return waits
}
