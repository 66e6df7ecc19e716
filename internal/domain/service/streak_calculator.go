package service

import (
	"math"
	"time"

	"dailyrewards/internal/domain/entity"
)

const (
	loginBaseCoins = 100
	loginBaseExp   = 50
)

type StreakResult struct {
	NewStreak       int     `json:"new_streak"`
	IsNewDay        bool    `json:"is_new_day"`
	StreakBroken    bool    `json:"streak_broken"`
	BonusMultiplier float64 `json:"bonus_multiplier"`
}

// CalculateStreak decides how a login on loginDate affects prev.
// Only the calendar-day delta matters: 0 keeps the streak, 1 extends it,
// anything else starts over at 1.
func CalculateStreak(prev *entity.LoginStreak, loginDate time.Time) StreakResult {
	if prev == nil || prev.LastLoginDate == nil {
		return StreakResult{NewStreak: 1, IsNewDay: true, BonusMultiplier: 1.0}
	}

	switch daysBetween(*prev.LastLoginDate, loginDate) {
	case 0:
		return StreakResult{
			NewStreak:       prev.CurrentStreak,
			IsNewDay:        false,
			BonusMultiplier: StreakMultiplier(prev.CurrentStreak),
		}
	case 1:
		next := prev.CurrentStreak + 1
		return StreakResult{
			NewStreak:       next,
			IsNewDay:        true,
			BonusMultiplier: StreakMultiplier(next),
		}
	default:
		return StreakResult{
			NewStreak:       1,
			IsNewDay:        true,
			StreakBroken:    true,
			BonusMultiplier: StreakMultiplier(1),
		}
	}
}

func StreakMultiplier(streak int) float64 {
	switch {
	case streak >= 30:
		return 3.0
	case streak >= 14:
		return 2.5
	case streak >= 7:
		return 2.0
	case streak >= 3:
		return 1.5
	default:
		return 1.0
	}
}

// ApplyStreak returns the record to persist after a login on loginDate.
// prev is never modified.
func ApplyStreak(prev *entity.LoginStreak, userID string, loginDate time.Time) (*entity.LoginStreak, StreakResult) {
	result := CalculateStreak(prev, loginDate)
	date := DateIn(loginDate, time.UTC)

	next := &entity.LoginStreak{UserID: userID}
	if prev != nil {
		*next = *prev
		next.UserID = userID
		if prev.LastLoginDate != nil {
			last := *prev.LastLoginDate
			next.LastLoginDate = &last
		}
	}

	if result.IsNewDay {
		next.CurrentStreak = result.NewStreak
		next.TotalLoginDays++
		next.LastLoginDate = &date
	}
	if next.LongestStreak < next.CurrentStreak {
		next.LongestStreak = next.CurrentStreak
	}

	return next, result
}

// CalculateLoginBonus scales the base login reward by the streak multiplier
// and attaches a chest on milestone days.
func CalculateLoginBonus(streak int) entity.LoginBonus {
	multiplier := StreakMultiplier(streak)
	bonus := entity.LoginBonus{
		Coins: int(math.Floor(loginBaseCoins * multiplier)),
		Exp:   int(math.Floor(loginBaseExp * multiplier)),
	}

	switch {
	case streak == 7:
		bonus.SpecialReward = &entity.SpecialReward{ItemID: "weekly-chest", Rarity: entity.RarityRare}
	case streak == 30:
		bonus.SpecialReward = &entity.SpecialReward{ItemID: "monthly-chest", Rarity: entity.RarityLegendary}
	case streak >= 10 && streak%10 == 0:
		bonus.SpecialReward = &entity.SpecialReward{ItemID: "milestone-chest", Rarity: entity.RarityEpic}
	}

	return bonus
}
