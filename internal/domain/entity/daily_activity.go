package entity

import (
	"time"
)

type ActivityKind string

const (
	ActivityLogin    ActivityKind = "login"
	ActivityRoulette ActivityKind = "roulette"
	ActivityMiniGame ActivityKind = "mini_game"
)

// DailyActivity is one row per user per calendar day.
type DailyActivity struct {
	UserID            string    `json:"user_id" firestore:"userId"`
	ActivityDate      time.Time `json:"activity_date" firestore:"activityDate"`
	LoginCount        int       `json:"login_count" firestore:"loginCount"`
	RouletteCompleted bool      `json:"roulette_completed" firestore:"rouletteCompleted"`
	MiniGameCompleted bool      `json:"mini_game_completed" firestore:"miniGameCompleted"`
	MiniGameScore     int       `json:"mini_game_score" firestore:"miniGameScore"`
	UpdatedAt         time.Time `json:"updated_at" firestore:"updatedAt"`
}

// Completed reports whether the once-per-day activity is already recorded.
func (a *DailyActivity) Completed(kind ActivityKind) bool {
	if a == nil {
		return false
	}
	switch kind {
	case ActivityLogin:
		return a.LoginCount > 0
	case ActivityRoulette:
		return a.RouletteCompleted
	case ActivityMiniGame:
		return a.MiniGameCompleted
	}
	return false
}
