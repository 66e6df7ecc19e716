package entity

import (
	"time"
)

type LoginStreak struct {
	UserID         string     `json:"user_id" firestore:"userId"`
	CurrentStreak  int        `json:"current_streak" firestore:"currentStreak"`
	LongestStreak  int        `json:"longest_streak" firestore:"longestStreak"`
	LastLoginDate  *time.Time `json:"last_login_date,omitempty" firestore:"lastLoginDate"`
	TotalLoginDays int        `json:"total_login_days" firestore:"totalLoginDays"`
	UpdatedAt      time.Time  `json:"updated_at" firestore:"updatedAt"`
}

// LoginBonus is what a user receives for the first login of a day.
type LoginBonus struct {
	Coins         int            `json:"coins"`
	Exp           int            `json:"exp"`
	SpecialReward *SpecialReward `json:"special_reward,omitempty"`
}

type SpecialReward struct {
	ItemID string `json:"item_id"`
	Rarity Rarity `json:"rarity"`
}
