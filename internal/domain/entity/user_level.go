package entity

import (
	"time"
)

type UserLevel struct {
	UserID       string    `json:"user_id" firestore:"userId"`
	CurrentLevel int       `json:"current_level" firestore:"currentLevel"`
	CurrentExp   int       `json:"current_exp" firestore:"currentExp"`
	TotalExp     int       `json:"total_exp" firestore:"totalExp"`
	UpdatedAt    time.Time `json:"updated_at" firestore:"updatedAt"`
}

// NewUserLevel is the starting state for a user that never earned experience.
func NewUserLevel(userID string) *UserLevel {
	return &UserLevel{UserID: userID, CurrentLevel: 1}
}
