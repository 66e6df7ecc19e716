package entity

import (
	"time"
)

type ConditionType string

const (
	ConditionLoginStreak          ConditionType = "login_streak"
	ConditionTotalLogins          ConditionType = "total_logins"
	ConditionRoulettePlays        ConditionType = "roulette_plays"
	ConditionRouletteLegendary    ConditionType = "roulette_legendary"
	ConditionMiniGameScore        ConditionType = "mini_game_score"
	ConditionMiniGamePlays        ConditionType = "mini_game_plays"
	ConditionMiniGamePerfect      ConditionType = "mini_game_perfect"
	ConditionItemsCollected       ConditionType = "items_collected"
	ConditionItemsCollectedRarity ConditionType = "items_collected_rarity"
	ConditionLevelReached         ConditionType = "level_reached"
	ConditionExpEarned            ConditionType = "exp_earned"
)

type AchievementCategory string

const (
	AchievementCategoryLogin      AchievementCategory = "login"
	AchievementCategoryGame       AchievementCategory = "game"
	AchievementCategoryCollection AchievementCategory = "collection"
	AchievementCategoryLevel      AchievementCategory = "level"
	AchievementCategorySpecial    AchievementCategory = "special"
)

type AchievementDefinition struct {
	ID                 string              `json:"id" firestore:"id"`
	Name               string              `json:"name" firestore:"name"`
	Description        string              `json:"description" firestore:"description"`
	Category           AchievementCategory `json:"category" firestore:"category"`
	ConditionType      ConditionType       `json:"condition_type" firestore:"conditionType"`
	ConditionThreshold int                 `json:"condition_threshold" firestore:"conditionThreshold"`
	// ConditionSubValue narrows the condition, e.g. the rarity for items_collected_rarity.
	ConditionSubValue string    `json:"condition_sub_value,omitempty" firestore:"conditionSubValue,omitempty"`
	RewardExp         int       `json:"reward_exp" firestore:"rewardExp"`
	Points            int       `json:"points" firestore:"points"`
	IconURL           string    `json:"icon_url,omitempty" firestore:"iconUrl,omitempty"`
	SortOrder         int       `json:"sort_order" firestore:"sortOrder"`
	IsActive          bool      `json:"is_active" firestore:"isActive"`
	CreatedAt         time.Time `json:"created_at" firestore:"createdAt"`
}

// UserAchievement records a permanent unlock. It is never cleared.
type UserAchievement struct {
	UserID        string    `json:"user_id" firestore:"userId"`
	AchievementID string    `json:"achievement_id" firestore:"achievementId"`
	UnlockedAt    time.Time `json:"unlocked_at" firestore:"unlockedAt"`
}

// UserStats is the snapshot achievements are evaluated against.
type UserStats struct {
	LoginStreak           int            `json:"login_streak"`
	TotalLogins           int            `json:"total_logins"`
	RoulettePlays         int            `json:"roulette_plays"`
	RouletteLegendaryWins int            `json:"roulette_legendary_wins"`
	MiniGamePlays         int            `json:"mini_game_plays"`
	MiniGameHighScore     int            `json:"mini_game_high_score"`
	MiniGamePerfectScores int            `json:"mini_game_perfect_scores"`
	ItemsCollected        int            `json:"items_collected"`
	ItemsByRarity         map[Rarity]int `json:"items_by_rarity"`
	Level                 int            `json:"level"`
	TotalExp              int            `json:"total_exp"`
}
