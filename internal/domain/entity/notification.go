package entity

import (
	"time"
)

type NotificationKind string

const (
	NotificationReward      NotificationKind = "reward"
	NotificationLevelUp     NotificationKind = "level_up"
	NotificationAchievement NotificationKind = "achievement"
	NotificationStreak      NotificationKind = "streak"
	NotificationItem        NotificationKind = "item"
)

// Sound cues understood by the client.
const (
	SoundReward      = "reward"
	SoundLevelUp     = "levelUp"
	SoundAchievement = "achievement"
	SoundSuccess     = "success"
)

type Notification struct {
	Kind      NotificationKind       `json:"kind"`
	Message   string                 `json:"message"`
	Sound     string                 `json:"sound,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}
