package service

import (
	"fmt"
	"math"

	"dailyrewards/internal/domain/entity"
)

const expPerLevel = 100

type LevelResult struct {
	Level        int  `json:"level"`
	CurrentExp   int  `json:"current_exp"`
	TotalExp     int  `json:"total_exp"`
	LeveledUp    bool `json:"leveled_up"`
	LevelsGained int  `json:"levels_gained"`
}

type LevelUpRewardType string

const (
	LevelRewardItem        LevelUpRewardType = "item"
	LevelRewardAchievement LevelUpRewardType = "achievement"
	LevelRewardUnlock      LevelUpRewardType = "unlock"
)

type LevelUpReward struct {
	Level       int               `json:"level"`
	RewardType  LevelUpRewardType `json:"reward_type"`
	RewardID    string            `json:"reward_id,omitempty"`
	RewardName  string            `json:"reward_name"`
	Description string            `json:"description,omitempty"`
}

type LevelProgressInfo struct {
	Percentage int `json:"percentage"`
	Current    int `json:"current"`
	Required   int `json:"required"`
}

// RequiredExp is the experience needed to go from level to level+1.
func RequiredExp(level int) int {
	return expPerLevel * level
}

// TotalRequiredExp is the cumulative experience needed to reach level from level 1.
func TotalRequiredExp(level int) int {
	return level * (level - 1) * expPerLevel / 2
}

// AddExperience applies amount to current. amount must be non-negative;
// callers validate it.
func AddExperience(current entity.UserLevel, amount int) LevelResult {
	level := current.CurrentLevel
	if level < 1 {
		level = 1
	}
	exp := current.CurrentExp + amount
	gained := 0

	for exp >= RequiredExp(level) {
		exp -= RequiredExp(level)
		level++
		gained++
	}

	return LevelResult{
		Level:        level,
		CurrentExp:   exp,
		TotalExp:     current.TotalExp + amount,
		LeveledUp:    gained > 0,
		LevelsGained: gained,
	}
}

// LevelFromTotalExp rebuilds level state from lifetime experience.
func LevelFromTotalExp(totalExp int) (level, currentExp int) {
	r := AddExperience(entity.UserLevel{CurrentLevel: 1}, totalExp)
	return r.Level, r.CurrentExp
}

func LevelProgress(currentExp, level int) LevelProgressInfo {
	required := RequiredExp(level)
	percentage := 0
	if required > 0 {
		percentage = int(math.Floor(float64(currentExp) / float64(required) * 100))
	}
	if percentage > 100 {
		percentage = 100
	}
	return LevelProgressInfo{Percentage: percentage, Current: currentExp, Required: required}
}

// GetLevelUpRewards lists the milestone rewards for reaching level. Rules stack.
func GetLevelUpRewards(level int) []LevelUpReward {
	var rewards []LevelUpReward

	if level%5 == 0 {
		rewards = append(rewards, LevelUpReward{
			Level:       level,
			RewardType:  LevelRewardItem,
			RewardID:    "rare-item-pack",
			RewardName:  "Rare Item Pack",
			Description: "Guaranteed item of rare or better",
		})
	}

	if level%10 == 0 {
		rewards = append(rewards, LevelUpReward{
			Level:       level,
			RewardType:  LevelRewardAchievement,
			RewardName:  fmt.Sprintf("Reached Level %d", level),
			Description: fmt.Sprintf("You reached level %d!", level),
		})
	}

	if level == 25 {
		rewards = append(rewards, LevelUpReward{
			Level:       level,
			RewardType:  LevelRewardUnlock,
			RewardID:    "special-mini-game",
			RewardName:  "Special Mini-Game Unlocked",
			Description: "A new mini-game is now playable",
		})
	}

	if level == 50 {
		rewards = append(rewards, LevelUpReward{
			Level:       level,
			RewardType:  LevelRewardItem,
			RewardID:    "legendary-item",
			RewardName:  "Legendary Item",
			Description: "An item of the highest rarity",
		})
	}

	return rewards
}

// LevelUpRewardsBetween collects rewards for every level in (from, to].
func LevelUpRewardsBetween(from, to int) []LevelUpReward {
	var rewards []LevelUpReward
	for level := from + 1; level <= to; level++ {
		rewards = append(rewards, GetLevelUpRewards(level)...)
	}
	return rewards
}

type ActivityType string

const (
	ActivityTypeLogin       ActivityType = "login"
	ActivityTypeRoulette    ActivityType = "roulette"
	ActivityTypeMiniGame    ActivityType = "miniGame"
	ActivityTypeAchievement ActivityType = "achievement"
)

type ActivityContext struct {
	LoginStreak   int
	MiniGameScore int
}

type ExperienceReward struct {
	Activity    ActivityType `json:"activity"`
	BaseExp     int          `json:"base_exp"`
	Bonus       int          `json:"bonus"`
	Description string       `json:"description,omitempty"`
}

func (r ExperienceReward) Total() int {
	return r.BaseExp + r.Bonus
}

// ActivityExperience is the flat experience granted for completing an activity.
func ActivityExperience(activity ActivityType, ctx ActivityContext) ExperienceReward {
	switch activity {
	case ActivityTypeLogin:
		reward := ExperienceReward{Activity: activity, BaseExp: 10}
		if ctx.LoginStreak > 0 {
			reward.Bonus = min(ctx.LoginStreak*2, 20)
			reward.Description = fmt.Sprintf("%d-day login streak bonus", ctx.LoginStreak)
		}
		return reward
	case ActivityTypeRoulette:
		return ExperienceReward{Activity: activity, BaseExp: 20, Description: "Daily roulette completed"}
	case ActivityTypeMiniGame:
		reward := ExperienceReward{Activity: activity, BaseExp: 15, Description: "Mini-game completed"}
		switch {
		case ctx.MiniGameScore >= 1000:
			reward.Bonus = 15
			reward.Description = "Perfect score!"
		case ctx.MiniGameScore >= 700:
			// 50% of base, floored.
			reward.Bonus = 7
			reward.Description = "High score!"
		}
		return reward
	case ActivityTypeAchievement:
		return ExperienceReward{Activity: activity, BaseExp: 50, Description: "Achievement unlocked"}
	default:
		return ExperienceReward{Activity: activity}
	}
}
