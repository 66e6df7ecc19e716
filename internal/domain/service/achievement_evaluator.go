package service

import (
	"math"
	"sort"

	"dailyrewards/internal/domain/entity"
)

var milestoneThresholds = map[int]bool{10: true, 25: true, 50: true, 100: true, 250: true, 500: true, 1000: true}

type AchievementProgress struct {
	ID       string `json:"id"`
	Current  int    `json:"current"`
	Max      int    `json:"max"`
	Unlocked bool   `json:"unlocked"`
}

type EvaluationResult struct {
	Unlocked []entity.AchievementDefinition `json:"unlocked"`
	Progress []AchievementProgress          `json:"progress"`
}

// Evaluate checks every definition not in alreadyUnlocked against stats.
// Unknown condition types report zero progress and never unlock.
func Evaluate(defs []entity.AchievementDefinition, stats entity.UserStats, alreadyUnlocked map[string]bool) EvaluationResult {
	result := EvaluationResult{
		Unlocked: []entity.AchievementDefinition{},
		Progress: []AchievementProgress{},
	}

	for _, def := range defs {
		if alreadyUnlocked[def.ID] {
			continue
		}

		progress := CheckProgress(def, stats)
		result.Progress = append(result.Progress, progress)
		if progress.Unlocked {
			result.Unlocked = append(result.Unlocked, def)
		}
	}

	return result
}

// CheckProgress evaluates a single definition.
func CheckProgress(def entity.AchievementDefinition, stats entity.UserStats) AchievementProgress {
	value, known := StatValue(def, stats)
	progress := AchievementProgress{ID: def.ID, Max: def.ConditionThreshold}
	if !known {
		return progress
	}

	progress.Current = min(value, def.ConditionThreshold)
	progress.Unlocked = value >= def.ConditionThreshold
	return progress
}

// StatValue looks up the statistic a condition is measured against.
func StatValue(def entity.AchievementDefinition, stats entity.UserStats) (int, bool) {
	switch def.ConditionType {
	case entity.ConditionLoginStreak:
		return stats.LoginStreak, true
	case entity.ConditionTotalLogins:
		return stats.TotalLogins, true
	case entity.ConditionRoulettePlays:
		return stats.RoulettePlays, true
	case entity.ConditionRouletteLegendary:
		return stats.RouletteLegendaryWins, true
	case entity.ConditionMiniGameScore:
		return stats.MiniGameHighScore, true
	case entity.ConditionMiniGamePlays:
		return stats.MiniGamePlays, true
	case entity.ConditionMiniGamePerfect:
		return stats.MiniGamePerfectScores, true
	case entity.ConditionItemsCollected:
		return stats.ItemsCollected, true
	case entity.ConditionItemsCollectedRarity:
		if def.ConditionSubValue == "" {
			return 0, false
		}
		return stats.ItemsByRarity[entity.Rarity(def.ConditionSubValue)], true
	case entity.ConditionLevelReached:
		return stats.Level, true
	case entity.ConditionExpEarned:
		return stats.TotalExp, true
	}
	return 0, false
}

func AchievementPoints(defs []entity.AchievementDefinition, unlockedIDs map[string]bool) int {
	total := 0
	for _, def := range defs {
		if unlockedIDs[def.ID] {
			total += def.Points
		}
	}
	return total
}

func ProgressPercentage(current, target int) int {
	if target <= 0 {
		return 0
	}
	pct := int(math.Round(float64(current) / float64(target) * 100))
	if pct > 100 {
		return 100
	}
	return pct
}

// NextTarget returns the closest active achievement of the given type still
// above current, and how far away it is. Returns nil, 0 if none remain.
func NextTarget(defs []entity.AchievementDefinition, condition entity.ConditionType, current int) (*entity.AchievementDefinition, int) {
	var next *entity.AchievementDefinition
	for i := range defs {
		def := &defs[i]
		if def.ConditionType != condition || !def.IsActive || def.ConditionThreshold <= current {
			continue
		}
		if next == nil || def.ConditionThreshold < next.ConditionThreshold {
			next = def
		}
	}
	if next == nil {
		return nil, 0
	}
	return next, next.ConditionThreshold - current
}

func IsMilestone(def entity.AchievementDefinition) bool {
	return milestoneThresholds[def.ConditionThreshold]
}

func ByCategory(defs []entity.AchievementDefinition, category entity.AchievementCategory) []entity.AchievementDefinition {
	var filtered []entity.AchievementDefinition
	for _, def := range defs {
		if def.Category == category {
			filtered = append(filtered, def)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].SortOrder < filtered[j].SortOrder
	})
	return filtered
}
