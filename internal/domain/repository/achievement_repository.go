package repository

import (
	"context"

	"dailyrewards/internal/domain/entity"
)

type AchievementRepository interface {
	ListActive(ctx context.Context) ([]entity.AchievementDefinition, error)
	SaveDefinitions(ctx context.Context, defs []entity.AchievementDefinition) error
	ListUnlocked(ctx context.Context, userID string) ([]entity.UserAchievement, error)
	// Unlock stores the given unlocks and returns the achievement ids that were
	// not unlocked before. Existing unlocks are left untouched.
	Unlock(ctx context.Context, unlocks []entity.UserAchievement) ([]string, error)
}
