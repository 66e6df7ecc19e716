package repository

import (
	"context"

	"dailyrewards/internal/domain/entity"
)

// LevelMutator follows the same contract as StreakMutator.
type LevelMutator func(current *entity.UserLevel) (*entity.UserLevel, error)

type UserLevelRepository interface {
	GetByUserID(ctx context.Context, userID string) (*entity.UserLevel, error)
	Update(ctx context.Context, userID string, mutate LevelMutator) (*entity.UserLevel, error)
	// TopByLevel orders by level, then total experience, both descending.
	TopByLevel(ctx context.Context, limit int) ([]entity.UserLevel, error)
}
