package repository

import (
	"context"

	"dailyrewards/internal/domain/entity"
)

// StreakMutator computes the next streak record from the stored one.
// current is nil when the user has no record yet. It may run more than once
// if the store retries the transaction, so it must not have side effects.
type StreakMutator func(current *entity.LoginStreak) (*entity.LoginStreak, error)

type LoginStreakRepository interface {
	GetByUserID(ctx context.Context, userID string) (*entity.LoginStreak, error)
	Update(ctx context.Context, userID string, mutate StreakMutator) (*entity.LoginStreak, error)
	TopByCurrentStreak(ctx context.Context, limit int) ([]entity.LoginStreak, error)
}
