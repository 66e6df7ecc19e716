package repository

import (
	"context"
	"time"

	"dailyrewards/internal/domain/entity"
)

type DailyActivityRepository interface {
	Get(ctx context.Context, userID string, date time.Time) (*entity.DailyActivity, error)
	ListByUser(ctx context.Context, userID string) ([]entity.DailyActivity, error)
	RecordLogin(ctx context.Context, userID string, date time.Time) error
	// CompleteActivity atomically marks a once-per-day activity as done.
	// It returns entity.ErrActivityAlreadyCompleted if it already was.
	CompleteActivity(ctx context.Context, userID string, date time.Time, kind entity.ActivityKind, score int) error
	// TopMiniGameScores returns the highest single-day scores, at most one per user.
	TopMiniGameScores(ctx context.Context, limit int) ([]entity.DailyActivity, error)
}
