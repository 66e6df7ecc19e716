package usecase

import (
	"context"
	stderrors "errors"
	"time"

	"dailyrewards/internal/domain/entity"
)

// Clock returns the current instant. Tests pin it.
type Clock func() time.Time

// Notifier delivers realtime notifications to a user's connected clients.
// Delivery is best effort.
type Notifier interface {
	Notify(ctx context.Context, userID string, n entity.Notification)
}

type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, string, entity.Notification) {}

// RankingCache stores precomputed rankings. A miss is (nil, false, nil).
type RankingCache interface {
	Get(ctx context.Context, rankingType entity.RankingType) ([]entity.RankingEntry, bool, error)
	Set(ctx context.Context, rankingType entity.RankingType, entries []entity.RankingEntry) error
}

type ExperienceGranter interface {
	Grant(ctx context.Context, userID string, amount int, reason string) (*LevelChange, error)
}

type ItemGranter interface {
	GrantItem(ctx context.Context, userID, rewardItemID, source string) (*entity.InventoryItem, error)
}

type AchievementChecker interface {
	CheckAndUnlock(ctx context.Context, userID string) ([]entity.AchievementDefinition, error)
}

func isNotFound(err error) bool {
	return stderrors.Is(err, entity.ErrNotFound)
}
