package repository

import (
	"context"
	"time"

	"dailyrewards/internal/domain/entity"
)

type InventoryRepository interface {
	Add(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	ListByUser(ctx context.Context, userID string) ([]entity.InventoryItem, error)
	// MarkUsed flips is_used once; a second call returns entity.ErrItemAlreadyUsed.
	MarkUsed(ctx context.Context, id string, usedAt time.Time) error
	Delete(ctx context.Context, id string) error
}
