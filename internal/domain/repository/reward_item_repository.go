package repository

import (
	"context"

	"dailyrewards/internal/domain/entity"
)

type RewardItemRepository interface {
	GetByID(ctx context.Context, id string) (*entity.RewardItem, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.RewardItem, error)
	ListActive(ctx context.Context) ([]entity.RewardItem, error)
	SaveAll(ctx context.Context, items []entity.RewardItem) error
}
