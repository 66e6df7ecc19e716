package repository

import (
	"context"

	"dailyrewards/internal/domain/entity"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByIDs returns the users that exist; missing ids are simply absent from the map.
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.User, error)
	Upsert(ctx context.Context, user *entity.User) error
}
