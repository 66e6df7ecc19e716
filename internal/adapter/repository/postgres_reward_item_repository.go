package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dailyrewards/internal/domain/entity"
	"dailyrewards/internal/domain/repository"
)

const rewardItemColumns = `id, name, description, rarity, type, icon_url, is_active, created_at`

type postgresRewardItemRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRewardItemRepository(db *pgxpool.Pool) repository.RewardItemRepository {
	return &postgresRewardItemRepository{db: db}
}

func scanRewardItem(row rowScanner) (*entity.RewardItem, error) {
	var it entity.RewardItem
	if err := row.Scan(&it.ID, &it.Name, &it.Description, &it.Rarity, &it.Type, &it.IconURL, &it.IsActive, &it.CreatedAt); err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *postgresRewardItemRepository) GetByID(ctx context.Context, id string) (*entity.RewardItem, error) {
	item, err := scanRewardItem(r.db.QueryRow(ctx, `SELECT `+rewardItemColumns+` FROM reward_items WHERE id = $1`, id))
	if err != nil {
		return nil, pgTranslate(err, "get reward item")
	}
	return item, nil
}

func (r *postgresRewardItemRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.RewardItem, error) {
	items := make(map[string]*entity.RewardItem, len(ids))
	ids = dedupe(ids)
	if len(ids) == 0 {
		return items, nil
	}

	rows, err := r.db.Query(ctx, `SELECT `+rewardItemColumns+` FROM reward_items WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, pgTranslate(err, "get reward items")
	}
	defer rows.Close()

	for rows.Next() {
		item, err := scanRewardItem(rows)
		if err != nil {
			return nil, pgTranslate(err, "scan reward item")
		}
		items[item.ID] = item
	}
	return items, pgTranslate(rows.Err(), "get reward items")
}

func (r *postgresRewardItemRepository) ListActive(ctx context.Context) ([]entity.RewardItem, error) {
	rows, err := r.db.Query(ctx, `SELECT `+rewardItemColumns+` FROM reward_items WHERE is_active ORDER BY id`)
	if err != nil {
		return nil, pgTranslate(err, "list reward items")
	}
	defer rows.Close()

	var items []entity.RewardItem
	for rows.Next() {
		item, err := scanRewardItem(rows)
		if err != nil {
			return nil, pgTranslate(err, "scan reward item")
		}
		items = append(items, *item)
	}
	return items, pgTranslate(rows.Err(), "list reward items")
}

func (r *postgresRewardItemRepository) SaveAll(ctx context.Context, items []entity.RewardItem) error {
	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(`
			INSERT INTO reward_items (`+rewardItemColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO UPDATE
			SET name = EXCLUDED.name, description = EXCLUDED.description, rarity = EXCLUDED.rarity,
			    type = EXCLUDED.type, icon_url = EXCLUDED.icon_url, is_active = EXCLUDED.is_active
		`, it.ID, it.Name, it.Description, it.Rarity, it.Type, it.IconURL, it.IsActive, it.CreatedAt)
	}
	return pgTranslate(r.db.SendBatch(ctx, batch).Close(), "save reward items")
}
