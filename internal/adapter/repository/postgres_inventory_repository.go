package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"dailyrewards/internal/domain/entity"
	"dailyrewards/internal/domain/repository"
)

const inventoryColumns = `id, user_id, reward_item_id, quantity, source, acquired_at, is_used, used_at`

type postgresInventoryRepository struct {
	db *pgxpool.Pool
}

func NewPostgresInventoryRepository(db *pgxpool.Pool) repository.InventoryRepository {
	return &postgresInventoryRepository{db: db}
}

func scanInventoryItem(row rowScanner) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	if err := row.Scan(&it.ID, &it.UserID, &it.RewardItemID, &it.Quantity, &it.Source, &it.AcquiredAt, &it.IsUsed, &it.UsedAt); err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *postgresInventoryRepository) Add(ctx context.Context, item *entity.InventoryItem) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO user_inventory (`+inventoryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, item.ID, item.UserID, item.RewardItemID, item.Quantity, item.Source, item.AcquiredAt, item.IsUsed, item.UsedAt)
	return pgTranslate(err, "add inventory item")
}

func (r *postgresInventoryRepository) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	item, err := scanInventoryItem(r.db.QueryRow(ctx, `SELECT `+inventoryColumns+` FROM user_inventory WHERE id = $1`, id))
	if err != nil {
		return nil, pgTranslate(err, "get inventory item")
	}
	return item, nil
}

func (r *postgresInventoryRepository) ListByUser(ctx context.Context, userID string) ([]entity.InventoryItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+inventoryColumns+` FROM user_inventory WHERE user_id = $1 ORDER BY acquired_at DESC`,
		userID,
	)
	if err != nil {
		return nil, pgTranslate(err, "list inventory")
	}
	defer rows.Close()

	var items []entity.InventoryItem
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, pgTranslate(err, "scan inventory item")
		}
		items = append(items, *item)
	}
	return items, pgTranslate(rows.Err(), "list inventory")
}

func (r *postgresInventoryRepository) MarkUsed(ctx context.Context, id string, usedAt time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE user_inventory SET is_used = TRUE, used_at = $2 WHERE id = $1 AND NOT is_used`,
		id, usedAt,
	)
	if err != nil {
		return pgTranslate(err, "mark inventory item used")
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM user_inventory WHERE id = $1)`, id).Scan(&exists); err != nil {
		return pgTranslate(err, "check inventory item")
	}
	if !exists {
		return entity.ErrNotFound
	}
	return entity.ErrItemAlreadyUsed
}

func (r *postgresInventoryRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM user_inventory WHERE id = $1`, id)
	if err != nil {
		return pgTranslate(err, "delete inventory item")
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrNotFound
	}
	return nil
}
