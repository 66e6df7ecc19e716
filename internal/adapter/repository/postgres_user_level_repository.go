package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dailyrewards/internal/domain/entity"
	"dailyrewards/internal/domain/repository"
)

const levelColumns = `user_id, current_level, current_exp, total_exp, updated_at`

type postgresUserLevelRepository struct {
	db *pgxpool.Pool
}

func NewPostgresUserLevelRepository(db *pgxpool.Pool) repository.UserLevelRepository {
	return &postgresUserLevelRepository{db: db}
}

func scanLevel(row rowScanner) (*entity.UserLevel, error) {
	var l entity.UserLevel
	if err := row.Scan(&l.UserID, &l.CurrentLevel, &l.CurrentExp, &l.TotalExp, &l.UpdatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *postgresUserLevelRepository) GetByUserID(ctx context.Context, userID string) (*entity.UserLevel, error) {
	level, err := scanLevel(r.db.QueryRow(ctx, `SELECT `+levelColumns+` FROM user_levels WHERE user_id = $1`, userID))
	if err != nil {
		return nil, pgTranslate(err, "get user level")
	}
	return level, nil
}

func (r *postgresUserLevelRepository) Update(ctx context.Context, userID string, mutate repository.LevelMutator) (*entity.UserLevel, error) {
	var updated *entity.UserLevel
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `INSERT INTO user_levels (user_id) VALUES ($1) ON CONFLICT DO NOTHING`, userID)
		if err != nil {
			return err
		}
		created := tag.RowsAffected() == 1

		current, err := scanLevel(tx.QueryRow(ctx, `SELECT `+levelColumns+` FROM user_levels WHERE user_id = $1 FOR UPDATE`, userID))
		if err != nil {
			return err
		}
		if created {
			current = nil
		}

		next, err := mutate(current)
		if err != nil {
			return err
		}
		next.UserID = userID

		_, err = tx.Exec(ctx, `
			UPDATE user_levels
			SET current_level = $2, current_exp = $3, total_exp = $4, updated_at = $5
			WHERE user_id = $1
		`, userID, next.CurrentLevel, next.CurrentExp, next.TotalExp, next.UpdatedAt)
		if err != nil {
			return err
		}

		updated = next
		return nil
	})
	if err != nil {
		return nil, pgTranslate(err, "update user level")
	}
	return updated, nil
}

func (r *postgresUserLevelRepository) TopByLevel(ctx context.Context, limit int) ([]entity.UserLevel, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+levelColumns+`
		FROM user_levels
		ORDER BY current_level DESC, total_exp DESC, user_id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, pgTranslate(err, "list user levels")
	}
	defer rows.Close()

	var levels []entity.UserLevel
	for rows.Next() {
		l, err := scanLevel(rows)
		if err != nil {
			return nil, pgTranslate(err, "scan user level")
		}
		levels = append(levels, *l)
	}
	return levels, pgTranslate(rows.Err(), "list user levels")
}
