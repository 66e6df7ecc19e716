package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dailyrewards/internal/domain/entity"
	"dailyrewards/internal/domain/repository"
)

const streakColumns = `user_id, current_streak, longest_streak, last_login_date, total_login_days, updated_at`

type postgresLoginStreakRepository struct {
	db *pgxpool.Pool
}

func NewPostgresLoginStreakRepository(db *pgxpool.Pool) repository.LoginStreakRepository {
	return &postgresLoginStreakRepository{db: db}
}

func scanStreak(row rowScanner) (*entity.LoginStreak, error) {
	var s entity.LoginStreak
	if err := row.Scan(&s.UserID, &s.CurrentStreak, &s.LongestStreak, &s.LastLoginDate, &s.TotalLoginDays, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *postgresLoginStreakRepository) GetByUserID(ctx context.Context, userID string) (*entity.LoginStreak, error) {
	streak, err := scanStreak(r.db.QueryRow(ctx, `SELECT `+streakColumns+` FROM login_streaks WHERE user_id = $1`, userID))
	if err != nil {
		return nil, pgTranslate(err, "get login streak")
	}
	return streak, nil
}

// Update inserts a placeholder row when none exists so that concurrent first
// logins serialize on the same row lock.
func (r *postgresLoginStreakRepository) Update(ctx context.Context, userID string, mutate repository.StreakMutator) (*entity.LoginStreak, error) {
	var updated *entity.LoginStreak
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `INSERT INTO login_streaks (user_id) VALUES ($1) ON CONFLICT DO NOTHING`, userID)
		if err != nil {
			return err
		}
		created := tag.RowsAffected() == 1

		current, err := scanStreak(tx.QueryRow(ctx, `SELECT `+streakColumns+` FROM login_streaks WHERE user_id = $1 FOR UPDATE`, userID))
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
			UPDATE login_streaks
			SET current_streak = $2, longest_streak = $3, last_login_date = $4,
			    total_login_days = $5, updated_at = $6
			WHERE user_id = $1
		`, userID, next.CurrentStreak, next.LongestStreak, next.LastLoginDate, next.TotalLoginDays, next.UpdatedAt)
		if err != nil {
			return err
		}

		updated = next
		return nil
	})
	if err != nil {
		return nil, pgTranslate(err, "update login streak")
	}
	return updated, nil
}

func (r *postgresLoginStreakRepository) TopByCurrentStreak(ctx context.Context, limit int) ([]entity.LoginStreak, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+streakColumns+`
		FROM login_streaks
		WHERE current_streak > 0
		ORDER BY current_streak DESC, longest_streak DESC, user_id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, pgTranslate(err, "list login streaks")
	}
	defer rows.Close()

	var streaks []entity.LoginStreak
	for rows.Next() {
		s, err := scanStreak(rows)
		if err != nil {
			return nil, pgTranslate(err, "scan login streak")
		}
		streaks = append(streaks, *s)
	}
	return streaks, pgTranslate(rows.Err(), "list login streaks")
}
