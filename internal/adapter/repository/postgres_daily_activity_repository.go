package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"dailyrewards/internal/domain/entity"
	"dailyrewards/internal/domain/repository"
)

const activityColumns = `user_id, activity_date, login_count, roulette_completed, mini_game_completed, mini_game_score, updated_at`

type postgresDailyActivityRepository struct {
	db *pgxpool.Pool
}

func NewPostgresDailyActivityRepository(db *pgxpool.Pool) repository.DailyActivityRepository {
	return &postgresDailyActivityRepository{db: db}
}

func scanActivity(row rowScanner) (*entity.DailyActivity, error) {
	var a entity.DailyActivity
	err := row.Scan(&a.UserID, &a.ActivityDate, &a.LoginCount, &a.RouletteCompleted, &a.MiniGameCompleted, &a.MiniGameScore, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *postgresDailyActivityRepository) Get(ctx context.Context, userID string, date time.Time) (*entity.DailyActivity, error) {
	activity, err := scanActivity(r.db.QueryRow(ctx,
		`SELECT `+activityColumns+` FROM daily_activities WHERE user_id = $1 AND activity_date = $2`,
		userID, date,
	))
	if err != nil {
		return nil, pgTranslate(err, "get daily activity")
	}
	return activity, nil
}

func (r *postgresDailyActivityRepository) ListByUser(ctx context.Context, userID string) ([]entity.DailyActivity, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+activityColumns+` FROM daily_activities WHERE user_id = $1 ORDER BY activity_date`,
		userID,
	)
	if err != nil {
		return nil, pgTranslate(err, "list daily activities")
	}
	defer rows.Close()

	var activities []entity.DailyActivity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, pgTranslate(err, "scan daily activity")
		}
		activities = append(activities, *a)
	}
	return activities, pgTranslate(rows.Err(), "list daily activities")
}

func (r *postgresDailyActivityRepository) RecordLogin(ctx context.Context, userID string, date time.Time) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO daily_activities (user_id, activity_date, login_count, updated_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (user_id, activity_date) DO UPDATE
		SET login_count = daily_activities.login_count + 1, updated_at = NOW()
	`, userID, date)
	return pgTranslate(err, "record login")
}

// CompleteActivity flips the completion flag in a single upsert. The
// conditional DO UPDATE touches no row when the flag is already set.
func (r *postgresDailyActivityRepository) CompleteActivity(ctx context.Context, userID string, date time.Time, kind entity.ActivityKind, score int) error {
	var query string
	args := []any{userID, date}

	switch kind {
	case entity.ActivityRoulette:
		query = `
			INSERT INTO daily_activities (user_id, activity_date, roulette_completed, updated_at)
			VALUES ($1, $2, TRUE, NOW())
			ON CONFLICT (user_id, activity_date) DO UPDATE
			SET roulette_completed = TRUE, updated_at = NOW()
			WHERE NOT daily_activities.roulette_completed
		`
	case entity.ActivityMiniGame:
		query = `
			INSERT INTO daily_activities (user_id, activity_date, mini_game_completed, mini_game_score, updated_at)
			VALUES ($1, $2, TRUE, $3, NOW())
			ON CONFLICT (user_id, activity_date) DO UPDATE
			SET mini_game_completed = TRUE, mini_game_score = EXCLUDED.mini_game_score, updated_at = NOW()
			WHERE NOT daily_activities.mini_game_completed
		`
		args = append(args, score)
	default:
		return fmt.Errorf("activity %q cannot be completed", kind)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return pgTranslate(err, "complete daily activity")
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrActivityAlreadyCompleted
	}
	return nil
}

func (r *postgresDailyActivityRepository) TopMiniGameScores(ctx context.Context, limit int) ([]entity.DailyActivity, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+activityColumns+`
		FROM (
			SELECT DISTINCT ON (user_id) `+activityColumns+`
			FROM daily_activities
			WHERE mini_game_completed
			ORDER BY user_id, mini_game_score DESC, activity_date
		) best
		ORDER BY mini_game_score DESC, activity_date, user_id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, pgTranslate(err, "list mini-game scores")
	}
	defer rows.Close()

	var activities []entity.DailyActivity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, pgTranslate(err, "scan daily activity")
		}
		activities = append(activities, *a)
	}
	return activities, pgTranslate(rows.Err(), "list mini-game scores")
}
