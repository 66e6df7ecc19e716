package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dailyrewards/internal/domain/entity"
	"dailyrewards/internal/domain/repository"
)

const achievementColumns = `id, name, description, category, condition_type, condition_threshold,
	condition_sub_value, reward_exp, points, icon_url, sort_order, is_active, created_at`

type postgresAchievementRepository struct {
	db *pgxpool.Pool
}

func NewPostgresAchievementRepository(db *pgxpool.Pool) repository.AchievementRepository {
	return &postgresAchievementRepository{db: db}
}

func (r *postgresAchievementRepository) ListActive(ctx context.Context) ([]entity.AchievementDefinition, error) {
	rows, err := r.db.Query(ctx, `SELECT `+achievementColumns+` FROM achievements WHERE is_active ORDER BY sort_order, id`)
	if err != nil {
		return nil, pgTranslate(err, "list achievements")
	}
	defer rows.Close()

	var defs []entity.AchievementDefinition
	for rows.Next() {
		var d entity.AchievementDefinition
		err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.Category, &d.ConditionType, &d.ConditionThreshold,
			&d.ConditionSubValue, &d.RewardExp, &d.Points, &d.IconURL, &d.SortOrder, &d.IsActive, &d.CreatedAt)
		if err != nil {
			return nil, pgTranslate(err, "scan achievement")
		}
		defs = append(defs, d)
	}
	return defs, pgTranslate(rows.Err(), "list achievements")
}

func (r *postgresAchievementRepository) SaveDefinitions(ctx context.Context, defs []entity.AchievementDefinition) error {
	batch := &pgx.Batch{}
	for _, d := range defs {
		batch.Queue(`
			INSERT INTO achievements (`+achievementColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			ON CONFLICT (id) DO UPDATE
			SET name = EXCLUDED.name, description = EXCLUDED.description, category = EXCLUDED.category,
			    condition_type = EXCLUDED.condition_type, condition_threshold = EXCLUDED.condition_threshold,
			    condition_sub_value = EXCLUDED.condition_sub_value, reward_exp = EXCLUDED.reward_exp,
			    points = EXCLUDED.points, icon_url = EXCLUDED.icon_url, sort_order = EXCLUDED.sort_order,
			    is_active = EXCLUDED.is_active
		`, d.ID, d.Name, d.Description, d.Category, d.ConditionType, d.ConditionThreshold,
			d.ConditionSubValue, d.RewardExp, d.Points, d.IconURL, d.SortOrder, d.IsActive, d.CreatedAt)
	}
	return pgTranslate(r.db.SendBatch(ctx, batch).Close(), "save achievements")
}

func (r *postgresAchievementRepository) ListUnlocked(ctx context.Context, userID string) ([]entity.UserAchievement, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id, achievement_id, unlocked_at FROM user_achievements WHERE user_id = $1 ORDER BY unlocked_at`,
		userID,
	)
	if err != nil {
		return nil, pgTranslate(err, "list user achievements")
	}
	defer rows.Close()

	var unlocked []entity.UserAchievement
	for rows.Next() {
		var ua entity.UserAchievement
		if err := rows.Scan(&ua.UserID, &ua.AchievementID, &ua.UnlockedAt); err != nil {
			return nil, pgTranslate(err, "scan user achievement")
		}
		unlocked = append(unlocked, ua)
	}
	return unlocked, pgTranslate(rows.Err(), "list user achievements")
}

func (r *postgresAchievementRepository) Unlock(ctx context.Context, unlocks []entity.UserAchievement) ([]string, error) {
	var inserted []string
	for _, ua := range unlocks {
		var id string
		err := r.db.QueryRow(ctx, `
			INSERT INTO user_achievements (user_id, achievement_id, unlocked_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (user_id, achievement_id) DO NOTHING
			RETURNING achievement_id
		`, ua.UserID, ua.AchievementID, ua.UnlockedAt).Scan(&id)
		if errors.Is(err, pgx.ErrNoRows) {
			continue
		}
		if err != nil {
			return inserted, pgTranslate(err, "unlock achievement")
		}
		inserted = append(inserted, id)
	}
	return inserted, nil
}
