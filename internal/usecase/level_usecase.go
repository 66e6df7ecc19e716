package usecase

import (
	"context"
	"fmt"
	"time"

	"dailyrewards/internal/domain/entity"
	"dailyrewards/internal/domain/repository"
	"dailyrewards/internal/domain/service"
	"dailyrewards/pkg/errors"
	"dailyrewards/pkg/logger"
)

type LevelChange struct {
	Level        *entity.UserLevel       `json:"level"`
	ExpGained    int                     `json:"exp_gained"`
	LeveledUp    bool                    `json:"leveled_up"`
	LevelsGained int                     `json:"levels_gained"`
	Rewards      []service.LevelUpReward `json:"rewards,omitempty"`
}

type LevelOverview struct {
	Level       *entity.UserLevel         `json:"level"`
	Progress    service.LevelProgressInfo `json:"progress"`
	ExpToNext   int                       `json:"exp_to_next"`
	NextRewards []service.LevelUpReward   `json:"next_rewards,omitempty"`
}

// ExperienceService owns every experience grant so level-up side effects happen in one place.
type ExperienceService struct {
	levelRepo repository.UserLevelRepository
	items     ItemGranter
	notifier  Notifier
	clock     Clock
	logger    logger.Logger
}

func NewExperienceService(
	levelRepo repository.UserLevelRepository,
	items ItemGranter,
	notifier Notifier,
	clock Clock,
	log logger.Logger,
) *ExperienceService {
	if clock == nil {
		clock = time.Now
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &ExperienceService{
		levelRepo: levelRepo,
		items:     items,
		notifier:  notifier,
		clock:     clock,
		logger:    log,
	}
}

func (uc *ExperienceService) Grant(ctx context.Context, userID string, amount int, reason string) (*LevelChange, error) {
	if amount < 0 {
		return nil, errors.InvalidInput("experience amount must not be negative", nil)
	}

	var (
		before int
		result service.LevelResult
	)
	level, err := uc.levelRepo.Update(ctx, userID, func(current *entity.UserLevel) (*entity.UserLevel, error) {
		if current == nil {
			current = entity.NewUserLevel(userID)
		}
		before = current.CurrentLevel
		result = service.AddExperience(*current, amount)
		return &entity.UserLevel{
			UserID:       userID,
			CurrentLevel: result.Level,
			CurrentExp:   result.CurrentExp,
			TotalExp:     result.TotalExp,
			UpdatedAt:    uc.clock(),
		}, nil
	})
	if err != nil {
		return nil, errors.Internal("Failed to update user level", err)
	}

	change := &LevelChange{
		Level:        level,
		ExpGained:    amount,
		LeveledUp:    result.LeveledUp,
		LevelsGained: result.LevelsGained,
	}
	if !result.LeveledUp {
		return change, nil
	}

	change.Rewards = service.LevelUpRewardsBetween(before, result.Level)
	uc.logger.Info("user leveled up", "userID", userID, "from", before, "to", result.Level, "reason", reason)

	for _, reward := range change.Rewards {
		if reward.RewardType != service.LevelRewardItem || reward.RewardID == "" || uc.items == nil {
			continue
		}
		if _, err := uc.items.GrantItem(ctx, userID, reward.RewardID, entity.SourceLevelUp); err != nil {
			uc.logger.Warn("failed to grant level-up item", "userID", userID, "item", reward.RewardID, "error", err)
		}
	}

	uc.notifier.Notify(ctx, userID, entity.Notification{
		Kind:      entity.NotificationLevelUp,
		Message:   fmt.Sprintf("Level up! You are now level %d", result.Level),
		Sound:     entity.SoundLevelUp,
		Data:      map[string]interface{}{"level": result.Level, "rewards": len(change.Rewards)},
		CreatedAt: uc.clock(),
	})

	return change, nil
}

func (uc *ExperienceService) GetLevel(ctx context.Context, userID string) (*LevelOverview, error) {
	level, err := uc.levelRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !isNotFound(err) {
			return nil, errors.Internal("Failed to get user level", err)
		}
		level = entity.NewUserLevel(userID)
	}

	progress := service.LevelProgress(level.CurrentExp, level.CurrentLevel)
	next := (level.CurrentLevel/5 + 1) * 5

	return &LevelOverview{
		Level:       level,
		Progress:    progress,
		ExpToNext:   progress.Required - progress.Current,
		NextRewards: service.GetLevelUpRewards(next),
	}, nil
}
