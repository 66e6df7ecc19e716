package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"dailyrewards/internal/domain/entity"
	"dailyrewards/internal/domain/repository"
	"dailyrewards/internal/domain/service"
	"dailyrewards/pkg/errors"
	"dailyrewards/pkg/logger"
)

// Coins have no balance of their own; they are paid out as experience at this rate.
const coinsPerExp = 10

type RouletteResult struct {
	*service.SpinResult
	ExpGained    int                            `json:"exp_gained"`
	LevelChange  *LevelChange                   `json:"level_change,omitempty"`
	Item         *entity.InventoryItem          `json:"item,omitempty"`
	Achievements []entity.AchievementDefinition `json:"achievements,omitempty"`
}

type RouletteStatus struct {
	CanPlay      bool                      `json:"can_play"`
	LastPlayedAt *time.Time                `json:"last_played_at,omitempty"`
	Rewards      []entity.RewardDefinition `json:"rewards"`
}

type RouletteUseCase struct {
	activityRepo repository.DailyActivityRepository
	roller       *service.RewardRoller
	rewards      []entity.RewardDefinition
	experience   ExperienceGranter
	items        ItemGranter
	achievements AchievementChecker
	notifier     Notifier
	clock        Clock
	location     *time.Location
	logger       logger.Logger
}

func NewRouletteUseCase(
	activityRepo repository.DailyActivityRepository,
	roller *service.RewardRoller,
	rewards []entity.RewardDefinition,
	experience ExperienceGranter,
	items ItemGranter,
	achievements AchievementChecker,
	notifier Notifier,
	clock Clock,
	location *time.Location,
	log logger.Logger,
) *RouletteUseCase {
	if clock == nil {
		clock = time.Now
	}
	if location == nil {
		location = time.UTC
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if rewards == nil {
		rewards = service.DefaultRouletteRewards()
	}
	return &RouletteUseCase{
		activityRepo: activityRepo,
		roller:       roller,
		rewards:      rewards,
		experience:   experience,
		items:        items,
		achievements: achievements,
		notifier:     notifier,
		clock:        clock,
		location:     location,
		logger:       log,
	}
}

// Rewards returns the wheel ordered from rarest to most common.
func (uc *RouletteUseCase) Rewards() []entity.RewardDefinition {
	return service.SortByRarity(uc.rewards)
}

// Spin claims today's roulette play first and only then draws, so a
// concurrent second request can never win twice.
func (uc *RouletteUseCase) Spin(ctx context.Context, userID string) (*RouletteResult, error) {
	if len(uc.rewards) == 0 {
		return nil, errors.InvalidInput("reward list is empty", nil)
	}

	today := service.DateIn(uc.clock(), uc.location)
	if err := uc.activityRepo.CompleteActivity(ctx, userID, today, entity.ActivityRoulette, 0); err != nil {
		if stderrors.Is(err, entity.ErrActivityAlreadyCompleted) {
			return nil, errors.AlreadyClaimed("Roulette", err)
		}
		return nil, errors.Internal("Failed to record roulette play", err)
	}

	spin, err := uc.roller.Spin(uc.rewards)
	if err != nil {
		return nil, err
	}
	reward := spin.Reward

	result := &RouletteResult{SpinResult: spin}
	activityExp := service.ActivityExperience(service.ActivityTypeRoulette, service.ActivityContext{})
	result.ExpGained = reward.Exp + reward.Coins/coinsPerExp + activityExp.Total()

	change, err := uc.experience.Grant(ctx, userID, result.ExpGained, "roulette")
	if err != nil {
		return nil, err
	}
	result.LevelChange = change

	if reward.ItemID != "" && uc.items != nil {
		item, err := uc.items.GrantItem(ctx, userID, reward.ItemID, entity.SourceRoulette)
		if err != nil {
			uc.logger.Warn("failed to grant roulette item", "userID", userID, "item", reward.ItemID, "error", err)
		} else {
			result.Item = item
		}
	}

	uc.logger.Info("roulette spun", "userID", userID, "reward", reward.ID, "rarity", reward.Rarity, "exp", result.ExpGained)

	uc.notifier.Notify(ctx, userID, entity.Notification{
		Kind:    entity.NotificationReward,
		Message: fmt.Sprintf("You won %s!", reward.Name),
		Sound:   entity.SoundReward,
		Data: map[string]interface{}{
			"reward_id": reward.ID,
			"rarity":    reward.Rarity,
			"exp":       result.ExpGained,
		},
		CreatedAt: uc.clock(),
	})

	if uc.achievements != nil {
		unlocked, err := uc.achievements.CheckAndUnlock(ctx, userID)
		if err != nil {
			uc.logger.Warn("achievement check failed after roulette", "userID", userID, "error", err)
		}
		result.Achievements = unlocked
	}

	return result, nil
}

func (uc *RouletteUseCase) Status(ctx context.Context, userID string) (*RouletteStatus, error) {
	today := service.DateIn(uc.clock(), uc.location)

	status := &RouletteStatus{CanPlay: true, Rewards: uc.Rewards()}

	activity, err := uc.activityRepo.Get(ctx, userID, today)
	if err != nil {
		if isNotFound(err) {
			return status, nil
		}
		return nil, errors.Internal("Failed to get daily activity", err)
	}

	if activity.Completed(entity.ActivityRoulette) {
		status.CanPlay = false
		playedAt := activity.UpdatedAt
		status.LastPlayedAt = &playedAt
	}
	return status, nil
}
