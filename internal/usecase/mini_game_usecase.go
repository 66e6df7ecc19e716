package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"dailyrewards/internal/domain/entity"
	"dailyrewards/internal/domain/repository"
	"dailyrewards/internal/domain/service"
	"dailyrewards/pkg/errors"
	"dailyrewards/pkg/logger"
)

type MiniGameSession struct {
	Rounds        int   `json:"rounds"`
	WaitTimes     []int `json:"wait_times"`
	MaxReactionMs int   `json:"max_reaction_ms"`
}

type MiniGameResult struct {
	*service.GameResult
	Rewards      entity.MiniGameRewards         `json:"rewards"`
	ExpGained    int                            `json:"exp_gained"`
	LevelChange  *LevelChange                   `json:"level_change,omitempty"`
	BonusItem    *entity.InventoryItem          `json:"bonus_item,omitempty"`
	Achievements []entity.AchievementDefinition `json:"achievements,omitempty"`
}

type MiniGameStatus struct {
	CanPlay    bool `json:"can_play"`
	TodayScore int  `json:"today_score"`
}

type MiniGameUseCase struct {
	activityRepo repository.DailyActivityRepository
	experience   ExperienceGranter
	items        ItemGranter
	achievements AchievementChecker
	notifier     Notifier
	clock        Clock
	location     *time.Location
	logger       logger.Logger

	mu  sync.Mutex
	rng service.RandomSource
}

func NewMiniGameUseCase(
	activityRepo repository.DailyActivityRepository,
	rng service.RandomSource,
	experience ExperienceGranter,
	items ItemGranter,
	achievements AchievementChecker,
	notifier Notifier,
	clock Clock,
	location *time.Location,
	log logger.Logger,
) *MiniGameUseCase {
	if rng == nil {
		rng = service.DefaultSource()
	}
	if clock == nil {
		clock = time.Now
	}
	if location == nil {
		location = time.UTC
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &MiniGameUseCase{
		activityRepo: activityRepo,
		rng:          rng,
		experience:   experience,
		items:        items,
		achievements: achievements,
		notifier:     notifier,
		clock:        clock,
		location:     location,
		logger:       log,
	}
}

// Start hands the client the round layout. The client reports raw reaction
// times back through Submit; scoring never trusts client-side points.
func (uc *MiniGameUseCase) Start() MiniGameSession {
	uc.mu.Lock()
	waits := service.WaitTimes(uc.rng)
	uc.mu.Unlock()

	return MiniGameSession{
		Rounds:        service.GameRounds,
		WaitTimes:     waits,
		MaxReactionMs: service.MaxReactionMs,
	}
}

func (uc *MiniGameUseCase) Submit(ctx context.Context, userID string, reactionTimes []int) (*MiniGameResult, error) {
	game, err := service.ScoreRounds(reactionTimes)
	if err != nil {
		return nil, err
	}

	today := service.DateIn(uc.clock(), uc.location)
	if err := uc.activityRepo.CompleteActivity(ctx, userID, today, entity.ActivityMiniGame, game.TotalScore); err != nil {
		if stderrors.Is(err, entity.ErrActivityAlreadyCompleted) {
			return nil, errors.AlreadyClaimed("Mini-game", err)
		}
		return nil, errors.Internal("Failed to record mini-game play", err)
	}

	uc.mu.Lock()
	rewards := service.RankRewards(game.Rank, uc.rng)
	uc.mu.Unlock()

	activityExp := service.ActivityExperience(service.ActivityTypeMiniGame, service.ActivityContext{MiniGameScore: game.TotalScore})
	result := &MiniGameResult{
		GameResult: game,
		Rewards:    rewards,
		ExpGained:  rewards.Exp + activityExp.Total(),
	}

	change, err := uc.experience.Grant(ctx, userID, result.ExpGained, "mini_game")
	if err != nil {
		return nil, err
	}
	result.LevelChange = change

	if rewards.BonusItem != nil && uc.items != nil {
		item, err := uc.items.GrantItem(ctx, userID, rewards.BonusItem.ItemID, entity.SourceMiniGame)
		if err != nil {
			uc.logger.Warn("failed to grant mini-game bonus item", "userID", userID, "item", rewards.BonusItem.ItemID, "error", err)
		} else {
			result.BonusItem = item
		}
	}

	uc.logger.Info("mini-game submitted", "userID", userID, "score", game.TotalScore, "rank", game.Rank)

	uc.notifier.Notify(ctx, userID, entity.Notification{
		Kind:    entity.NotificationReward,
		Message: fmt.Sprintf("Rank %s! %s", game.Rank, game.Message),
		Sound:   entity.SoundSuccess,
		Data: map[string]interface{}{
			"score": game.TotalScore,
			"rank":  game.Rank,
			"exp":   result.ExpGained,
		},
		CreatedAt: uc.clock(),
	})

	if uc.achievements != nil {
		unlocked, err := uc.achievements.CheckAndUnlock(ctx, userID)
		if err != nil {
			uc.logger.Warn("achievement check failed after mini-game", "userID", userID, "error", err)
		}
		result.Achievements = unlocked
	}

	return result, nil
}

func (uc *MiniGameUseCase) Status(ctx context.Context, userID string) (*MiniGameStatus, error) {
	today := service.DateIn(uc.clock(), uc.location)

	activity, err := uc.activityRepo.Get(ctx, userID, today)
	if err != nil {
		if isNotFound(err) {
			return &MiniGameStatus{CanPlay: true}, nil
		}
		return nil, errors.Internal("Failed to get daily activity", err)
	}

	return &MiniGameStatus{
		CanPlay:    !activity.Completed(entity.ActivityMiniGame),
		TodayScore: activity.MiniGameScore,
	}, nil
}
