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

type LoginResult struct {
	Streak       *entity.LoginStreak            `json:"streak"`
	IsNewDay     bool                           `json:"is_new_day"`
	StreakBroken bool                           `json:"streak_broken"`
	Multiplier   float64                        `json:"multiplier"`
	Bonus        *entity.LoginBonus             `json:"bonus,omitempty"`
	ActivityExp  *service.ExperienceReward      `json:"activity_exp,omitempty"`
	ExpGained    int                            `json:"exp_gained"`
	LevelChange  *LevelChange                   `json:"level_change,omitempty"`
	SpecialItem  *entity.InventoryItem          `json:"special_item,omitempty"`
	Achievements []entity.AchievementDefinition `json:"achievements,omitempty"`
}

type LoginStatus struct {
	HasLoggedInToday bool              `json:"has_logged_in_today"`
	CanClaimBonus    bool              `json:"can_claim_bonus"`
	CurrentStreak    int               `json:"current_streak"`
	LongestStreak    int               `json:"longest_streak"`
	TotalLoginDays   int               `json:"total_login_days"`
	Multiplier       float64           `json:"multiplier"`
	NextBonus        entity.LoginBonus `json:"next_bonus"`
	LastLoginDate    string            `json:"last_login_date,omitempty"`
}

type DailyLoginUseCase struct {
	streakRepo   repository.LoginStreakRepository
	activityRepo repository.DailyActivityRepository
	experience   ExperienceGranter
	items        ItemGranter
	achievements AchievementChecker
	notifier     Notifier
	clock        Clock
	location     *time.Location
	logger       logger.Logger
}

func NewDailyLoginUseCase(
	streakRepo repository.LoginStreakRepository,
	activityRepo repository.DailyActivityRepository,
	experience ExperienceGranter,
	items ItemGranter,
	achievements AchievementChecker,
	notifier Notifier,
	clock Clock,
	location *time.Location,
	log logger.Logger,
) *DailyLoginUseCase {
	if clock == nil {
		clock = time.Now
	}
	if location == nil {
		location = time.UTC
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &DailyLoginUseCase{
		streakRepo:   streakRepo,
		activityRepo: activityRepo,
		experience:   experience,
		items:        items,
		achievements: achievements,
		notifier:     notifier,
		clock:        clock,
		location:     location,
		logger:       log,
	}
}

// ProcessLogin records a login. Only the first login of a calendar day
// extends the streak and pays out the bonus; later ones just count.
func (uc *DailyLoginUseCase) ProcessLogin(ctx context.Context, userID string) (*LoginResult, error) {
	now := uc.clock()
	today := service.DateIn(now, uc.location)

	var outcome service.StreakResult
	streak, err := uc.streakRepo.Update(ctx, userID, func(current *entity.LoginStreak) (*entity.LoginStreak, error) {
		next, result := service.ApplyStreak(current, userID, today)
		next.UpdatedAt = now
		outcome = result
		return next, nil
	})
	if err != nil {
		return nil, errors.Internal("Failed to update login streak", err)
	}

	// Best effort: the streak update above already claimed the day.
	if err := uc.activityRepo.RecordLogin(ctx, userID, today); err != nil {
		uc.logger.Warn("failed to record login activity", "userID", userID, "error", err)
	}

	result := &LoginResult{
		Streak:       streak,
		IsNewDay:     outcome.IsNewDay,
		StreakBroken: outcome.StreakBroken,
		Multiplier:   outcome.BonusMultiplier,
	}
	if !outcome.IsNewDay {
		return result, nil
	}

	bonus := service.CalculateLoginBonus(streak.CurrentStreak)
	activityExp := service.ActivityExperience(service.ActivityTypeLogin, service.ActivityContext{LoginStreak: streak.CurrentStreak})
	result.Bonus = &bonus
	result.ActivityExp = &activityExp
	result.ExpGained = bonus.Exp + activityExp.Total()

	change, err := uc.experience.Grant(ctx, userID, result.ExpGained, "daily_login")
	if err != nil {
		return nil, err
	}
	result.LevelChange = change

	if bonus.SpecialReward != nil && uc.items != nil {
		item, err := uc.items.GrantItem(ctx, userID, bonus.SpecialReward.ItemID, entity.SourceLoginBonus)
		if err != nil {
			uc.logger.Warn("failed to grant login chest", "userID", userID, "item", bonus.SpecialReward.ItemID, "error", err)
		} else {
			result.SpecialItem = item
		}
	}

	uc.logger.Info("daily login processed",
		"userID", userID,
		"streak", streak.CurrentStreak,
		"broken", outcome.StreakBroken,
		"exp", result.ExpGained,
	)

	uc.notifier.Notify(ctx, userID, entity.Notification{
		Kind:    entity.NotificationStreak,
		Message: fmt.Sprintf("Day %d login streak! x%.1f bonus", streak.CurrentStreak, outcome.BonusMultiplier),
		Sound:   entity.SoundSuccess,
		Data: map[string]interface{}{
			"streak":     streak.CurrentStreak,
			"multiplier": outcome.BonusMultiplier,
			"coins":      bonus.Coins,
			"exp":        result.ExpGained,
		},
		CreatedAt: now,
	})

	if uc.achievements != nil {
		unlocked, err := uc.achievements.CheckAndUnlock(ctx, userID)
		if err != nil {
			uc.logger.Warn("achievement check failed after login", "userID", userID, "error", err)
		}
		result.Achievements = unlocked
	}

	return result, nil
}

func (uc *DailyLoginUseCase) GetLoginStatus(ctx context.Context, userID string) (*LoginStatus, error) {
	today := service.DateIn(uc.clock(), uc.location)

	streak, err := uc.streakRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !isNotFound(err) {
			return nil, errors.Internal("Failed to get login streak", err)
		}
		streak = nil
	}

	status := &LoginStatus{}
	if streak != nil {
		status.LongestStreak = streak.LongestStreak
		status.TotalLoginDays = streak.TotalLoginDays
		if streak.LastLoginDate != nil {
			status.LastLoginDate = service.FormatDate(*streak.LastLoginDate)
		}
	}

	next := service.CalculateStreak(streak, today)
	nextStreak := next.NewStreak
	if !next.IsNewDay {
		status.HasLoggedInToday = true
		status.CurrentStreak = streak.CurrentStreak
		// Preview tomorrow's bonus.
		nextStreak = streak.CurrentStreak + 1
	} else if !next.StreakBroken && streak != nil {
		status.CurrentStreak = streak.CurrentStreak
	}

	status.CanClaimBonus = !status.HasLoggedInToday
	status.Multiplier = service.StreakMultiplier(nextStreak)
	status.NextBonus = service.CalculateLoginBonus(nextStreak)

	return status, nil
}
