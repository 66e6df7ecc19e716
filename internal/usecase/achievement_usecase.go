package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"dailyrewards/internal/domain/entity"
	"dailyrewards/internal/domain/repository"
	"dailyrewards/internal/domain/service"
	"dailyrewards/pkg/errors"
	"dailyrewards/pkg/logger"
)

// Unlock rewards can push the user over another threshold (exp_earned,
// level_reached), so a check re-evaluates a bounded number of times.
const maxUnlockPasses = 3

type AchievementUseCase interface {
	CheckAndUnlock(ctx context.Context, userID string) ([]entity.AchievementDefinition, error)
	List(ctx context.Context, userID string) (*AchievementList, error)
}

type AchievementStatus struct {
	entity.AchievementDefinition
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
	Progress   int        `json:"progress"`
	Percentage int        `json:"percentage"`
}

type AchievementList struct {
	Achievements  []AchievementStatus `json:"achievements"`
	UnlockedCount int                 `json:"unlocked_count"`
	TotalCount    int                 `json:"total_count"`
	TotalPoints   int                 `json:"total_points"`
}

type achievementUseCase struct {
	achievementRepo repository.AchievementRepository
	stats           *StatsCollector
	experience      ExperienceGranter
	notifier        Notifier
	clock           Clock
	logger          logger.Logger
}

func NewAchievementUseCase(
	achievementRepo repository.AchievementRepository,
	stats *StatsCollector,
	experience ExperienceGranter,
	notifier Notifier,
	clock Clock,
	log logger.Logger,
) AchievementUseCase {
	if clock == nil {
		clock = time.Now
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &achievementUseCase{
		achievementRepo: achievementRepo,
		stats:           stats,
		experience:      experience,
		notifier:        notifier,
		clock:           clock,
		logger:          log,
	}
}

// CheckAndUnlock unlocks every achievement the user now qualifies for and
// returns the ones that were newly unlocked by this call.
func (uc *achievementUseCase) CheckAndUnlock(ctx context.Context, userID string) ([]entity.AchievementDefinition, error) {
	defs, err := uc.achievementRepo.ListActive(ctx)
	if err != nil {
		return nil, errors.Internal("Failed to list achievements", err)
	}
	byID := make(map[string]entity.AchievementDefinition, len(defs))
	for _, def := range defs {
		byID[def.ID] = def
	}

	unlocked, err := uc.unlockedSet(ctx, userID)
	if err != nil {
		return nil, err
	}

	var newlyUnlocked []entity.AchievementDefinition
	for pass := 0; pass < maxUnlockPasses; pass++ {
		stats, err := uc.stats.Collect(ctx, userID)
		if err != nil {
			return nil, errors.Internal("Failed to collect user stats", err)
		}

		result := service.Evaluate(defs, stats, unlocked)
		if len(result.Unlocked) == 0 {
			break
		}

		now := uc.clock()
		unlocks := make([]entity.UserAchievement, 0, len(result.Unlocked))
		for _, def := range result.Unlocked {
			unlocks = append(unlocks, entity.UserAchievement{UserID: userID, AchievementID: def.ID, UnlockedAt: now})
		}

		inserted, err := uc.achievementRepo.Unlock(ctx, unlocks)
		if err != nil {
			return nil, errors.Internal("Failed to unlock achievements", err)
		}
		for _, def := range result.Unlocked {
			unlocked[def.ID] = true
		}
		if len(inserted) == 0 {
			break
		}

		for _, id := range inserted {
			def, ok := byID[id]
			if !ok {
				continue
			}
			newlyUnlocked = append(newlyUnlocked, def)
			uc.reward(ctx, userID, def)
		}
	}

	return newlyUnlocked, nil
}

func (uc *achievementUseCase) reward(ctx context.Context, userID string, def entity.AchievementDefinition) {
	uc.logger.Info("achievement unlocked", "userID", userID, "achievement", def.ID)

	exp := def.RewardExp + service.ActivityExperience(service.ActivityTypeAchievement, service.ActivityContext{}).Total()
	if uc.experience != nil {
		if _, err := uc.experience.Grant(ctx, userID, exp, "achievement:"+def.ID); err != nil {
			uc.logger.Error("failed to grant achievement experience", "userID", userID, "achievement", def.ID, "error", err)
		}
	}

	uc.notifier.Notify(ctx, userID, entity.Notification{
		Kind:    entity.NotificationAchievement,
		Message: fmt.Sprintf("Achievement unlocked: %s", def.Name),
		Sound:   entity.SoundAchievement,
		Data: map[string]interface{}{
			"achievement_id": def.ID,
			"points":         def.Points,
			"exp":            exp,
		},
		CreatedAt: uc.clock(),
	})
}

func (uc *achievementUseCase) List(ctx context.Context, userID string) (*AchievementList, error) {
	defs, err := uc.achievementRepo.ListActive(ctx)
	if err != nil {
		return nil, errors.Internal("Failed to list achievements", err)
	}

	userAchievements, err := uc.achievementRepo.ListUnlocked(ctx, userID)
	if err != nil {
		return nil, errors.Internal("Failed to list unlocked achievements", err)
	}
	unlockedAt := make(map[string]time.Time, len(userAchievements))
	unlockedIDs := make(map[string]bool, len(userAchievements))
	for _, ua := range userAchievements {
		unlockedAt[ua.AchievementID] = ua.UnlockedAt
		unlockedIDs[ua.AchievementID] = true
	}

	stats, err := uc.stats.Collect(ctx, userID)
	if err != nil {
		return nil, errors.Internal("Failed to collect user stats", err)
	}

	sort.SliceStable(defs, func(i, j int) bool {
		return defs[i].SortOrder < defs[j].SortOrder
	})

	list := &AchievementList{
		Achievements: make([]AchievementStatus, 0, len(defs)),
		TotalCount:   len(defs),
		TotalPoints:  service.AchievementPoints(defs, unlockedIDs),
	}
	for _, def := range defs {
		status := AchievementStatus{AchievementDefinition: def}
		if at, ok := unlockedAt[def.ID]; ok {
			at := at
			status.Unlocked = true
			status.UnlockedAt = &at
			status.Progress = def.ConditionThreshold
			status.Percentage = 100
			list.UnlockedCount++
		} else {
			progress := service.CheckProgress(def, stats)
			status.Progress = progress.Current
			status.Percentage = service.ProgressPercentage(progress.Current, progress.Max)
		}
		list.Achievements = append(list.Achievements, status)
	}

	return list, nil
}

func (uc *achievementUseCase) unlockedSet(ctx context.Context, userID string) (map[string]bool, error) {
	existing, err := uc.achievementRepo.ListUnlocked(ctx, userID)
	if err != nil {
		return nil, errors.Internal("Failed to list unlocked achievements", err)
	}
	set := make(map[string]bool, len(existing))
	for _, ua := range existing {
		set[ua.AchievementID] = true
	}
	return set, nil
}
