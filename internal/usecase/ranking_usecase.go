package usecase

import (
	"context"
	"fmt"

	"dailyrewards/internal/domain/entity"
	"dailyrewards/internal/domain/repository"
	"dailyrewards/pkg/errors"
	"dailyrewards/pkg/logger"
)

const (
	defaultRankingLimit = 10
	maxRankingLimit     = 100
)

type RankingUseCase struct {
	userRepo     repository.UserRepository
	levelRepo    repository.UserLevelRepository
	streakRepo   repository.LoginStreakRepository
	activityRepo repository.DailyActivityRepository
	cache        RankingCache
	logger       logger.Logger
}

// NewRankingUseCase builds the leaderboard service. cache may be nil, in
// which case every request reads from storage.
func NewRankingUseCase(
	userRepo repository.UserRepository,
	levelRepo repository.UserLevelRepository,
	streakRepo repository.LoginStreakRepository,
	activityRepo repository.DailyActivityRepository,
	cache RankingCache,
	log logger.Logger,
) *RankingUseCase {
	return &RankingUseCase{
		userRepo:     userRepo,
		levelRepo:    levelRepo,
		streakRepo:   streakRepo,
		activityRepo: activityRepo,
		cache:        cache,
		logger:       log,
	}
}

func (uc *RankingUseCase) Get(ctx context.Context, rankingType entity.RankingType, limit int) ([]entity.RankingEntry, error) {
	if !rankingType.Valid() {
		return nil, errors.InvalidInput(fmt.Sprintf("unknown ranking type %q", rankingType), nil)
	}
	if limit <= 0 {
		limit = defaultRankingLimit
	}
	limit = min(limit, maxRankingLimit)

	if uc.cache != nil {
		entries, ok, err := uc.cache.Get(ctx, rankingType)
		if err != nil {
			uc.logger.Warn("ranking cache read failed", "type", rankingType, "error", err)
		} else if ok {
			return head(entries, limit), nil
		}
	}

	entries, err := uc.build(ctx, rankingType)
	if err != nil {
		return nil, errors.Internal("Failed to build ranking", err)
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, rankingType, entries); err != nil {
			uc.logger.Warn("ranking cache write failed", "type", rankingType, "error", err)
		}
	}

	return head(entries, limit), nil
}

// Refresh rebuilds every ranking into the cache.
func (uc *RankingUseCase) Refresh(ctx context.Context) error {
	if uc.cache == nil {
		return nil
	}
	for _, rankingType := range entity.RankingTypes {
		entries, err := uc.build(ctx, rankingType)
		if err != nil {
			return fmt.Errorf("failed to build %s ranking: %w", rankingType, err)
		}
		if err := uc.cache.Set(ctx, rankingType, entries); err != nil {
			return fmt.Errorf("failed to cache %s ranking: %w", rankingType, err)
		}
	}
	uc.logger.Debug("rankings refreshed", "types", len(entity.RankingTypes))
	return nil
}

func (uc *RankingUseCase) build(ctx context.Context, rankingType entity.RankingType) ([]entity.RankingEntry, error) {
	var entries []entity.RankingEntry

	switch rankingType {
	case entity.RankingLevel:
		levels, err := uc.levelRepo.TopByLevel(ctx, maxRankingLimit)
		if err != nil {
			return nil, err
		}
		for _, l := range levels {
			entries = append(entries, entity.RankingEntry{UserID: l.UserID, Value: l.CurrentLevel, Secondary: l.TotalExp})
		}
	case entity.RankingLoginStreak:
		streaks, err := uc.streakRepo.TopByCurrentStreak(ctx, maxRankingLimit)
		if err != nil {
			return nil, err
		}
		for _, s := range streaks {
			entries = append(entries, entity.RankingEntry{UserID: s.UserID, Value: s.CurrentStreak, Secondary: s.LongestStreak})
		}
	case entity.RankingMiniGameScore:
		scores, err := uc.activityRepo.TopMiniGameScores(ctx, maxRankingLimit)
		if err != nil {
			return nil, err
		}
		seen := make(map[string]bool, len(scores))
		for _, a := range scores {
			if seen[a.UserID] {
				continue
			}
			seen[a.UserID] = true
			entries = append(entries, entity.RankingEntry{UserID: a.UserID, Value: a.MiniGameScore})
		}
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.UserID)
	}
	users, err := uc.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range entries {
		entries[i].Rank = i + 1
		entries[i].DisplayName = users[entries[i].UserID].Name()
	}
	if entries == nil {
		entries = []entity.RankingEntry{}
	}
	return entries, nil
}

func head(entries []entity.RankingEntry, limit int) []entity.RankingEntry {
	if len(entries) <= limit {
		return entries
	}
	return entries[:limit]
}
