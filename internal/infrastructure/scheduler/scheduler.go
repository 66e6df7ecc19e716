package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"dailyrewards/pkg/logger"
)

type RankingRefresher interface {
	Refresh(ctx context.Context) error
}

type Cleaner interface {
	Cleanup() int
}

type Specs struct {
	RankingRefresh   string
	RateLimitCleanup string
}

// Scheduler runs the periodic maintenance jobs.
type Scheduler struct {
	cron     *cron.Cron
	rankings RankingRefresher
	limiter  Cleaner
	specs    Specs
	logger   logger.Logger
}

func New(loc *time.Location, specs Specs, rankings RankingRefresher, limiter Cleaner, log logger.Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		rankings: rankings,
		limiter:  limiter,
		specs:    specs,
		logger:   log,
	}
}

// Start registers the jobs and starts the cron loop. ctx is handed to every run.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.rankings != nil {
		if _, err := s.cron.AddFunc(s.specs.RankingRefresh, func() { s.refreshRankings(ctx) }); err != nil {
			return fmt.Errorf("invalid ranking refresh schedule %q: %w", s.specs.RankingRefresh, err)
		}
	}
	if s.limiter != nil {
		if _, err := s.cron.AddFunc(s.specs.RateLimitCleanup, s.cleanupRateLimits); err != nil {
			return fmt.Errorf("invalid rate limit cleanup schedule %q: %w", s.specs.RateLimitCleanup, err)
		}
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) refreshRankings(ctx context.Context) {
	if err := s.rankings.Refresh(ctx); err != nil {
		s.logger.Error("ranking refresh failed", "error", err)
	}
}

func (s *Scheduler) cleanupRateLimits() {
	if removed := s.limiter.Cleanup(); removed > 0 {
		s.logger.Debug("rate limit buckets removed", "count", removed)
	}
}
