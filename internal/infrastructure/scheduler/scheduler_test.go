package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRefresher struct {
	calls int
	err   error
}

func (r *countingRefresher) Refresh(context.Context) error {
	r.calls++
	return r.err
}

type countingCleaner struct{ calls int }

func (c *countingCleaner) Cleanup() int {
	c.calls++
	return 3
}

func TestStartRegistersJobs(t *testing.T) {
	s := New(time.UTC, Specs{RankingRefresh: "*/5 * * * *", RateLimitCleanup: "*/30 * * * *"},
		&countingRefresher{}, &countingCleaner{}, nil)

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.Len(t, s.cron.Entries(), 2)
}

func TestStartSkipsMissingDependencies(t *testing.T) {
	s := New(nil, Specs{RankingRefresh: "not a spec", RateLimitCleanup: "@hourly"}, nil, &countingCleaner{}, nil)

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.Len(t, s.cron.Entries(), 1)
}

func TestStartRejectsInvalidSpec(t *testing.T) {
	s := New(time.UTC, Specs{RankingRefresh: "every five minutes", RateLimitCleanup: "@hourly"},
		&countingRefresher{}, nil, nil)

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ranking refresh")
}

func TestJobsCallDependencies(t *testing.T) {
	refresher := &countingRefresher{err: errors.New("redis down")}
	cleaner := &countingCleaner{}
	s := New(time.UTC, Specs{}, refresher, cleaner, nil)

	s.refreshRankings(context.Background())
	s.cleanupRateLimits()

	assert.Equal(t, 1, refresher.calls)
	assert.Equal(t, 1, cleaner.calls)
}
