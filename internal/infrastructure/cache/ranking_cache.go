package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"dailyrewards/internal/domain/entity"
)

const rankingKeyPrefix = "ranking:"

// RankingCache stores each leaderboard as one JSON value with a TTL.
type RankingCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRankingCache(client *redis.Client, ttl time.Duration) *RankingCache {
	return &RankingCache{client: client, ttl: ttl}
}

func rankingKey(rankingType entity.RankingType) string {
	return rankingKeyPrefix + string(rankingType)
}

// Get reports ok=false on a cache miss.
func (c *RankingCache) Get(ctx context.Context, rankingType entity.RankingType) ([]entity.RankingEntry, bool, error) {
	val, err := c.client.Get(ctx, rankingKey(rankingType)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read ranking cache: %w", err)
	}

	var entries []entity.RankingEntry
	if err := json.Unmarshal(val, &entries); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached ranking: %w", err)
	}
	return entries, true, nil
}

func (c *RankingCache) Set(ctx context.Context, rankingType entity.RankingType, entries []entity.RankingEntry) error {
	val, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode ranking: %w", err)
	}
	return c.client.Set(ctx, rankingKey(rankingType), val, c.ttl).Err()
}

func (c *RankingCache) Invalidate(ctx context.Context, rankingType entity.RankingType) error {
	return c.client.Del(ctx, rankingKey(rankingType)).Err()
}

// NewClient connects to Redis and pings it once.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis unreachable at %s: %w", addr, err)
	}
	return client, nil
}
