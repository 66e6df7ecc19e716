package ratelimit

import (
	"sync"
	"time"
)

const (
	ActionAPI        = "api"
	ActionLogin      = "login"
	ActionGameAction = "gameAction"
	ActionItemUse    = "itemUse"

	idleTTL = time.Hour
)

// Limit allows MaxAttempts per Window. Exhausting it blocks the key for Block.
type Limit struct {
	MaxAttempts int
	Window      time.Duration
	Block       time.Duration
}

var DefaultLimits = map[string]Limit{
	ActionAPI:        {MaxAttempts: 100, Window: time.Minute, Block: 5 * time.Minute},
	ActionLogin:      {MaxAttempts: 5, Window: 15 * time.Minute, Block: 30 * time.Minute},
	ActionGameAction: {MaxAttempts: 10, Window: time.Minute, Block: 5 * time.Minute},
	ActionItemUse:    {MaxAttempts: 20, Window: time.Minute, Block: 5 * time.Minute},
}

// TokenBucket refills one token every Window/MaxAttempts.
type TokenBucket struct {
	tokens       int
	maxTokens    int
	refillTime   time.Duration
	block        time.Duration
	lastRefill   time.Time
	lastSeen     time.Time
	blockedUntil time.Time
	mutex        sync.Mutex
}

func NewTokenBucket(limit Limit, now time.Time) *TokenBucket {
	maxTokens := max(limit.MaxAttempts, 1)
	refill := limit.Window / time.Duration(maxTokens)
	if refill <= 0 {
		refill = time.Second
	}
	return &TokenBucket{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillTime: refill,
		block:      limit.Block,
		lastRefill: now,
		lastSeen:   now,
	}
}

// Allow consumes a token. When denied it returns how long the caller should wait.
func (tb *TokenBucket) Allow(now time.Time) (bool, time.Duration) {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()

	tb.lastSeen = now

	if now.Before(tb.blockedUntil) {
		return false, tb.blockedUntil.Sub(now)
	}

	elapsed := now.Sub(tb.lastRefill)
	if tokensToAdd := int(elapsed / tb.refillTime); tokensToAdd > 0 {
		tb.tokens = min(tb.tokens+tokensToAdd, tb.maxTokens)
		tb.lastRefill = tb.lastRefill.Add(time.Duration(tokensToAdd) * tb.refillTime)
	}

	if tb.tokens > 0 {
		tb.tokens--
		return true, 0
	}

	if tb.block > 0 {
		tb.blockedUntil = now.Add(tb.block)
		// Block ends with a full bucket.
		tb.tokens = tb.maxTokens
		tb.lastRefill = tb.blockedUntil
		return false, tb.block
	}
	return false, tb.lastRefill.Add(tb.refillTime).Sub(now)
}

func (tb *TokenBucket) Tokens() int {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()
	return tb.tokens
}

func (tb *TokenBucket) idleSince(now time.Time) time.Duration {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()
	if now.Before(tb.blockedUntil) {
		return 0
	}
	return now.Sub(tb.lastSeen)
}

// RateLimiter keeps one bucket per key and action.
type RateLimiter struct {
	buckets map[string]*TokenBucket
	limits  map[string]Limit
	now     func() time.Time
	mutex   sync.RWMutex
}

func NewRateLimiter(limits map[string]Limit, now func() time.Time) *RateLimiter {
	if limits == nil {
		limits = DefaultLimits
	}
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{
		buckets: make(map[string]*TokenBucket),
		limits:  limits,
		now:     now,
	}
}

// Allow checks whether key may perform action. Unknown actions use the api limit.
func (rl *RateLimiter) Allow(key, action string) (bool, time.Duration) {
	bucketKey := key + ":" + action
	now := rl.now()

	rl.mutex.RLock()
	bucket, exists := rl.buckets[bucketKey]
	rl.mutex.RUnlock()

	if !exists {
		rl.mutex.Lock()
		if bucket, exists = rl.buckets[bucketKey]; !exists {
			bucket = NewTokenBucket(rl.limitFor(action), now)
			rl.buckets[bucketKey] = bucket
		}
		rl.mutex.Unlock()
	}

	return bucket.Allow(now)
}

// Status reports remaining and maximum tokens for key and action.
func (rl *RateLimiter) Status(key, action string) (remaining int, maxTokens int) {
	rl.mutex.RLock()
	bucket, exists := rl.buckets[key+":"+action]
	rl.mutex.RUnlock()

	if !exists {
		limit := rl.limitFor(action)
		return limit.MaxAttempts, limit.MaxAttempts
	}
	return bucket.Tokens(), bucket.maxTokens
}

// Cleanup drops buckets idle for over an hour and returns how many were removed.
func (rl *RateLimiter) Cleanup() int {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	removed := 0
	for key, bucket := range rl.buckets {
		if bucket.idleSince(now) > idleTTL {
			delete(rl.buckets, key)
			removed++
		}
	}
	return removed
}

func (rl *RateLimiter) Size() int {
	rl.mutex.RLock()
	defer rl.mutex.RUnlock()
	return len(rl.buckets)
}

func (rl *RateLimiter) limitFor(action string) Limit {
	if limit, ok := rl.limits[action]; ok {
		return limit
	}
	return DefaultLimits[ActionAPI]
}
