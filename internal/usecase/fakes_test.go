package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"dailyrewards/internal/domain/entity"
	"dailyrewards/internal/domain/repository"
	"dailyrewards/internal/domain/service"
	"dailyrewards/pkg/logger"
)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

type movableClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *movableClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *movableClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []entity.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, _ string, notification entity.Notification) {
	n.mu.Lock()
	n.sent = append(n.sent, notification)
	n.mu.Unlock()
}

func (n *recordingNotifier) kinds() []entity.NotificationKind {
	n.mu.Lock()
	defer n.mu.Unlock()
	kinds := make([]entity.NotificationKind, 0, len(n.sent))
	for _, s := range n.sent {
		kinds = append(kinds, s.Kind)
	}
	return kinds
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string]*entity.User{}
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			cp := *u
			out[id] = &cp
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Upsert(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

type fakeStreakRepo struct {
	mu      sync.Mutex
	streaks map[string]entity.LoginStreak
}

func newFakeStreakRepo() *fakeStreakRepo {
	return &fakeStreakRepo{streaks: map[string]entity.LoginStreak{}}
}

func (r *fakeStreakRepo) GetByUserID(_ context.Context, userID string) (*entity.LoginStreak, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.streaks[userID]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return &s, nil
}

func (r *fakeStreakRepo) Update(_ context.Context, userID string, mutate repository.StreakMutator) (*entity.LoginStreak, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var current *entity.LoginStreak
	if s, ok := r.streaks[userID]; ok {
		current = &s
	}
	next, err := mutate(current)
	if err != nil {
		return nil, err
	}
	r.streaks[userID] = *next
	out := *next
	return &out, nil
}

func (r *fakeStreakRepo) TopByCurrentStreak(_ context.Context, limit int) ([]entity.LoginStreak, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.LoginStreak
	for _, s := range r.streaks {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CurrentStreak != out[j].CurrentStreak {
			return out[i].CurrentStreak > out[j].CurrentStreak
		}
		return out[i].UserID < out[j].UserID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeLevelRepo struct {
	mu     sync.Mutex
	levels map[string]entity.UserLevel
	err    error
}

func newFakeLevelRepo() *fakeLevelRepo {
	return &fakeLevelRepo{levels: map[string]entity.UserLevel{}}
}

func (r *fakeLevelRepo) GetByUserID(_ context.Context, userID string) (*entity.UserLevel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.levels[userID]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return &l, nil
}

func (r *fakeLevelRepo) Update(_ context.Context, userID string, mutate repository.LevelMutator) (*entity.UserLevel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var current *entity.UserLevel
	if l, ok := r.levels[userID]; ok {
		current = &l
	}
	next, err := mutate(current)
	if err != nil {
		return nil, err
	}
	r.levels[userID] = *next
	out := *next
	return &out, nil
}

func (r *fakeLevelRepo) TopByLevel(_ context.Context, limit int) ([]entity.UserLevel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.UserLevel
	for _, l := range r.levels {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CurrentLevel != out[j].CurrentLevel {
			return out[i].CurrentLevel > out[j].CurrentLevel
		}
		return out[i].TotalExp > out[j].TotalExp
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeActivityRepo struct {
	mu         sync.Mutex
	activities map[string]entity.DailyActivity
	// recordErr fails the next RecordLogin call once.
	recordErr error
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{activities: map[string]entity.DailyActivity{}}
}

func activityKey(userID string, date time.Time) string {
	return userID + "_" + service.FormatDate(date)
}

func (r *fakeActivityRepo) Get(_ context.Context, userID string, date time.Time) (*entity.DailyActivity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.activities[activityKey(userID, date)]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return &a, nil
}

func (r *fakeActivityRepo) ListByUser(_ context.Context, userID string) ([]entity.DailyActivity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.DailyActivity
	for _, a := range r.activities {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeActivityRepo) RecordLogin(_ context.Context, userID string, date time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.recordErr; err != nil {
		r.recordErr = nil
		return err
	}
	key := activityKey(userID, date)
	a := r.activities[key]
	a.UserID = userID
	a.ActivityDate = date
	a.LoginCount++
	r.activities[key] = a
	return nil
}

func (r *fakeActivityRepo) CompleteActivity(_ context.Context, userID string, date time.Time, kind entity.ActivityKind, score int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := activityKey(userID, date)
	a := r.activities[key]
	if a.Completed(kind) {
		return entity.ErrActivityAlreadyCompleted
	}
	a.UserID = userID
	a.ActivityDate = date
	switch kind {
	case entity.ActivityRoulette:
		a.RouletteCompleted = true
	case entity.ActivityMiniGame:
		a.MiniGameCompleted = true
		a.MiniGameScore = score
	}
	r.activities[key] = a
	return nil
}

func (r *fakeActivityRepo) TopMiniGameScores(_ context.Context, limit int) ([]entity.DailyActivity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	best := map[string]entity.DailyActivity{}
	for _, a := range r.activities {
		if !a.MiniGameCompleted {
			continue
		}
		if cur, ok := best[a.UserID]; !ok || a.MiniGameScore > cur.MiniGameScore {
			best[a.UserID] = a
		}
	}
	var out []entity.DailyActivity
	for _, a := range best {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MiniGameScore > out[j].MiniGameScore })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeAchievementRepo struct {
	mu       sync.Mutex
	defs     []entity.AchievementDefinition
	unlocked map[string][]entity.UserAchievement
}

func newFakeAchievementRepo(defs ...entity.AchievementDefinition) *fakeAchievementRepo {
	return &fakeAchievementRepo{defs: defs, unlocked: map[string][]entity.UserAchievement{}}
}

func (r *fakeAchievementRepo) ListActive(context.Context) ([]entity.AchievementDefinition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.AchievementDefinition
	for _, d := range r.defs {
		if d.IsActive {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeAchievementRepo) SaveDefinitions(_ context.Context, defs []entity.AchievementDefinition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs = append(r.defs, defs...)
	return nil
}

func (r *fakeAchievementRepo) ListUnlocked(_ context.Context, userID string) ([]entity.UserAchievement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.UserAchievement(nil), r.unlocked[userID]...), nil
}

func (r *fakeAchievementRepo) Unlock(_ context.Context, unlocks []entity.UserAchievement) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var inserted []string
	for _, u := range unlocks {
		exists := false
		for _, have := range r.unlocked[u.UserID] {
			if have.AchievementID == u.AchievementID {
				exists = true
				break
			}
		}
		if exists {
			continue
		}
		r.unlocked[u.UserID] = append(r.unlocked[u.UserID], u)
		inserted = append(inserted, u.AchievementID)
	}
	return inserted, nil
}

type fakeRewardItemRepo struct {
	mu    sync.Mutex
	items map[string]entity.RewardItem
}

func newFakeRewardItemRepo(items ...entity.RewardItem) *fakeRewardItemRepo {
	r := &fakeRewardItemRepo{items: map[string]entity.RewardItem{}}
	for _, it := range items {
		r.items[it.ID] = it
	}
	return r
}

func (r *fakeRewardItemRepo) GetByID(_ context.Context, id string) (*entity.RewardItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return &it, nil
}

func (r *fakeRewardItemRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.RewardItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string]*entity.RewardItem{}
	for _, id := range ids {
		if it, ok := r.items[id]; ok {
			it := it
			out[id] = &it
		}
	}
	return out, nil
}

func (r *fakeRewardItemRepo) ListActive(context.Context) ([]entity.RewardItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.RewardItem
	for _, it := range r.items {
		if it.IsActive {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeRewardItemRepo) SaveAll(_ context.Context, items []entity.RewardItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range items {
		r.items[it.ID] = it
	}
	return nil
}

type fakeInventoryRepo struct {
	mu    sync.Mutex
	items map[string]entity.InventoryItem
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{items: map[string]entity.InventoryItem{}}
}

func (r *fakeInventoryRepo) Add(_ context.Context, item *entity.InventoryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *item
	cp.Item = nil
	r.items[item.ID] = cp
	return nil
}

func (r *fakeInventoryRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return &it, nil
}

func (r *fakeInventoryRepo) ListByUser(_ context.Context, userID string) ([]entity.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.InventoryItem
	for _, it := range r.items {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeInventoryRepo) MarkUsed(_ context.Context, id string, usedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return entity.ErrNotFound
	}
	if it.IsUsed {
		return entity.ErrItemAlreadyUsed
	}
	it.IsUsed = true
	it.UsedAt = &usedAt
	r.items[id] = it
	return nil
}

func (r *fakeInventoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return entity.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeRankingCache struct {
	mu      sync.Mutex
	entries map[entity.RankingType][]entity.RankingEntry
	gets    int
}

func newFakeRankingCache() *fakeRankingCache {
	return &fakeRankingCache{entries: map[entity.RankingType][]entity.RankingEntry{}}
}

func (c *fakeRankingCache) Get(_ context.Context, t entity.RankingType) ([]entity.RankingEntry, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	e, ok := c.entries[t]
	return e, ok, nil
}

func (c *fakeRankingCache) Set(_ context.Context, t entity.RankingType, entries []entity.RankingEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[t] = entries
	return nil
}

// scriptedRandom replays fixed values so spins and bonus draws are predictable.
type scriptedRandom struct {
	floats []float64
	ints   []int
}

func (s *scriptedRandom) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptedRandom) IntN(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0] % n
	s.ints = s.ints[1:]
	return v
}

// world wires every usecase against in-memory repositories.
type world struct {
	clock        *movableClock
	notifier     *recordingNotifier
	users        *fakeUserRepo
	streaks      *fakeStreakRepo
	levels       *fakeLevelRepo
	activities   *fakeActivityRepo
	achievements *fakeAchievementRepo
	items        *fakeRewardItemRepo
	inventory    *fakeInventoryRepo

	experience *ExperienceService
	invUC      *InventoryUseCase
	achUC      AchievementUseCase
	login      *DailyLoginUseCase
}

func newWorld(start time.Time, defs ...entity.AchievementDefinition) *world {
	w := &world{
		clock:        &movableClock{now: start},
		notifier:     &recordingNotifier{},
		users:        newFakeUserRepo(),
		streaks:      newFakeStreakRepo(),
		levels:       newFakeLevelRepo(),
		activities:   newFakeActivityRepo(),
		achievements: newFakeAchievementRepo(defs...),
		items:        newFakeRewardItemRepo(DefaultRewardItems()...),
		inventory:    newFakeInventoryRepo(),
	}
	log := nopLogger()
	w.invUC = NewInventoryUseCase(w.inventory, w.items, w.notifier, w.clock.Now, log)
	w.experience = NewExperienceService(w.levels, w.invUC, w.notifier, w.clock.Now, log)
	stats := NewStatsCollector(w.streaks, w.activities, w.inventory, w.items, w.levels)
	w.achUC = NewAchievementUseCase(w.achievements, stats, w.experience, w.notifier, w.clock.Now, log)
	w.login = NewDailyLoginUseCase(w.streaks, w.activities, w.experience, w.invUC, w.achUC, w.notifier, w.clock.Now, time.UTC, log)
	return w
}

func nopLogger() logger.Logger { return logger.Nop() }
