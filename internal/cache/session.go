package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"lifelog/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	// SnapshotTTL is the freshness window for a cached feed snapshot. Within
	// it the snapshot is painted immediately and refreshed in the background.
	SnapshotTTL = 5 * time.Minute
	// SnapshotMaxAge is the absolute expiry after which stale snapshots are
	// garbage collected.
	SnapshotMaxAge = 24 * time.Hour
)

// SnapshotStore persists the last successfully loaded feed per user. A
// snapshot written for one user is never returned for another.
type SnapshotStore interface {
	Read(ctx context.Context, userID uint) (*models.FeedSnapshot, bool)
	Write(ctx context.Context, userID uint, snap *models.FeedSnapshot) error
	Invalidate(ctx context.Context, userID uint)
}

// IsFresh reports whether the snapshot is within the freshness window.
func IsFresh(snap *models.FeedSnapshot, now time.Time) bool {
	if snap == nil {
		return false
	}
	age := now.Sub(snap.LoadedAt)
	return age >= 0 && age < SnapshotTTL
}

// RedisSnapshotStore stores feed snapshots in Redis with the absolute expiry
// as the key TTL. Read errors are swallowed: a broken cache behaves as a miss.
type RedisSnapshotStore struct {
	rdb *redis.Client
}

// NewRedisSnapshotStore returns a snapshot store backed by rdb. A nil client
// yields a store that never hits.
func NewRedisSnapshotStore(rdb *redis.Client) *RedisSnapshotStore {
	return &RedisSnapshotStore{rdb: rdb}
}

func (s *RedisSnapshotStore) Read(ctx context.Context, userID uint) (*models.FeedSnapshot, bool) {
	if s.rdb == nil {
		return nil, false
	}
	raw, err := s.rdb.Get(ctx, FeedSnapshotKey(userID)).Result()
	if err != nil {
		return nil, false
	}
	var snap models.FeedSnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		s.Invalidate(ctx, userID)
		return nil, false
	}
	// Never trust a snapshot across user ids.
	if snap.UserID != userID {
		s.Invalidate(ctx, userID)
		return nil, false
	}
	if time.Since(snap.LoadedAt) > SnapshotMaxAge {
		s.Invalidate(ctx, userID)
		return nil, false
	}
	return &snap, true
}

func (s *RedisSnapshotStore) Write(ctx context.Context, userID uint, snap *models.FeedSnapshot) error {
	if s.rdb == nil || snap == nil {
		return nil
	}
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, FeedSnapshotKey(userID), b, SnapshotMaxAge).Err()
}

func (s *RedisSnapshotStore) Invalidate(ctx context.Context, userID uint) {
	if s.rdb == nil {
		return
	}
	s.rdb.Del(ctx, FeedSnapshotKey(userID))
}

// MemorySnapshotStore is an in-memory SnapshotStore for tests.
type MemorySnapshotStore struct {
	mu    sync.Mutex
	snaps map[uint]models.FeedSnapshot
}

func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{snaps: make(map[uint]models.FeedSnapshot)}
}

func (s *MemorySnapshotStore) Read(_ context.Context, userID uint) (*models.FeedSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.snaps[userID]
	if !ok || snap.UserID != userID || time.Since(snap.LoadedAt) > SnapshotMaxAge {
		delete(s.snaps, userID)
		return nil, false
	}
	out := snap
	return &out, true
}

func (s *MemorySnapshotStore) Write(_ context.Context, userID uint, snap *models.FeedSnapshot) error {
	if snap == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps[userID] = *snap
	return nil
}

func (s *MemorySnapshotStore) Invalidate(_ context.Context, userID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snaps, userID)
}
