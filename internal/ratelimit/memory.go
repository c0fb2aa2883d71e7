package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

type window struct {
	count   int
	resetAt time.Time
}

// MemoryStore keeps counters in process. Expired windows are evicted by the
// cache janitor.
type MemoryStore struct {
	mu    sync.Mutex
	cache *cache.Cache
	now   func() time.Time
}

// MemoryOption configures a MemoryStore
type MemoryOption func(*MemoryStore)

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) { s.now = now }
}

// NewMemoryStore creates an in-memory store whose janitor runs every cleanupInterval.
func NewMemoryStore(cleanupInterval time.Duration, opts ...MemoryOption) *MemoryStore {
	if cleanupInterval <= 0 {
		cleanupInterval = time.Minute
	}
	s := &MemoryStore{
		cache: cache.New(cache.NoExpiration, cleanupInterval),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Increment implements Store.
func (s *MemoryStore) Increment(ctx context.Context, key string, length time.Duration) (int, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if v, found := s.cache.Get(key); found {
		w := v.(*window)
		if now.Before(w.resetAt) {
			w.count++
			return w.count, w.resetAt, nil
		}
	}

	w := &window{count: 1, resetAt: now.Add(length)}
	s.cache.Set(key, w, length)
	return w.count, w.resetAt, nil
}

// Reset implements Store.
func (s *MemoryStore) Reset(ctx context.Context, key string) error {
	s.cache.Delete(key)
	return nil
}

// Len returns the number of tracked windows, including expired ones not yet evicted.
func (s *MemoryStore) Len() int {
	return s.cache.ItemCount()
}

// Close implements Store. The cache janitor stops once the store is unreachable.
func (s *MemoryStore) Close() error {
	s.cache.Flush()
	return nil
}
