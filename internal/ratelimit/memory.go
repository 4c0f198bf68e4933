package ratelimit

import (
	"context"
	"hash/fnv"
	"sync"
	"time"
)

const shardCount = 16

// MemoryStore is an in-process Store: an arena of buckets sharded across
// independent mutexes so unrelated keys do not contend on a single lock.
type MemoryStore struct {
	shards [shardCount]shard
	now    func() time.Time
}

type shard struct {
	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	count       int64
	windowStart time.Time
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock overrides the time source. Used by tests to cross window boundaries.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) { s.now = now }
}

func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{now: time.Now}
	for i := range s.shards {
		s.shards[i].buckets = make(map[string]*bucket)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) shardFor(key string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return &s.shards[h.Sum32()%shardCount]
}

// Incr implements Store. The whole read-reset-increment-compare sequence runs
// under the shard lock, so two concurrent requests can never both observe
// count = limit-1 and both be admitted.
func (s *MemoryStore) Incr(_ context.Context, key string, limit int64, window time.Duration) (Result, error) {
	now := s.now()
	sh := s.shardFor(key)

	sh.mu.Lock()
	defer sh.mu.Unlock()

	b, ok := sh.buckets[key]
	if !ok || now.Sub(b.windowStart) >= window {
		b = &bucket{windowStart: now}
		sh.buckets[key] = b
	}
	b.count++

	remaining := limit - b.count
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:    b.count <= limit,
		Limit:      limit,
		Remaining:  remaining,
		RetryAfter: b.windowStart.Add(window).Sub(now),
	}, nil
}

// Refund implements Store.
func (s *MemoryStore) Refund(_ context.Context, key string) error {
	sh := s.shardFor(key)

	sh.mu.Lock()
	defer sh.mu.Unlock()

	if b, ok := sh.buckets[key]; ok && b.count > 0 {
		b.count--
	}
	return nil
}
