// Package ratelimit implements fixed-window request counting. A Limiter binds
// one tier's window and threshold to a Store; the store owns the bucket state
// and performs the increment-and-compare atomically per key.
package ratelimit

import (
	"context"
	"time"
)

// Result is the outcome of one counted request.
type Result struct {
	// Allowed is false once the window's count exceeds the limit.
	Allowed bool
	// Limit is the tier's maximum requests per window.
	Limit int64
	// Remaining is the quota left in the current window, never negative.
	Remaining int64
	// RetryAfter is the time until the current window resets.
	RetryAfter time.Duration
}

// Store counts requests per key over fixed windows.
//
// Incr creates the bucket on first use, resets it when the window has elapsed,
// then increments and compares against limit in one atomic step. Counts keep
// incrementing past the limit; there is no rollback on rejection.
//
// Refund undoes one increment for a key, used by tiers that only count failed
// requests. Refunding a missing or empty bucket is a no-op.
type Store interface {
	Incr(ctx context.Context, key string, limit int64, window time.Duration) (Result, error)
	Refund(ctx context.Context, key string) error
}

// Limiter applies one tier's configuration to a Store.
type Limiter struct {
	name   string
	store  Store
	limit  int64
	window time.Duration
}

// New returns a Limiter for the named tier. The name is folded into every
// bucket key so tiers sharing a store never collide.
func New(name string, store Store, limit int64, window time.Duration) *Limiter {
	return &Limiter{name: name, store: store, limit: limit, window: window}
}

func (l *Limiter) Name() string { return l.name }

// Limit returns the tier's per-window threshold.
func (l *Limiter) Limit() int64 { return l.limit }

// Allow counts one request for key and reports whether it is within quota.
func (l *Limiter) Allow(ctx context.Context, key string) (Result, error) {
	return l.store.Incr(ctx, l.name+":"+key, l.limit, l.window)
}

// Refund returns one slot to key's bucket.
func (l *Limiter) Refund(ctx context.Context, key string) error {
	return l.store.Refund(ctx, l.name+":"+key)
}
