package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tenantworks/saas-admin/internal/ratelimit"
)

const rateLimitKeyPrefix = "ratelimit:"

// RateLimitStore keeps fixed-window counters in Redis so quotas hold across
// instances. Each bucket is a plain counter whose TTL marks the window end.
type RateLimitStore struct {
	client *redis.Client
}

func NewRateLimitStore(client *redis.Client) *RateLimitStore {
	return &RateLimitStore{client: client}
}

// Incr bumps the counter for key, starting the window on first increment.
// INCR and the conditional PEXPIRE run in a pipeline; the expiry is only set
// when the counter was just created, so the window never slides.
func (s *RateLimitStore) Incr(ctx context.Context, key string, limit int64, window time.Duration) (ratelimit.Result, error) {
	bucket := rateLimitKeyPrefix + key

	count, err := s.client.Incr(ctx, bucket).Result()
	if err != nil {
		return ratelimit.Result{}, fmt.Errorf("incr %s: %w", bucket, err)
	}
	if count == 1 {
		if err := s.client.PExpire(ctx, bucket, window).Err(); err != nil {
			return ratelimit.Result{}, fmt.Errorf("pexpire %s: %w", bucket, err)
		}
	}

	ttl, err := s.client.PTTL(ctx, bucket).Result()
	if err != nil {
		return ratelimit.Result{}, fmt.Errorf("pttl %s: %w", bucket, err)
	}
	if ttl < 0 {
		// No expiry survived (e.g. the bucket was created by a client that
		// crashed between INCR and PEXPIRE). Re-arm it so the key cannot
		// throttle forever.
		if err := s.client.PExpire(ctx, bucket, window).Err(); err != nil {
			return ratelimit.Result{}, fmt.Errorf("pexpire %s: %w", bucket, err)
		}
		ttl = window
	}

	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}

	return ratelimit.Result{
		Allowed:    count <= limit,
		Limit:      limit,
		Remaining:  remaining,
		RetryAfter: ttl,
	}, nil
}

// Refund decrements the counter for key. A bucket that has already expired or
// was never created is left alone.
func (s *RateLimitStore) Refund(ctx context.Context, key string) error {
	bucket := rateLimitKeyPrefix + key

	exists, err := s.client.Exists(ctx, bucket).Result()
	if err != nil {
		return fmt.Errorf("exists %s: %w", bucket, err)
	}
	if exists == 0 {
		return nil
	}
	if err := s.client.Decr(ctx, bucket).Err(); err != nil {
		return fmt.Errorf("decr %s: %w", bucket, err)
	}
	return nil
}
