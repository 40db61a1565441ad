package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mtcleaning/account-service/internal/core/ports"
)

const rateWindow = time.Minute

// RateLimiter is a fixed-window counter backed by Redis.
// Key format: ratelimit:<key>:<unix_window_start>
type RateLimiter struct {
	client redis.Cmdable
	limit  int64
	now    func() time.Time
}

var _ ports.RateLimiter = (*RateLimiter)(nil)

// NewRateLimiter allows up to limit requests per key per minute.
func NewRateLimiter(client redis.Cmdable, limit int) *RateLimiter {
	return &RateLimiter{client: client, limit: int64(limit), now: time.Now}
}

// Allow increments the counter for key in the current window and reports
// whether it is still within the limit.
func (r *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := r.key(key, r.now())

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, rateWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit: %w", err)
	}

	return incr.Val() <= r.limit, nil
}

func (r *RateLimiter) key(key string, ts time.Time) string {
	return fmt.Sprintf("ratelimit:%s:%d", key, ts.Truncate(rateWindow).Unix())
}
