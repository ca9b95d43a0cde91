package redis

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter implements a sliding-window admission check backed by a Redis
// sorted set per key. Members are request timestamps scored by nanosecond, so
// trimming the window is a single ZREMRANGEBYSCORE.
type RateLimiter struct {
	client *redis.Client
	now    func() time.Time
}

// NewRateLimiter creates a RateLimiter wrapping the given Redis client.
func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{client: client, now: time.Now}
}

// Allow reports whether one more request fits inside the window for key.
//
// The request is recorded tentatively in the same pipeline that counts the
// window, so two racing requests always see each other: once the window is
// full every extra request observes a count over the limit. Over-limit
// entries are removed again and never consume a slot.
func (l *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := l.now()
	windowStart := now.Add(-window).UnixNano()

	// Random suffix keeps members unique when requests share a timestamp.
	member := strconv.FormatInt(now.UnixNano(), 10) + "-" + strconv.FormatInt(rand.Int63(), 10)

	pipe := l.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixNano()), Member: member})
	countCmd := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit check: %w", err)
	}

	if countCmd.Val() > int64(limit) {
		if err := l.client.ZRem(ctx, key, member).Err(); err != nil {
			return false, fmt.Errorf("rate limit release: %w", err)
		}
		return false, nil
	}

	return true, nil
}
