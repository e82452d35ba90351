package ratelimit

import (
	"context"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Limiter checks whether a request identified by key is within its rate budget.
type Limiter interface {
	// Allow returns true when the request fits the limit for the window.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	// Reset clears the counter for a key.
	Reset(ctx context.Context, key string) error

	// Remaining returns how many requests are left in the current window.
	Remaining(ctx context.Context, key string, limit int, window time.Duration) (int, error)
}

// FixedWindowLimiter counts requests per fixed time window in Redis.
// Counters are shared across instances, so the limit holds under horizontal scaling.
type FixedWindowLimiter struct {
	redisClient *redis.Client
	logger      *zap.Logger
	failOpen    bool // allow requests when Redis is unavailable
}

// NewFixedWindowLimiter creates a limiter backed by the given Redis client.
// With failOpen set, a Redis outage lets requests through instead of
// turning the limiter into a site-wide outage of its own.
func NewFixedWindowLimiter(redisClient *redis.Client, logger *zap.Logger, failOpen bool) *FixedWindowLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FixedWindowLimiter{
		redisClient: redisClient,
		logger:      logger,
		failOpen:    failOpen,
	}
}

// Allow increments the window counter and compares it against the limit.
// INCR and EXPIRE run in one pipeline so a crashed client cannot leave an
// immortal counter behind.
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	bucketKey := l.bucketKey(key, time.Now(), window)

	pipe := l.redisClient.Pipeline()
	incrCmd := pipe.Incr(ctx, bucketKey)
	pipe.Expire(ctx, bucketKey, window+time.Second)

	if _, err := pipe.Exec(ctx); err != nil {
		l.logger.Error("rate limit check failed",
			zap.String("key", bucketKey),
			zap.Error(err),
		)
		if l.failOpen {
			return true, nil
		}
		return false, fmt.Errorf("rate limit check failed: %w", err)
	}

	count := incrCmd.Val()
	allowed := count <= int64(limit)
	if !allowed {
		l.logger.Warn("rate limit exceeded",
			zap.String("key", key),
			zap.Int64("count", count),
			zap.Int("limit", limit),
		)
	}
	return allowed, nil
}

// Reset clears the current and previous window counters for a key.
func (l *FixedWindowLimiter) Reset(ctx context.Context, key string) error {
	now := time.Now()
	windows := []time.Duration{time.Minute, time.Hour}

	var keys []string
	for _, window := range windows {
		keys = append(keys, l.bucketKey(key, now, window))
		keys = append(keys, l.bucketKey(key, now.Add(-window), window))
	}

	if err := l.redisClient.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to reset rate limit for key %s: %w", key, err)
	}
	return nil
}

// Remaining reports the unused budget in the current window.
func (l *FixedWindowLimiter) Remaining(ctx context.Context, key string, limit int, window time.Duration) (int, error) {
	bucketKey := l.bucketKey(key, time.Now(), window)

	count, err := l.redisClient.Get(ctx, bucketKey).Int64()
	if err != nil {
		if err == redis.Nil {
			return limit, nil
		}
		return 0, fmt.Errorf("failed to get remaining budget: %w", err)
	}

	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// bucketKey buckets time by the window length so counters roll over naturally.
func (l *FixedWindowLimiter) bucketKey(key string, now time.Time, window time.Duration) string {
	bucket := now.Unix() / int64(window.Seconds())
	return fmt.Sprintf("ratelimit:%s:%d", key, bucket)
}
