package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter counts requests in Redis sorted sets keyed per caller and
// window size. Each request is a member scored by its nanosecond timestamp,
// so trimming everything below now-window yields an exact sliding count.
type RedisRateLimiter struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisRateLimiter(client *redis.Client) RateLimiter {
	return &RedisRateLimiter{
		client: client,
		ctx:    context.Background(),
	}
}

// Allow checks every configured window and admits the request only when all
// of them have room. Windows with a non-positive limit are unrestricted.
func (l *RedisRateLimiter) Allow(key string, config RateLimitConfig) (bool, error) {
	now := time.Now()

	for _, w := range []struct {
		span  time.Duration
		limit int
	}{
		{time.Minute, config.RequestsPerMinute},
		{time.Hour, config.RequestsPerHour},
		{24 * time.Hour, config.RequestsPerDay},
	} {
		if w.limit <= 0 {
			continue
		}
		ok, err := l.admit(key, w.span, w.limit, now)
		if err != nil || !ok {
			return false, err
		}
	}

	return true, nil
}

func (l *RedisRateLimiter) admit(key string, window time.Duration, limit int, now time.Time) (bool, error) {
	bucket := l.bucketKey(key, window)
	cutoff := now.Add(-window).UnixNano()

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(l.ctx, bucket, "0", strconv.FormatInt(cutoff, 10))
	count := pipe.ZCard(l.ctx, bucket)
	pipe.ZAdd(l.ctx, bucket, redis.Z{Score: float64(now.UnixNano()), Member: now.UnixNano()})
	// TTL slightly past the window so idle buckets clean themselves up.
	pipe.Expire(l.ctx, bucket, window+time.Minute)

	if _, err := pipe.Exec(l.ctx); err != nil {
		return false, fmt.Errorf("failed to execute pipeline: %w", err)
	}

	return count.Val() < int64(limit), nil
}

// GetRemaining reports how many requests the window currently holds after
// trimming expired entries.
func (l *RedisRateLimiter) GetRemaining(key string, window time.Duration) (int64, error) {
	bucket := l.bucketKey(key, window)
	cutoff := time.Now().Add(-window).UnixNano()

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(l.ctx, bucket, "0", strconv.FormatInt(cutoff, 10))
	count := pipe.ZCard(l.ctx, bucket)

	if _, err := pipe.Exec(l.ctx); err != nil {
		return 0, fmt.Errorf("failed to get remaining: %w", err)
	}

	return count.Val(), nil
}

// Reset drops every window bucket for the key.
func (l *RedisRateLimiter) Reset(key string) error {
	pattern := fmt.Sprintf("ratelimit:%s:*", key)

	iter := l.client.Scan(l.ctx, 0, pattern, 0).Iterator()
	for iter.Next(l.ctx) {
		if err := l.client.Del(l.ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete key %s: %w", iter.Val(), err)
		}
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan keys: %w", err)
	}

	return nil
}

func (l *RedisRateLimiter) bucketKey(identifier string, window time.Duration) string {
	return fmt.Sprintf("ratelimit:%s:%s", identifier, window.String())
}
