// Package ratelimit implements fixed-window counters on Redis.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrRateLimited      = errors.New("rate limited")
	ErrRedisUnavailable = errors.New("rate limiter redis unavailable")
)

type Limiter struct {
	redis  redis.UniversalClient
	prefix string
	max    int
	window time.Duration
}

// New allows at most max hits per key within window.
func New(client redis.UniversalClient, prefix string, max int, window time.Duration) *Limiter {
	return &Limiter{
		redis:  client,
		prefix: prefix,
		max:    max,
		window: window,
	}
}

// Allow counts one hit for key and returns ErrRateLimited once the window
// budget is spent.
func (l *Limiter) Allow(ctx context.Context, key string) error {
	k := l.key(key)

	count, err := l.redis.Incr(ctx, k).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if count == 1 {
		if err := l.redis.Expire(ctx, k, l.window).Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
		}
	}
	if count > int64(l.max) {
		return ErrRateLimited
	}
	return nil
}

// Reset clears the counter for key.
func (l *Limiter) Reset(ctx context.Context, key string) error {
	if err := l.redis.Del(ctx, l.key(key)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

func (l *Limiter) key(key string) string {
	return l.prefix + ":" + strings.ToLower(strings.TrimSpace(key))
}
