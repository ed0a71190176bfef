package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultLimit  = 10
	defaultWindow = time.Minute
)

// LoginLimiter provides fixed-window rate limiting for credential endpoints,
// backed by Redis. Key format: ratelimit:auth:<client key>.
type LoginLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewLoginLimiter creates a LoginLimiter wrapping the given Redis client.
// Non-positive limit or window fall back to the defaults.
func NewLoginLimiter(client *redis.Client, limit int, window time.Duration) *LoginLimiter {
	if limit <= 0 {
		limit = defaultLimit
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &LoginLimiter{client: client, limit: limit, window: window}
}

// Allow reports whether another attempt from this key fits in the current
// window. The counter's TTL is set on the first hit of each window.
func (l *LoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	n, err := l.client.Incr(ctx, l.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, l.key(key), l.window).Err(); err != nil {
			return false, fmt.Errorf("rate limit: %w", err)
		}
	}
	return n <= int64(l.limit), nil
}

func (l *LoginLimiter) key(key string) string {
	return "ratelimit:auth:" + key
}
