package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const attemptsPrefix = "signin:fail:"

// AttemptLimiter counts failed sign-ins per email in a fixed window.
// Key format: signin:fail:<email>
type AttemptLimiter struct {
	client *redis.Client
	max    int64
	window time.Duration
}

// NewAttemptLimiter blocks an email after max failures until window has passed
// since the first of them.
func NewAttemptLimiter(client *redis.Client, max int, window time.Duration) *AttemptLimiter {
	return &AttemptLimiter{client: client, max: int64(max), window: window}
}

func (l *AttemptLimiter) Blocked(ctx context.Context, email string) (bool, error) {
	v, err := l.client.Get(ctx, l.key(email)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("attempts get: %w", err)
	}

	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return false, fmt.Errorf("attempts parse: %w", err)
	}
	return n >= l.max, nil
}

// Fail increments the counter and starts the window on the first failure.
func (l *AttemptLimiter) Fail(ctx context.Context, email string) error {
	key := l.key(email)

	pipe := l.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("attempts incr: %w", err)
	}
	return nil
}

func (l *AttemptLimiter) Reset(ctx context.Context, email string) error {
	if err := l.client.Del(ctx, l.key(email)).Err(); err != nil {
		return fmt.Errorf("attempts reset: %w", err)
	}
	return nil
}

func (l *AttemptLimiter) key(email string) string {
	return attemptsPrefix + email
}
