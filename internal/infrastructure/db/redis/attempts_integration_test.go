//go:build integration

package redis

import (
	"context"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
)

func startRedis(t *testing.T) *AttemptLimiter {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("docker pool: %v", err)
	}
	resource, err := pool.Run("redis", "7-alpine", nil)
	if err != nil {
		t.Fatalf("start redis: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	cfg := Config{Addr: "localhost:" + resource.GetPort("6379/tcp"), Timeout: 2 * time.Second}
	var limiter *AttemptLimiter
	if err := pool.Retry(func() error {
		client, err := Connect(context.Background(), cfg)
		if err != nil {
			return err
		}
		t.Cleanup(func() { _ = client.Close() })
		limiter = NewAttemptLimiter(client, 3, time.Minute)
		return nil
	}); err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	return limiter
}

func TestAttemptLimiter(t *testing.T) {
	limiter := startRedis(t)
	ctx := context.Background()
	const email = "alice@example.com"

	for i := 0; i < 3; i++ {
		blocked, err := limiter.Blocked(ctx, email)
		if err != nil {
			t.Fatalf("Blocked returned error: %v", err)
		}
		if blocked {
			t.Fatalf("blocked after only %d failures", i)
		}
		if err := limiter.Fail(ctx, email); err != nil {
			t.Fatalf("Fail returned error: %v", err)
		}
	}

	blocked, err := limiter.Blocked(ctx, email)
	if err != nil || !blocked {
		t.Fatalf("expected the key to be blocked, got %v, %v", blocked, err)
	}

	if err := limiter.Reset(ctx, email); err != nil {
		t.Fatalf("Reset returned error: %v", err)
	}
	blocked, err = limiter.Blocked(ctx, email)
	if err != nil || blocked {
		t.Fatalf("expected the key to be clear after reset, got %v, %v", blocked, err)
	}
}
