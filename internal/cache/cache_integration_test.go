//go:build integration

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fundhive/fundhive/internal/model"
	"github.com/fundhive/fundhive/internal/testutil"
)

func newTestCache(t *testing.T) (context.Context, *Cache) {
	t.Helper()
	redisURL := testutil.RequireEnv(t, "REDIS_URL")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	c, err := New(ctx, redisURL, PoolConfig{})
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	if err := testutil.FlushRedis(ctx, c.Client()); err != nil {
		t.Fatalf("failed to flush: %v", err)
	}
	return ctx, c
}

func TestIntegrationCache_CategoryCounts(t *testing.T) {
	ctx, c := newTestCache(t)

	if _, err := c.GetCategoryCounts(ctx); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got: %v", err)
	}

	want := []model.CategoryCount{{Name: "Art", Count: 2}}
	if err := c.SetCategoryCounts(ctx, want, time.Minute); err != nil {
		t.Fatalf("SetCategoryCounts failed: %v", err)
	}

	got, err := c.GetCategoryCounts(ctx)
	if err != nil {
		t.Fatalf("GetCategoryCounts failed: %v", err)
	}
	if len(got) != 1 || got[0] != want[0] {
		t.Errorf("got %+v, want %+v", got, want)
	}

	if err := c.InvalidateCategoryCounts(ctx); err != nil {
		t.Fatalf("InvalidateCategoryCounts failed: %v", err)
	}
	if _, err := c.GetCategoryCounts(ctx); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss after invalidate, got: %v", err)
	}
}

func TestIntegrationCache_UserRateLimit(t *testing.T) {
	ctx, c := newTestCache(t)

	for i := 0; i < 3; i++ {
		res, err := c.CheckUserRateLimit(ctx, "user-1", 60, 3)
		if err != nil {
			t.Fatalf("CheckUserRateLimit failed: %v", err)
		}
		if !res.Allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	res, err := c.CheckUserRateLimit(ctx, "user-1", 60, 3)
	if err != nil {
		t.Fatalf("CheckUserRateLimit failed: %v", err)
	}
	if res.Allowed {
		t.Error("fourth request should be limited")
	}
	if res.RetryAfter <= 0 {
		t.Errorf("RetryAfter = %v, want > 0", res.RetryAfter)
	}

	other, err := c.CheckUserRateLimit(ctx, "user-2", 60, 3)
	if err != nil {
		t.Fatalf("CheckUserRateLimit failed: %v", err)
	}
	if !other.Allowed {
		t.Error("other user should have an independent bucket")
	}
}
