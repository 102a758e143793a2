package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fundhive/fundhive/internal/model"
)

const (
	categoryCountsKey = "categories:counts"

	// DefaultCategoryTTL bounds how stale category counts may get.
	DefaultCategoryTTL = 5 * time.Minute
)

// GetCategoryCounts returns the cached category aggregate.
// Returns ErrCacheMiss if nothing is cached.
func (c *Cache) GetCategoryCounts(ctx context.Context) ([]model.CategoryCount, error) {
	data, err := c.client.Get(ctx, categoryCountsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	return decodeCategoryCounts(data)
}

// SetCategoryCounts caches the category aggregate for ttl.
func (c *Cache) SetCategoryCounts(ctx context.Context, counts []model.CategoryCount, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultCategoryTTL
	}

	data, err := json.Marshal(counts)
	if err != nil {
		return fmt.Errorf("encode category counts: %w", err)
	}

	if err := c.client.Set(ctx, categoryCountsKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// InvalidateCategoryCounts drops the cached aggregate.
// Called whenever a project is created, deleted or recategorized.
func (c *Cache) InvalidateCategoryCounts(ctx context.Context) error {
	if err := c.client.Del(ctx, categoryCountsKey).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func decodeCategoryCounts(data []byte) ([]model.CategoryCount, error) {
	var counts []model.CategoryCount
	if err := json.Unmarshal(data, &counts); err != nil {
		return nil, fmt.Errorf("decode category counts: %w", err)
	}
	if counts == nil {
		counts = []model.CategoryCount{}
	}
	return counts, nil
}
