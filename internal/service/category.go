package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fundhive/fundhive/internal/cache"
	"github.com/fundhive/fundhive/internal/metrics"
	"github.com/fundhive/fundhive/internal/model"
	"github.com/fundhive/fundhive/internal/store"
)

const featuredPerCategory = 3

// CategoryService serves category aggregates.
type CategoryService struct {
	store   store.ProjectStore
	cache   CategoryCache
	ttl     time.Duration
	metrics metrics.Recorder
	logger  *slog.Logger
}

// NewCategoryService creates a new CategoryService. categoryCache may be nil.
func NewCategoryService(st store.ProjectStore, categoryCache CategoryCache, ttl time.Duration, recorder metrics.Recorder, logger *slog.Logger) *CategoryService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if ttl <= 0 {
		ttl = cache.DefaultCategoryTTL
	}
	return &CategoryService{
		store:   st,
		cache:   categoryCache,
		ttl:     ttl,
		metrics: recorder,
		logger:  defaultLogger(logger),
	}
}

// Counts returns every category with its project count, largest first.
// Served from cache when possible.
func (s *CategoryService) Counts(ctx context.Context) ([]model.CategoryCount, error) {
	if s.cache != nil {
		counts, err := s.cache.GetCategoryCounts(ctx)
		if err == nil {
			s.metrics.IncCategoryCacheHit()
			return counts, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			// Redis error - fall through to the store
			s.logger.Warn("category_cache_get_failed", "error", err)
		}
		s.metrics.IncCategoryCacheMiss()
	}

	counts, err := s.store.CategoryCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetCategoryCounts(ctx, counts, s.ttl); err != nil {
			s.logger.Warn("category_cache_set_failed", "error", err)
		}
	}

	return counts, nil
}

// Featured returns the best funded projects of each category.
func (s *CategoryService) Featured(ctx context.Context) (map[string][]*model.Project, error) {
	projects, err := s.store.TopFundedByCategory(ctx, featuredPerCategory)
	if err != nil {
		return nil, fmt.Errorf("failed to list featured projects: %w", err)
	}

	featured := make(map[string][]*model.Project)
	for _, p := range projects {
		featured[p.Category] = append(featured[p.Category], p)
	}
	return featured, nil
}
