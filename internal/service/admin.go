package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fundhive/fundhive/internal/metrics"
	"github.com/fundhive/fundhive/internal/model"
	"github.com/fundhive/fundhive/internal/store"
)

const recentLimit = 5

// AdminService implements the administrator console. Callers must have
// checked the admin role before reaching it.
type AdminService struct {
	store      store.Store
	categories CategoryCache
	metrics    metrics.Recorder
	logger     *slog.Logger
}

// NewAdminService creates a new AdminService. categories may be nil.
func NewAdminService(st store.Store, categories CategoryCache, recorder metrics.Recorder, logger *slog.Logger) *AdminService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AdminService{
		store:      st,
		categories: categories,
		metrics:    recorder,
		logger:     defaultLogger(logger),
	}
}

// Counts are the dashboard totals.
type Counts struct {
	Projects       int64
	Users          int64
	Events         int64
	Collaborations int64
	Funding        int64
}

// Stats is the admin dashboard payload.
type Stats struct {
	Counts         Counts
	RecentProjects []*model.Project
	RecentUsers    []*model.User
}

// Stats gathers dashboard totals and the newest projects and users.
func (s *AdminService) Stats(ctx context.Context) (*Stats, error) {
	var (
		stats Stats
		err   error
	)

	if stats.Counts.Projects, err = s.store.CountProjects(ctx); err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}
	if stats.Counts.Users, err = s.store.CountUsers(ctx); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if stats.Counts.Events, err = s.store.CountEvents(ctx); err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}
	if stats.Counts.Collaborations, err = s.store.CountCollaborations(ctx); err != nil {
		return nil, fmt.Errorf("failed to count collaborations: %w", err)
	}
	if stats.Counts.Funding, err = s.store.TotalRaised(ctx); err != nil {
		return nil, fmt.Errorf("failed to sum funding: %w", err)
	}

	stats.RecentProjects, _, err = s.store.ListProjects(ctx, store.ProjectQuery{
		Sort: model.SortNewest,
		Page: model.Page{Number: 1, Size: recentLimit},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list recent projects: %w", err)
	}

	if stats.RecentUsers, err = s.store.RecentUsers(ctx, recentLimit); err != nil {
		return nil, fmt.Errorf("failed to list recent users: %w", err)
	}

	return &stats, nil
}

// ListProjects returns every project, newest first.
func (s *AdminService) ListProjects(ctx context.Context) ([]*model.Project, error) {
	projects, _, err := s.store.ListProjects(ctx, store.ProjectQuery{Sort: model.SortNewest})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// UpdateProject applies a patch without an ownership check. Status may be set here.
func (s *AdminService) UpdateProject(ctx context.Context, id, adminID string, patch model.ProjectPatch) (*model.Project, error) {
	return updateProject(ctx, s.store, id, nil, patch, func(ctx context.Context, before, after *model.Project) {
		s.metrics.IncProjectUpdated()
		if before.Category != after.Category {
			s.invalidateCategories(ctx)
		}
		s.logger.Info("project_updated",
			"project_id", after.ID,
			"admin_id", adminID,
			"status", after.Status,
		)
	})
}

// DeleteProject removes any project together with every reference to it.
func (s *AdminService) DeleteProject(ctx context.Context, id, adminID string) error {
	project, err := deleteProject(ctx, s.store, id, nil)
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.metrics.IncProjectDeleted()
	s.invalidateCategories(ctx)
	s.logger.Info("project_deleted",
		"project_id", project.ID,
		"admin_id", adminID,
		"backers", len(project.DistinctBackerIDs()),
	)
	return nil
}

func (s *AdminService) invalidateCategories(ctx context.Context) {
	if s.categories == nil {
		return
	}
	if err := s.categories.InvalidateCategoryCounts(ctx); err != nil {
		s.logger.Warn("category_cache_invalidate_failed", "error", err)
	}
}
