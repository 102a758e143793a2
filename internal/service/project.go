package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fundhive/fundhive/internal/metrics"
	"github.com/fundhive/fundhive/internal/model"
	"github.com/fundhive/fundhive/internal/store"
)

const (
	trendingWindow = 7 * 24 * time.Hour
	trendingLimit  = 5
)

// ProjectService handles project business logic.
type ProjectService struct {
	store      store.Store
	categories CategoryCache
	paging     Paging
	metrics    metrics.Recorder
	logger     *slog.Logger
	now        func() time.Time
}

// NewProjectService creates a new ProjectService. categories may be nil.
func NewProjectService(st store.Store, categories CategoryCache, paging Paging, recorder metrics.Recorder, logger *slog.Logger) *ProjectService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if paging.DefaultSize <= 0 {
		paging = DefaultPaging
	}
	return &ProjectService{
		store:      st,
		categories: categories,
		paging:     paging,
		metrics:    recorder,
		logger:     defaultLogger(logger),
		now:        utcNow,
	}
}

// CreateProjectInput defines input for creating a project.
type CreateProjectInput struct {
	CreatorID   string
	Title       string
	Description string
	Category    string
	Goal        int64
	Deadline    time.Time
	ImageURL    string
	Risks       string
	FAQs        []model.FAQ
}

// Create creates a new project owned by the requesting user.
func (s *ProjectService) Create(ctx context.Context, input CreateProjectInput) (*model.Project, error) {
	if input.CreatorID == "" {
		return nil, ErrUnauthorized
	}

	faqs := input.FAQs
	if faqs == nil {
		faqs = []model.FAQ{}
	}

	project := &model.Project{
		ID:          generateID(),
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Category:    strings.TrimSpace(input.Category),
		Goal:        input.Goal,
		Raised:      0,
		Deadline:    input.Deadline.UTC(),
		ImageURL:    strings.TrimSpace(input.ImageURL),
		CreatorID:   input.CreatorID,
		Backers:     []model.Backer{},
		Updates:     []model.ProjectUpdate{},
		FAQs:        faqs,
		Risks:       input.Risks,
		Status:      model.ProjectStatusActive,
		CreatedAt:   s.now(),
	}

	if err := validateProject(project); err != nil {
		return nil, err
	}

	if err := createProject(ctx, s.store, project); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.metrics.IncProjectCreated()
	s.invalidateCategories(ctx)

	s.logger.Info("project_created",
		"project_id", project.ID,
		"creator_id", project.CreatorID,
		"category", project.Category,
		"goal", project.Goal,
	)

	return s.Get(ctx, project.ID)
}

// Get retrieves a project with its creator and backers resolved.
func (s *ProjectService) Get(ctx context.Context, id string) (*model.Project, error) {
	project, err := s.store.GetProject(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrProjectNotFound)
	}
	return project, nil
}

// ListProjectsInput defines input for listing projects.
type ListProjectsInput struct {
	Category string
	Search   string
	Sort     string
	Page     int
	PageSize int
}

// List retrieves a filtered, sorted page of projects.
func (s *ProjectService) List(ctx context.Context, input ListProjectsInput) (*List[*model.Project], error) {
	page := s.paging.normalize(input.Page, input.PageSize)

	q := store.ProjectQuery{
		Filter: store.ProjectFilter{
			Category: strings.TrimSpace(input.Category),
			Search:   strings.TrimSpace(input.Search),
		},
		Sort: model.ParseProjectSort(input.Sort),
		Page: page,
	}

	projects, total, err := s.store.ListProjects(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return newList(projects, total, page), nil
}

// ByCategory lists the newest projects in one category.
func (s *ProjectService) ByCategory(ctx context.Context, category string, page, pageSize int) (*List[*model.Project], error) {
	if strings.TrimSpace(category) == "" {
		return nil, &ValidationError{Fields: []string{"category"}}
	}
	return s.List(ctx, ListProjectsInput{
		Category: category,
		Sort:     string(model.SortNewest),
		Page:     page,
		PageSize: pageSize,
	})
}

// Trending returns the projects with the most backings over the last week.
func (s *ProjectService) Trending(ctx context.Context) ([]*model.Project, error) {
	projects, err := s.store.TrendingProjects(ctx, s.now().Add(-trendingWindow), trendingLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list trending projects: %w", err)
	}
	return projects, nil
}

// UpdateProjectInput defines input for updating a project.
type UpdateProjectInput struct {
	ID          string
	RequesterID string
	Patch       model.ProjectPatch
}

// Update applies a partial update. Only the creator may update a project and
// the status field is reserved for administrators.
func (s *ProjectService) Update(ctx context.Context, input UpdateProjectInput) (*model.Project, error) {
	if input.RequesterID == "" {
		return nil, ErrUnauthorized
	}
	if input.Patch.Status != nil {
		return nil, ErrForbidden
	}

	return updateProject(ctx, s.store, input.ID, requireCreator(input.RequesterID), input.Patch, s.afterUpdate)
}

// Delete removes a project and every reference to it. Creator only.
func (s *ProjectService) Delete(ctx context.Context, id, requesterID string) error {
	if requesterID == "" {
		return ErrUnauthorized
	}

	project, err := deleteProject(ctx, s.store, id, requireCreator(requesterID))
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) || errors.Is(err, ErrForbidden) || errors.Is(err, ErrUnauthorized) {
			return err
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.afterDelete(ctx, project, requesterID)
	return nil
}

// Backers lists a project's contributions with backer identities.
func (s *ProjectService) Backers(ctx context.Context, id string) ([]model.Backer, error) {
	backers, err := s.store.ListBackers(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrProjectNotFound)
	}
	return backers, nil
}

// Save bookmarks the project for the user. Saving twice is a no-op.
func (s *ProjectService) Save(ctx context.Context, projectID, userID string) error {
	if userID == "" {
		return ErrUnauthorized
	}
	if _, err := s.Get(ctx, projectID); err != nil {
		return err
	}
	if err := s.store.AddSavedProject(ctx, userID, projectID); err != nil {
		return notFound(err, ErrUserNotFound)
	}
	return nil
}

// Unsave removes the bookmark if present.
func (s *ProjectService) Unsave(ctx context.Context, projectID, userID string) error {
	if userID == "" {
		return ErrUnauthorized
	}
	if err := s.store.RemoveSavedProject(ctx, userID, projectID); err != nil {
		return notFound(err, ErrUserNotFound)
	}
	return nil
}

// PostUpdateInput defines input for posting a project update.
type PostUpdateInput struct {
	ProjectID   string
	RequesterID string
	Title       string
	Content     string
}

// PostUpdate appends a news entry to the project. Creator only.
func (s *ProjectService) PostUpdate(ctx context.Context, input PostUpdateInput) (*model.Project, error) {
	if input.RequesterID == "" {
		return nil, ErrUnauthorized
	}

	var c fieldChecker
	c.require(strings.TrimSpace(input.Title) != "", "title")
	c.require(strings.TrimSpace(input.Content) != "", "content")
	if err := c.err(); err != nil {
		return nil, err
	}

	project, err := s.Get(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if project.CreatorID != input.RequesterID {
		return nil, ErrForbidden
	}

	update := model.ProjectUpdate{
		Title:   strings.TrimSpace(input.Title),
		Content: strings.TrimSpace(input.Content),
		Date:    s.now(),
	}
	if err := s.store.AppendUpdate(ctx, project.ID, update); err != nil {
		return nil, notFound(err, ErrProjectNotFound)
	}

	s.logger.Info("project_update_posted", "project_id", project.ID)

	return s.Get(ctx, project.ID)
}

func (s *ProjectService) afterUpdate(ctx context.Context, before, after *model.Project) {
	s.metrics.IncProjectUpdated()
	if before.Category != after.Category {
		s.invalidateCategories(ctx)
	}
	s.logger.Info("project_updated", "project_id", after.ID)
}

func (s *ProjectService) afterDelete(ctx context.Context, project *model.Project, requesterID string) {
	s.metrics.IncProjectDeleted()
	s.invalidateCategories(ctx)
	s.logger.Info("project_deleted",
		"project_id", project.ID,
		"requester_id", requesterID,
		"backers", len(project.DistinctBackerIDs()),
	)
}

func (s *ProjectService) invalidateCategories(ctx context.Context) {
	if s.categories == nil {
		return
	}
	if err := s.categories.InvalidateCategoryCounts(ctx); err != nil {
		// Counts stay stale until the TTL expires.
		s.logger.Warn("category_cache_invalidate_failed", "error", err)
	}
}

// updateProject locks the project row, runs authorize against it, applies
// patch and writes the result in one transaction, then re-reads the stored row.
func updateProject(
	ctx context.Context,
	st store.Store,
	id string,
	authorize func(*model.Project) error,
	patch model.ProjectPatch,
	after func(ctx context.Context, before, after *model.Project),
) (*model.Project, error) {
	var before model.Project

	err := st.InTx(ctx, func(tx store.Store) error {
		project, err := tx.LockProject(ctx, id)
		if err != nil {
			return notFound(err, ErrProjectNotFound)
		}
		if authorize != nil {
			if err := authorize(project); err != nil {
				return err
			}
		}

		before = *project
		updated := *project
		patch.Apply(&updated)
		updated.Title = strings.TrimSpace(updated.Title)
		updated.Description = strings.TrimSpace(updated.Description)
		updated.Category = strings.TrimSpace(updated.Category)
		updated.ImageURL = strings.TrimSpace(updated.ImageURL)

		if err := validateProject(&updated); err != nil {
			return err
		}

		return notFound(tx.UpdateProject(ctx, &updated), ErrProjectNotFound)
	})
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) || errors.Is(err, ErrForbidden) ||
			errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	stored, err := st.GetProject(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrProjectNotFound)
	}

	if after != nil {
		after(ctx, &before, stored)
	}
	return stored, nil
}
