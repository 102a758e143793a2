package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fundhive/fundhive/internal/model"
	"github.com/fundhive/fundhive/internal/store"
)

const activeCollaborationsLimit = 5

// CollaborationService handles cross-project collaborations.
type CollaborationService struct {
	store  store.CollaborationStore
	paging Paging
	logger *slog.Logger
	now    func() time.Time
}

// NewCollaborationService creates a new CollaborationService.
func NewCollaborationService(st store.CollaborationStore, paging Paging, logger *slog.Logger) *CollaborationService {
	if paging.DefaultSize <= 0 {
		paging = DefaultPaging
	}
	return &CollaborationService{
		store:  st,
		paging: paging,
		logger: defaultLogger(logger),
		now:    utcNow,
	}
}

// ListCollaborationsInput defines input for listing collaborations.
type ListCollaborationsInput struct {
	Status   string
	Page     int
	PageSize int
}

// List returns a page of collaborations ordered by start date.
func (s *CollaborationService) List(ctx context.Context, input ListCollaborationsInput) (*List[*model.Collaboration], error) {
	status := model.CollaborationStatus(input.Status)
	if status != "" && !status.IsValid() {
		return nil, &ValidationError{Fields: []string{"status"}}
	}

	page := s.paging.normalize(input.Page, input.PageSize)
	collaborations, total, err := s.store.ListCollaborations(ctx, store.CollaborationQuery{
		Status: status,
		Page:   page,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list collaborations: %w", err)
	}

	return newList(collaborations, total, page), nil
}

// ListAll returns every collaboration for the admin console.
func (s *CollaborationService) ListAll(ctx context.Context) ([]*model.Collaboration, error) {
	collaborations, _, err := s.store.ListCollaborations(ctx, store.CollaborationQuery{})
	if err != nil {
		return nil, fmt.Errorf("failed to list collaborations: %w", err)
	}
	return collaborations, nil
}

// Active returns collaborations running right now.
func (s *CollaborationService) Active(ctx context.Context) ([]*model.Collaboration, error) {
	collaborations, err := s.store.ActiveCollaborations(ctx, s.now(), activeCollaborationsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list active collaborations: %w", err)
	}
	return collaborations, nil
}

// Get retrieves a collaboration by ID.
func (s *CollaborationService) Get(ctx context.Context, id string) (*model.Collaboration, error) {
	c, err := s.store.GetCollaboration(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrCollaborationNotFound)
	}
	return c, nil
}

// CreateCollaborationInput defines input for creating a collaboration.
type CreateCollaborationInput struct {
	CreatedBy   string
	Title       string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	ImageURL    string
	Partners    []model.Partner
	Projects    []string
	Status      string
}

// Create creates a collaboration.
func (s *CollaborationService) Create(ctx context.Context, input CreateCollaborationInput) (*model.Collaboration, error) {
	status := model.CollaborationStatus(input.Status)
	if status == "" {
		status = model.CollaborationStatusActive
	}
	partners := input.Partners
	if partners == nil {
		partners = []model.Partner{}
	}
	projects := input.Projects
	if projects == nil {
		projects = []string{}
	}

	c := &model.Collaboration{
		ID:          generateID(),
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		StartDate:   input.StartDate.UTC(),
		EndDate:     input.EndDate.UTC(),
		ImageURL:    strings.TrimSpace(input.ImageURL),
		Partners:    partners,
		Projects:    projects,
		Status:      status,
		CreatedBy:   input.CreatedBy,
		CreatedAt:   s.now(),
	}

	if err := validateCollaboration(c); err != nil {
		return nil, err
	}

	if err := s.store.CreateCollaboration(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create collaboration: %w", err)
	}

	s.logger.Info("collaboration_created", "collaboration_id", c.ID, "created_by", c.CreatedBy)

	return s.Get(ctx, c.ID)
}

// Update applies a partial update to a collaboration.
func (s *CollaborationService) Update(ctx context.Context, id string, patch model.CollaborationPatch) (*model.Collaboration, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(c)
	if err := validateCollaboration(c); err != nil {
		return nil, err
	}

	if err := s.store.UpdateCollaboration(ctx, c); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCollaborationNotFound
		}
		return nil, fmt.Errorf("failed to update collaboration: %w", err)
	}

	s.logger.Info("collaboration_updated", "collaboration_id", id)

	return s.Get(ctx, id)
}

// Delete removes a collaboration.
func (s *CollaborationService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteCollaboration(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrCollaborationNotFound
		}
		return fmt.Errorf("failed to delete collaboration: %w", err)
	}

	s.logger.Info("collaboration_deleted", "collaboration_id", id)
	return nil
}

func validateCollaboration(c *model.Collaboration) error {
	var v fieldChecker
	v.require(c.Title != "", "title")
	v.require(c.Description != "", "description")
	v.require(!c.StartDate.IsZero(), "startDate")
	v.require(!c.EndDate.IsZero() && !c.EndDate.Before(c.StartDate), "endDate")
	v.require(c.ImageURL != "", "imageUrl")
	v.require(c.CreatedBy != "", "createdBy")
	v.require(c.Status.IsValid(), "status")
	for _, p := range c.Partners {
		if strings.TrimSpace(p.Name) == "" {
			v.require(false, "partners")
			break
		}
	}
	return v.err()
}
