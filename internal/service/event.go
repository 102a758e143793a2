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

const upcomingEventsLimit = 5

// EventService handles events and attendee registration.
type EventService struct {
	store  store.EventStore
	paging Paging
	logger *slog.Logger
	now    func() time.Time
}

// NewEventService creates a new EventService.
func NewEventService(st store.EventStore, paging Paging, logger *slog.Logger) *EventService {
	if paging.DefaultSize <= 0 {
		paging = DefaultPaging
	}
	return &EventService{
		store:  st,
		paging: paging,
		logger: defaultLogger(logger),
		now:    utcNow,
	}
}

// ListEventsInput defines input for listing events.
type ListEventsInput struct {
	Category string
	Status   string
	Page     int
	PageSize int
}

// List returns a filtered page of events ordered by start date.
func (s *EventService) List(ctx context.Context, input ListEventsInput) (*List[*model.Event], error) {
	status := model.EventStatus(input.Status)
	if status != "" && !status.IsValid() {
		return nil, &ValidationError{Fields: []string{"status"}}
	}

	page := s.paging.normalize(input.Page, input.PageSize)
	events, total, err := s.store.ListEvents(ctx, store.EventQuery{
		Category: strings.TrimSpace(input.Category),
		Status:   status,
		Page:     page,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	return newList(events, total, page), nil
}

// ListAll returns every event for the admin console.
func (s *EventService) ListAll(ctx context.Context) ([]*model.Event, error) {
	events, _, err := s.store.ListEvents(ctx, store.EventQuery{})
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// Upcoming returns the next few upcoming events.
func (s *EventService) Upcoming(ctx context.Context) ([]*model.Event, error) {
	events, err := s.store.UpcomingEvents(ctx, s.now(), upcomingEventsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming events: %w", err)
	}
	return events, nil
}

// Get retrieves an event by ID.
func (s *EventService) Get(ctx context.Context, id string) (*model.Event, error) {
	event, err := s.store.GetEvent(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrEventNotFound)
	}
	return event, nil
}

// Register adds the user to the event's attendees.
func (s *EventService) Register(ctx context.Context, eventID, userID string) (*model.Event, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}

	event, err := s.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.HasAttendee(userID) {
		return nil, ErrAlreadyRegistered
	}

	if err := s.store.AddAttendee(ctx, eventID, userID); err != nil {
		return nil, notFound(err, ErrEventNotFound)
	}

	s.logger.Info("event_registered", "event_id", eventID, "user_id", userID)

	return s.Get(ctx, eventID)
}

// CreateEventInput defines input for creating an event.
type CreateEventInput struct {
	OrganizerID      string
	Title            string
	Description      string
	StartDate        time.Time
	EndDate          time.Time
	Location         string
	ImageURL         string
	Category         string
	IsVirtual        bool
	RegistrationLink string
	RelatedProjects  []string
	Status           string
}

// Create creates an event organized by the requesting admin.
func (s *EventService) Create(ctx context.Context, input CreateEventInput) (*model.Event, error) {
	status := model.EventStatus(input.Status)
	if status == "" {
		status = model.EventStatusUpcoming
	}
	related := input.RelatedProjects
	if related == nil {
		related = []string{}
	}

	event := &model.Event{
		ID:               generateID(),
		Title:            strings.TrimSpace(input.Title),
		Description:      strings.TrimSpace(input.Description),
		StartDate:        input.StartDate.UTC(),
		EndDate:          input.EndDate.UTC(),
		Location:         strings.TrimSpace(input.Location),
		ImageURL:         strings.TrimSpace(input.ImageURL),
		Category:         strings.TrimSpace(input.Category),
		IsVirtual:        input.IsVirtual,
		RegistrationLink: input.RegistrationLink,
		OrganizerID:      input.OrganizerID,
		Attendees:        []string{},
		RelatedProjects:  related,
		Status:           status,
		CreatedAt:        s.now(),
	}

	if err := validateEvent(event); err != nil {
		return nil, err
	}

	if err := s.store.CreateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.logger.Info("event_created", "event_id", event.ID, "organizer_id", event.OrganizerID)

	return s.Get(ctx, event.ID)
}

// Update applies a partial update to an event.
func (s *EventService) Update(ctx context.Context, id string, patch model.EventPatch) (*model.Event, error) {
	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(event)
	if err := validateEvent(event); err != nil {
		return nil, err
	}

	if err := s.store.UpdateEvent(ctx, event); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	s.logger.Info("event_updated", "event_id", id)

	return s.Get(ctx, id)
}

// Delete removes an event.
func (s *EventService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteEvent(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to delete event: %w", err)
	}

	s.logger.Info("event_deleted", "event_id", id)
	return nil
}

func validateEvent(e *model.Event) error {
	var c fieldChecker
	c.require(e.Title != "", "title")
	c.require(e.Description != "", "description")
	c.require(!e.StartDate.IsZero(), "startDate")
	c.require(!e.EndDate.IsZero() && !e.EndDate.Before(e.StartDate), "endDate")
	c.require(e.Location != "", "location")
	c.require(e.ImageURL != "", "imageUrl")
	c.require(e.Category != "", "category")
	c.require(e.OrganizerID != "", "organizer")
	c.require(e.Status.IsValid(), "status")
	return c.err()
}
