package model

import (
	"slices"
	"time"
)

// EventStatus describes where an event is in its schedule.
type EventStatus string

const (
	EventStatusUpcoming  EventStatus = "upcoming"
	EventStatusActive    EventStatus = "active"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

// IsValid checks if the status is a known event status.
func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusUpcoming, EventStatusActive, EventStatusCompleted, EventStatusCancelled:
		return true
	}
	return false
}

// Event is an admin-curated meetup, showcase or workshop.
type Event struct {
	ID               string       `json:"id"`
	Title            string       `json:"title"`
	Description      string       `json:"description"`
	StartDate        time.Time    `json:"startDate"`
	EndDate          time.Time    `json:"endDate"`
	Location         string       `json:"location"`
	ImageURL         string       `json:"imageUrl"`
	Category         string       `json:"category"`
	IsVirtual        bool         `json:"isVirtual"`
	RegistrationLink string       `json:"registrationLink,omitempty"`
	OrganizerID      string       `json:"organizerId"`
	Organizer        *UserSummary `json:"organizer,omitempty"`
	Attendees        []string     `json:"attendees"`
	RelatedProjects  []string     `json:"relatedProjects"`
	Status           EventStatus  `json:"status"`
	CreatedAt        time.Time    `json:"createdAt"`
}

// HasAttendee reports whether the user is registered for the event.
func (e *Event) HasAttendee(userID string) bool {
	return slices.Contains(e.Attendees, userID)
}

// EventPatch holds the optional fields of an event update.
type EventPatch struct {
	Title            *string
	Description      *string
	StartDate        *time.Time
	EndDate          *time.Time
	Location         *string
	ImageURL         *string
	Category         *string
	IsVirtual        *bool
	RegistrationLink *string
	RelatedProjects  []string
	Status           *EventStatus
}

// Apply copies the present fields onto the event.
func (ep EventPatch) Apply(e *Event) {
	if ep.Title != nil {
		e.Title = *ep.Title
	}
	if ep.Description != nil {
		e.Description = *ep.Description
	}
	if ep.StartDate != nil {
		e.StartDate = *ep.StartDate
	}
	if ep.EndDate != nil {
		e.EndDate = *ep.EndDate
	}
	if ep.Location != nil {
		e.Location = *ep.Location
	}
	if ep.ImageURL != nil {
		e.ImageURL = *ep.ImageURL
	}
	if ep.Category != nil {
		e.Category = *ep.Category
	}
	if ep.IsVirtual != nil {
		e.IsVirtual = *ep.IsVirtual
	}
	if ep.RegistrationLink != nil {
		e.RegistrationLink = *ep.RegistrationLink
	}
	if ep.RelatedProjects != nil {
		e.RelatedProjects = ep.RelatedProjects
	}
	if ep.Status != nil {
		e.Status = *ep.Status
	}
}
