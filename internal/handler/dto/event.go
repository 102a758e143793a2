package dto

import (
	"time"

	"github.com/fundhive/fundhive/internal/model"
)

// EventRequest is the body for creating an event.
type EventRequest struct {
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	StartDate        time.Time `json:"startDate"`
	EndDate          time.Time `json:"endDate"`
	Location         string    `json:"location"`
	ImageURL         string    `json:"imageUrl"`
	Category         string    `json:"category"`
	IsVirtual        bool      `json:"isVirtual"`
	RegistrationLink string    `json:"registrationLink,omitempty"`
	RelatedProjects  []string  `json:"relatedProjects,omitempty"`
	Status           string    `json:"status,omitempty"`
}

// UpdateEventRequest is a partial event update.
type UpdateEventRequest struct {
	Title            *string    `json:"title,omitempty"`
	Description      *string    `json:"description,omitempty"`
	StartDate        *time.Time `json:"startDate,omitempty"`
	EndDate          *time.Time `json:"endDate,omitempty"`
	Location         *string    `json:"location,omitempty"`
	ImageURL         *string    `json:"imageUrl,omitempty"`
	Category         *string    `json:"category,omitempty"`
	IsVirtual        *bool      `json:"isVirtual,omitempty"`
	RegistrationLink *string    `json:"registrationLink,omitempty"`
	RelatedProjects  []string   `json:"relatedProjects,omitempty"`
	Status           *string    `json:"status,omitempty"`
}

// Patch converts the request into a model patch.
func (r UpdateEventRequest) Patch() model.EventPatch {
	patch := model.EventPatch{
		Title:            r.Title,
		Description:      r.Description,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		Location:         r.Location,
		ImageURL:         r.ImageURL,
		Category:         r.Category,
		IsVirtual:        r.IsVirtual,
		RegistrationLink: r.RegistrationLink,
		RelatedProjects:  r.RelatedProjects,
	}
	if r.Status != nil {
		status := model.EventStatus(*r.Status)
		patch.Status = &status
	}
	return patch
}

// ToEventListResponse wraps a page of events in the list envelope.
func ToEventListResponse(events []*model.Event, total int64, page int, pages int64) ListResponse[*model.Event] {
	return ListResponse[*model.Event]{
		Items:      events,
		Pagination: Pagination{Total: total, Page: page, Pages: pages},
	}
}
