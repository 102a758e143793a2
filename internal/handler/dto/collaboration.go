package dto

import (
	"time"

	"github.com/fundhive/fundhive/internal/model"
)

// CollaborationRequest is the body for creating a collaboration.
type CollaborationRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	StartDate   time.Time       `json:"startDate"`
	EndDate     time.Time       `json:"endDate"`
	ImageURL    string          `json:"imageUrl"`
	Partners    []model.Partner `json:"partners,omitempty"`
	Projects    []string        `json:"projects,omitempty"`
	Status      string          `json:"status,omitempty"`
}

// UpdateCollaborationRequest is a partial collaboration update.
type UpdateCollaborationRequest struct {
	Title       *string         `json:"title,omitempty"`
	Description *string         `json:"description,omitempty"`
	StartDate   *time.Time      `json:"startDate,omitempty"`
	EndDate     *time.Time      `json:"endDate,omitempty"`
	ImageURL    *string         `json:"imageUrl,omitempty"`
	Partners    []model.Partner `json:"partners,omitempty"`
	Projects    []string        `json:"projects,omitempty"`
	Status      *string         `json:"status,omitempty"`
}

// Patch converts the request into a model patch.
func (r UpdateCollaborationRequest) Patch() model.CollaborationPatch {
	patch := model.CollaborationPatch{
		Title:       r.Title,
		Description: r.Description,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		ImageURL:    r.ImageURL,
		Partners:    r.Partners,
		Projects:    r.Projects,
	}
	if r.Status != nil {
		status := model.CollaborationStatus(*r.Status)
		patch.Status = &status
	}
	return patch
}

// ToCollaborationListResponse wraps a page of collaborations in the list envelope.
func ToCollaborationListResponse(items []*model.Collaboration, total int64, page int, pages int64) ListResponse[*model.Collaboration] {
	return ListResponse[*model.Collaboration]{
		Items:      items,
		Pagination: Pagination{Total: total, Page: page, Pages: pages},
	}
}
