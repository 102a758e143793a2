package dto

import (
	"encoding/json"
	"time"

	"github.com/fundhive/fundhive/internal/model"
)

// CreateProjectRequest represents the request body for creating a project.
type CreateProjectRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Goal        json.Number `json:"goal"`
	Deadline    time.Time   `json:"deadline"`
	ImageURL    string      `json:"imageUrl"`
	Risks       string      `json:"risks,omitempty"`
	FAQs        []model.FAQ `json:"faqs,omitempty"`
}

// UpdateProjectRequest represents a partial project update. Absent fields
// are left unchanged.
type UpdateProjectRequest struct {
	Title       *string      `json:"title,omitempty"`
	Description *string      `json:"description,omitempty"`
	Category    *string      `json:"category,omitempty"`
	Goal        *json.Number `json:"goal,omitempty"`
	Deadline    *time.Time   `json:"deadline,omitempty"`
	ImageURL    *string      `json:"imageUrl,omitempty"`
	Risks       *string      `json:"risks,omitempty"`
	FAQs        []model.FAQ  `json:"faqs,omitempty"`
	Status      *string      `json:"status,omitempty"`
}

// Patch converts the request into a model patch.
func (r UpdateProjectRequest) Patch() (model.ProjectPatch, error) {
	patch := model.ProjectPatch{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Deadline:    r.Deadline,
		ImageURL:    r.ImageURL,
		Risks:       r.Risks,
		FAQs:        r.FAQs,
	}
	if r.Goal != nil {
		goal, err := WholeNumber(*r.Goal)
		if err != nil {
			return model.ProjectPatch{}, err
		}
		patch.Goal = &goal
	}
	if r.Status != nil {
		status := model.ProjectStatus(*r.Status)
		patch.Status = &status
	}
	return patch, nil
}

// BackProjectRequest represents the request body for backing a project.
type BackProjectRequest struct {
	Amount json.Number `json:"amount"`
}

// PostUpdateRequest represents a creator's news entry.
type PostUpdateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ProjectResponse is a project with its derived progress values.
type ProjectResponse struct {
	*model.Project
	PercentFunded int64 `json:"percentFunded"`
	DaysLeft      int64 `json:"daysLeft"`
}

// ToProjectResponse converts a Project model to ProjectResponse DTO.
func ToProjectResponse(p *model.Project, now time.Time) ProjectResponse {
	return ProjectResponse{
		Project:       p,
		PercentFunded: p.PercentFunded(),
		DaysLeft:      p.DaysLeft(now),
	}
}

// ToProjectResponses converts a slice of projects.
func ToProjectResponses(projects []*model.Project, now time.Time) []ProjectResponse {
	return mapSlice(projects, func(p *model.Project) ProjectResponse {
		return ToProjectResponse(p, now)
	})
}

// ToProjectListResponse wraps a page of projects in the list envelope.
func ToProjectListResponse(projects []*model.Project, total int64, page int, pages int64, now time.Time) ListResponse[ProjectResponse] {
	return ListResponse[ProjectResponse]{
		Items:      ToProjectResponses(projects, now),
		Pagination: Pagination{Total: total, Page: page, Pages: pages},
	}
}

// BackersResponse lists a project's contributions.
type BackersResponse struct {
	Items []model.Backer `json:"items"`
	Total int64          `json:"total"`
}

// CategoryFeatured is one category with its best funded projects.
type CategoryFeatured struct {
	Category string            `json:"category"`
	Projects []ProjectResponse `json:"projects"`
}
