package model

import "time"

// CollaborationStatus describes whether a collaboration is running.
type CollaborationStatus string

const (
	CollaborationStatusActive    CollaborationStatus = "active"
	CollaborationStatusCompleted CollaborationStatus = "completed"
	CollaborationStatusCancelled CollaborationStatus = "cancelled"
)

// IsValid checks if the status is a known collaboration status.
func (s CollaborationStatus) IsValid() bool {
	switch s {
	case CollaborationStatusActive, CollaborationStatusCompleted, CollaborationStatusCancelled:
		return true
	}
	return false
}

// Partner is an external organization taking part in a collaboration.
type Partner struct {
	Name    string `json:"name"`
	Logo    string `json:"logo,omitempty"`
	Website string `json:"website,omitempty"`
}

// Collaboration groups several projects under a joint campaign.
type Collaboration struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	StartDate   time.Time           `json:"startDate"`
	EndDate     time.Time           `json:"endDate"`
	ImageURL    string              `json:"imageUrl"`
	Partners    []Partner           `json:"partners"`
	Projects    []string            `json:"projects"`
	Status      CollaborationStatus `json:"status"`
	CreatedBy   string              `json:"createdBy"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// CollaborationPatch holds the optional fields of a collaboration update.
type CollaborationPatch struct {
	Title       *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	ImageURL    *string
	Partners    []Partner
	Projects    []string
	Status      *CollaborationStatus
}

// Apply copies the present fields onto the collaboration.
func (cp CollaborationPatch) Apply(c *Collaboration) {
	if cp.Title != nil {
		c.Title = *cp.Title
	}
	if cp.Description != nil {
		c.Description = *cp.Description
	}
	if cp.StartDate != nil {
		c.StartDate = *cp.StartDate
	}
	if cp.EndDate != nil {
		c.EndDate = *cp.EndDate
	}
	if cp.ImageURL != nil {
		c.ImageURL = *cp.ImageURL
	}
	if cp.Partners != nil {
		c.Partners = cp.Partners
	}
	if cp.Projects != nil {
		c.Projects = cp.Projects
	}
	if cp.Status != nil {
		c.Status = *cp.Status
	}
}
