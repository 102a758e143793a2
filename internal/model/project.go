package model

import (
	"math"
	"time"
)

// ProjectStatus is set explicitly by an admin; nothing transitions it automatically.
type ProjectStatus string

const (
	ProjectStatusDraft   ProjectStatus = "draft"
	ProjectStatusActive  ProjectStatus = "active"
	ProjectStatusFunded  ProjectStatus = "funded"
	ProjectStatusExpired ProjectStatus = "expired"
)

// IsValid checks if the status is a known project status.
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusDraft, ProjectStatusActive, ProjectStatusFunded, ProjectStatusExpired:
		return true
	}
	return false
}

const millisPerDay = 86_400_000

// Backer is a single contribution recorded against a project.
// A user appears once per backing action.
type Backer struct {
	UserID string       `json:"userId"`
	User   *UserSummary `json:"user,omitempty"`
	Amount int64        `json:"amount"`
	Date   time.Time    `json:"date"`
}

// ProjectUpdate is a creator-posted news entry.
type ProjectUpdate struct {
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Date    time.Time `json:"date"`
}

// FAQ is a question/answer pair shown on the project page.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Project represents a funding campaign.
type Project struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Goal        int64           `json:"goal"`
	Raised      int64           `json:"raised"`
	Deadline    time.Time       `json:"deadline"`
	ImageURL    string          `json:"imageUrl"`
	CreatorID   string          `json:"creatorId"`
	Creator     *UserSummary    `json:"creator,omitempty"`
	Backers     []Backer        `json:"backers"`
	BackerCount int             `json:"backerCount"`
	Updates     []ProjectUpdate `json:"updates"`
	FAQs        []FAQ           `json:"faqs"`
	Risks       string          `json:"risks"`
	Status      ProjectStatus   `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// PercentFunded returns round(raised / goal * 100).
// Computed at read time, never persisted.
func (p *Project) PercentFunded() int64 {
	if p.Goal <= 0 {
		return 0
	}
	return int64(math.Floor(float64(p.Raised)/float64(p.Goal)*100 + 0.5))
}

// DaysLeft returns ceil((deadline - now) / 1 day) in milliseconds resolution.
// Negative once the deadline has passed.
func (p *Project) DaysLeft(now time.Time) int64 {
	diff := p.Deadline.Sub(now).Milliseconds()
	return int64(math.Ceil(float64(diff) / millisPerDay))
}

// BackedTotal sums backer amounts. Equals Raised whenever the ledger is consistent.
func (p *Project) BackedTotal() int64 {
	var total int64
	for _, b := range p.Backers {
		total += b.Amount
	}
	return total
}

// DistinctBackerIDs returns each backer user ID once, in first-seen order.
func (p *Project) DistinctBackerIDs() []string {
	seen := make(map[string]struct{}, len(p.Backers))
	ids := make([]string, 0, len(p.Backers))
	for _, b := range p.Backers {
		if _, ok := seen[b.UserID]; ok {
			continue
		}
		seen[b.UserID] = struct{}{}
		ids = append(ids, b.UserID)
	}
	return ids
}

// ProjectPatch holds the optional fields of a project update.
// Nil fields are left untouched.
type ProjectPatch struct {
	Title       *string
	Description *string
	Category    *string
	Goal        *int64
	Deadline    *time.Time
	ImageURL    *string
	Risks       *string
	FAQs        []FAQ
	Status      *ProjectStatus // admin only
}

// Apply copies the present fields onto the project.
func (pp ProjectPatch) Apply(p *Project) {
	if pp.Title != nil {
		p.Title = *pp.Title
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.Category != nil {
		p.Category = *pp.Category
	}
	if pp.Goal != nil {
		p.Goal = *pp.Goal
	}
	if pp.Deadline != nil {
		p.Deadline = *pp.Deadline
	}
	if pp.ImageURL != nil {
		p.ImageURL = *pp.ImageURL
	}
	if pp.Risks != nil {
		p.Risks = *pp.Risks
	}
	if pp.FAQs != nil {
		p.FAQs = pp.FAQs
	}
	if pp.Status != nil {
		p.Status = *pp.Status
	}
}

// ProjectSort selects the listing order.
type ProjectSort string

const (
	SortNewest          ProjectSort = "newest"
	SortPopular         ProjectSort = "popular"
	SortMostFunded      ProjectSort = "mostFunded"
	SortDeadlineSoonest ProjectSort = "deadlineSoonest"
)

// ParseProjectSort maps a query value to a sort order.
// The short forms "funded" and "deadline" are accepted; anything else is newest.
func ParseProjectSort(s string) ProjectSort {
	switch s {
	case "popular":
		return SortPopular
	case "mostFunded", "funded":
		return SortMostFunded
	case "deadlineSoonest", "deadline":
		return SortDeadlineSoonest
	default:
		return SortNewest
	}
}

// CategoryCount is a category name with the number of projects in it.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}
