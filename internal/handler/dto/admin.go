package dto

import (
	"time"

	"github.com/fundhive/fundhive/internal/model"
)

// StatsCounts are the dashboard totals.
type StatsCounts struct {
	Projects       int64 `json:"projects"`
	Users          int64 `json:"users"`
	Events         int64 `json:"events"`
	Collaborations int64 `json:"collaborations"`
	Funding        int64 `json:"funding"`
}

// StatsResponse is the admin dashboard payload.
type StatsResponse struct {
	Counts         StatsCounts       `json:"counts"`
	RecentProjects []ProjectResponse `json:"recentProjects"`
	RecentUsers    []UserResponse    `json:"recentUsers"`
}

// ToStatsResponse converts dashboard data for the API.
func ToStatsResponse(counts StatsCounts, projects []*model.Project, users []*model.User, now time.Time) StatsResponse {
	return StatsResponse{
		Counts:         counts,
		RecentProjects: ToProjectResponses(projects, now),
		RecentUsers:    mapSlice(users, ToUserResponse),
	}
}
