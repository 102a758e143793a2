// Package model defines domain entities for the application.
package model

import (
	"strings"
	"time"
)

// Role constants for user authorization.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// DefaultAvatar is assigned to users who register without one.
const DefaultAvatar = "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?auto=format&fit=crop&q=80"

// User represents a registered account and its project references.
type User struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"` // Never serialize
	Role             string    `json:"role"`
	Avatar           string    `json:"avatar"`
	Bio              string    `json:"bio"`
	CreatedProjects  []string  `json:"createdProjects"`
	BackedProjects   []string  `json:"backedProjects"`
	SavedProjects    []string  `json:"savedProjects"`
	TotalContributed int64     `json:"totalContributed"`
	CreatedAt        time.Time `json:"createdAt"`
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserSummary is the public identity embedded in project and event views.
type UserSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Summary returns the public identity of the user.
func (u *User) Summary() *UserSummary {
	return &UserSummary{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
}

// NormalizeEmail trims and lower-cases an email address.
// Emails are unique case-insensitively.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsValidRole checks if the role is one of the known roles.
func IsValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
