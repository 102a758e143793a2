package dto

import (
	"time"

	"github.com/fundhive/fundhive/internal/model"
)

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the public view of an account. The password hash never
// leaves the service.
type UserResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Role             string    `json:"role"`
	Avatar           string    `json:"avatar"`
	Bio              string    `json:"bio"`
	CreatedProjects  []string  `json:"createdProjects"`
	BackedProjects   []string  `json:"backedProjects"`
	SavedProjects    []string  `json:"savedProjects"`
	TotalContributed int64     `json:"totalContributed"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ToUserResponse converts a User model to UserResponse DTO.
func ToUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Role:             u.Role,
		Avatar:           u.Avatar,
		Bio:              u.Bio,
		CreatedProjects:  nonNil(u.CreatedProjects),
		BackedProjects:   nonNil(u.BackedProjects),
		SavedProjects:    nonNil(u.SavedProjects),
		TotalContributed: u.TotalContributed,
		CreatedAt:        u.CreatedAt,
	}
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
