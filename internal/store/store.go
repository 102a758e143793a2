// Package store defines the persistence contracts shared by the Postgres
// repository and the in-memory store.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/fundhive/fundhive/internal/model"
)

// Common store errors. Implementations return these unwrapped or wrapped with %w.
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrOutOfRange = errors.New("value out of range")
)

// ProjectFilter narrows a project listing.
type ProjectFilter struct {
	Category string
	// Search is a case-insensitive substring matched against title or description.
	Search string
}

// ProjectQuery is a filtered, sorted page request.
type ProjectQuery struct {
	Filter ProjectFilter
	Sort   model.ProjectSort
	Page   model.Page
}

// EventQuery is a filtered page request over events, ordered by start date.
type EventQuery struct {
	Category string
	Status   model.EventStatus
	Page     model.Page
}

// CollaborationQuery is a filtered page request over collaborations, ordered by start date.
type CollaborationQuery struct {
	Status model.CollaborationStatus
	Page   model.Page
}

// ProjectStore owns project documents and their backer ledger.
type ProjectStore interface {
	CreateProject(ctx context.Context, p *model.Project) error
	// GetProject returns the project with creator and backer identities resolved.
	GetProject(ctx context.Context, id string) (*model.Project, error)
	// LockProject is GetProject that also holds the row until the surrounding
	// transaction ends. Outside a transaction the lock is released at once.
	LockProject(ctx context.Context, id string) (*model.Project, error)
	ListProjects(ctx context.Context, q ProjectQuery) ([]*model.Project, int64, error)
	UpdateProject(ctx context.Context, p *model.Project) error
	DeleteProject(ctx context.Context, id string) error

	// AppendBacker records a contribution and adds amount to raised in place.
	// It returns ErrOutOfRange when raised would overflow.
	AppendBacker(ctx context.Context, projectID string, b model.Backer) error
	ListBackers(ctx context.Context, projectID string) ([]model.Backer, error)
	AppendUpdate(ctx context.Context, projectID string, u model.ProjectUpdate) error

	CategoryCounts(ctx context.Context) ([]model.CategoryCount, error)
	// TrendingProjects ranks projects by backings made at or after since.
	TrendingProjects(ctx context.Context, since time.Time, limit int) ([]*model.Project, error)
	// TopFundedByCategory returns up to perCategory projects per category by raised desc.
	TopFundedByCategory(ctx context.Context, perCategory int) ([]*model.Project, error)
	CountProjects(ctx context.Context) (int64, error)
	TotalRaised(ctx context.Context) (int64, error)
}

// UserStore owns user identities and their project reference sets.
type UserStore interface {
	CreateUser(ctx context.Context, u *model.User) error
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	AddCreatedProject(ctx context.Context, userID, projectID string) error
	RemoveCreatedProject(ctx context.Context, userID, projectID string) error
	// AddBackedProject has set semantics: a second call is a no-op.
	AddBackedProject(ctx context.Context, userID, projectID string) error
	RemoveBackedProject(ctx context.Context, userID, projectID string) error
	AddSavedProject(ctx context.Context, userID, projectID string) error
	RemoveSavedProject(ctx context.Context, userID, projectID string) error
	// RemoveSavedProjectEverywhere drops the project from every user's bookmarks.
	RemoveSavedProjectEverywhere(ctx context.Context, projectID string) error
	AddContribution(ctx context.Context, userID string, amount int64) error

	CountUsers(ctx context.Context) (int64, error)
	RecentUsers(ctx context.Context, limit int) ([]*model.User, error)
}

// EventStore owns events.
type EventStore interface {
	CreateEvent(ctx context.Context, e *model.Event) error
	GetEvent(ctx context.Context, id string) (*model.Event, error)
	ListEvents(ctx context.Context, q EventQuery) ([]*model.Event, int64, error)
	UpcomingEvents(ctx context.Context, after time.Time, limit int) ([]*model.Event, error)
	UpdateEvent(ctx context.Context, e *model.Event) error
	DeleteEvent(ctx context.Context, id string) error
	// AddAttendee has set semantics.
	AddAttendee(ctx context.Context, eventID, userID string) error
	RemoveRelatedProject(ctx context.Context, projectID string) error
	CountEvents(ctx context.Context) (int64, error)
}

// CollaborationStore owns collaborations.
type CollaborationStore interface {
	CreateCollaboration(ctx context.Context, c *model.Collaboration) error
	GetCollaboration(ctx context.Context, id string) (*model.Collaboration, error)
	ListCollaborations(ctx context.Context, q CollaborationQuery) ([]*model.Collaboration, int64, error)
	// ActiveCollaborations returns active collaborations whose window contains at.
	ActiveCollaborations(ctx context.Context, at time.Time, limit int) ([]*model.Collaboration, error)
	UpdateCollaboration(ctx context.Context, c *model.Collaboration) error
	DeleteCollaboration(ctx context.Context, id string) error
	RemoveCollaborationProject(ctx context.Context, projectID string) error
	CountCollaborations(ctx context.Context) (int64, error)
}

// Store is the full persistence surface.
type Store interface {
	ProjectStore
	UserStore
	EventStore
	CollaborationStore

	// InTx runs fn against a transactional view of the store. If fn returns an
	// error nothing fn wrote is kept. Calling InTx on a transactional view runs
	// fn in the enclosing transaction.
	InTx(ctx context.Context, fn func(tx Store) error) error
}
