package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/fundhive/fundhive/internal/model"
	"github.com/fundhive/fundhive/internal/store"
)

// Reference-set columns on users. Never interpolate anything else into SQL.
const (
	colCreatedProjects = "created_projects"
	colBackedProjects  = "backed_projects"
	colSavedProjects   = "saved_projects"
)

const userColumns = `
	id, name, email, password_hash, role, avatar, bio,
	created_projects, backed_projects, saved_projects, total_contributed, created_at
`

// CreateUser inserts a new user. Emails are unique case-insensitively.
func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, role, avatar, bio,
		                   created_projects, backed_projects, saved_projects, total_contributed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		user.ID,
		user.Name,
		model.NormalizeEmail(user.Email),
		user.PasswordHash,
		user.Role,
		user.Avatar,
		user.Bio,
		pq.Array(nonNil(user.CreatedProjects)),
		pq.Array(nonNil(user.BackedProjects)),
		pq.Array(nonNil(user.SavedProjects)),
		user.TotalContributed,
		user.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrConflict
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUser retrieves a user by their ID.
func (r *Repository) GetUser(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email, ignoring case and surrounding space.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, model.NormalizeEmail(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// AddCreatedProject adds the project to the user's created set.
func (r *Repository) AddCreatedProject(ctx context.Context, userID, projectID string) error {
	return r.addToSet(ctx, colCreatedProjects, userID, projectID)
}

// RemoveCreatedProject removes the project from the user's created set.
func (r *Repository) RemoveCreatedProject(ctx context.Context, userID, projectID string) error {
	return r.removeFromSet(ctx, colCreatedProjects, userID, projectID)
}

// AddBackedProject adds the project to the user's backed set.
func (r *Repository) AddBackedProject(ctx context.Context, userID, projectID string) error {
	return r.addToSet(ctx, colBackedProjects, userID, projectID)
}

// RemoveBackedProject removes the project from the user's backed set.
func (r *Repository) RemoveBackedProject(ctx context.Context, userID, projectID string) error {
	return r.removeFromSet(ctx, colBackedProjects, userID, projectID)
}

// AddSavedProject bookmarks the project for the user.
func (r *Repository) AddSavedProject(ctx context.Context, userID, projectID string) error {
	return r.addToSet(ctx, colSavedProjects, userID, projectID)
}

// RemoveSavedProject drops the bookmark.
func (r *Repository) RemoveSavedProject(ctx context.Context, userID, projectID string) error {
	return r.removeFromSet(ctx, colSavedProjects, userID, projectID)
}

// RemoveSavedProjectEverywhere drops the project from every user's bookmarks.
func (r *Repository) RemoveSavedProjectEverywhere(ctx context.Context, projectID string) error {
	query := `
		UPDATE users
		SET saved_projects = array_remove(saved_projects, $1)
		WHERE $1 = ANY(saved_projects)
	`

	if _, err := r.db.Exec(ctx, query, projectID); err != nil {
		return fmt.Errorf("failed to remove saved project: %w", err)
	}

	return nil
}

// AddContribution increments the user's lifetime contribution in place.
func (r *Repository) AddContribution(ctx context.Context, userID string, amount int64) error {
	query := `
		UPDATE users
		SET total_contributed = total_contributed + $2
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, userID, amount)
	if err != nil {
		if isOutOfRange(err) {
			return store.ErrOutOfRange
		}
		return fmt.Errorf("failed to add contribution: %w", err)
	}

	return notFoundIfEmpty(tag)
}

// CountUsers returns the number of users.
func (r *Repository) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

// RecentUsers returns the newest users first.
func (r *Repository) RecentUsers(ctx context.Context, limit int) ([]*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC, seq DESC LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent users: %w", err)
	}
	defer rows.Close()

	users := []*model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// addToSet appends id to the array column unless it is already present.
// The guard and the append happen in one statement, so concurrent callers
// can never insert the same id twice.
func (r *Repository) addToSet(ctx context.Context, column, userID, id string) error {
	query := fmt.Sprintf(`
		UPDATE users
		SET %[1]s = array_append(%[1]s, $2)
		WHERE id = $1 AND NOT ($2 = ANY(%[1]s))
	`, column)

	tag, err := r.db.Exec(ctx, query, userID, id)
	if err != nil {
		return fmt.Errorf("failed to add to %s: %w", column, err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// Nothing changed: either the id was already present or the user is missing.
	return r.userExists(ctx, userID)
}

func (r *Repository) removeFromSet(ctx context.Context, column, userID, id string) error {
	query := fmt.Sprintf(`UPDATE users SET %[1]s = array_remove(%[1]s, $2) WHERE id = $1`, column)

	tag, err := r.db.Exec(ctx, query, userID, id)
	if err != nil {
		return fmt.Errorf("failed to remove from %s: %w", column, err)
	}

	return notFoundIfEmpty(tag)
}

func (r *Repository) userExists(ctx context.Context, userID string) error {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check user existence: %w", err)
	}
	if !exists {
		return store.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.Avatar,
		&u.Bio,
		pq.Array(&u.CreatedProjects),
		pq.Array(&u.BackedProjects),
		pq.Array(&u.SavedProjects),
		&u.TotalContributed,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
