package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/fundhive/fundhive/internal/model"
	"github.com/fundhive/fundhive/internal/store"
)

const collaborationColumns = `
	id, title, description, start_date, end_date, image_url, partners,
	projects, status, created_by, created_at
`

// CreateCollaboration inserts a new collaboration.
func (r *Repository) CreateCollaboration(ctx context.Context, c *model.Collaboration) error {
	query := `
		INSERT INTO collaborations (id, title, description, start_date, end_date, image_url,
		                            partners, projects, status, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		c.ID,
		c.Title,
		c.Description,
		c.StartDate,
		c.EndDate,
		c.ImageURL,
		nonNilPartners(c.Partners),
		pq.Array(nonNil(c.Projects)),
		c.Status,
		c.CreatedBy,
		c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrConflict
		}
		return fmt.Errorf("failed to create collaboration: %w", err)
	}

	return nil
}

// GetCollaboration retrieves a collaboration by ID.
func (r *Repository) GetCollaboration(ctx context.Context, id string) (*model.Collaboration, error) {
	query := `SELECT ` + collaborationColumns + ` FROM collaborations WHERE id = $1`

	c, err := scanCollaboration(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get collaboration: %w", err)
	}

	return c, nil
}

// ListCollaborations returns a filtered page of collaborations ordered by start date.
func (r *Repository) ListCollaborations(ctx context.Context, q store.CollaborationQuery) ([]*model.Collaboration, int64, error) {
	where := " WHERE 1=1"
	var args []any

	if q.Status != "" {
		where += " AND status = $1"
		args = append(args, q.Status)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM collaborations`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count collaborations: %w", err)
	}

	query := `SELECT ` + collaborationColumns + ` FROM collaborations` + where + " ORDER BY start_date ASC, seq ASC"
	query, args = limitOffset(query, args, q.Page.Size, q.Page.Offset())

	collaborations, err := r.queryCollaborations(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list collaborations: %w", err)
	}

	return collaborations, total, nil
}

// ActiveCollaborations returns active collaborations whose window contains at.
func (r *Repository) ActiveCollaborations(ctx context.Context, at time.Time, limit int) ([]*model.Collaboration, error) {
	query := `SELECT ` + collaborationColumns + `
		FROM collaborations
		WHERE status = 'active' AND start_date <= $1 AND end_date >= $1
		ORDER BY start_date ASC, seq ASC
		LIMIT $2
	`

	collaborations, err := r.queryCollaborations(ctx, query, at, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list active collaborations: %w", err)
	}

	return collaborations, nil
}

// UpdateCollaboration writes the editable fields of a collaboration.
func (r *Repository) UpdateCollaboration(ctx context.Context, c *model.Collaboration) error {
	query := `
		UPDATE collaborations
		SET title = $2, description = $3, start_date = $4, end_date = $5, image_url = $6,
		    partners = $7, projects = $8, status = $9
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		c.ID,
		c.Title,
		c.Description,
		c.StartDate,
		c.EndDate,
		c.ImageURL,
		nonNilPartners(c.Partners),
		pq.Array(nonNil(c.Projects)),
		c.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to update collaboration: %w", err)
	}

	return notFoundIfEmpty(tag)
}

// DeleteCollaboration removes a collaboration.
func (r *Repository) DeleteCollaboration(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM collaborations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete collaboration: %w", err)
	}

	return notFoundIfEmpty(tag)
}

// RemoveCollaborationProject unlinks the project from every collaboration.
func (r *Repository) RemoveCollaborationProject(ctx context.Context, projectID string) error {
	query := `
		UPDATE collaborations
		SET projects = array_remove(projects, $1)
		WHERE $1 = ANY(projects)
	`

	if _, err := r.db.Exec(ctx, query, projectID); err != nil {
		return fmt.Errorf("failed to unlink project from collaborations: %w", err)
	}

	return nil
}

// CountCollaborations returns the number of collaborations.
func (r *Repository) CountCollaborations(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM collaborations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count collaborations: %w", err)
	}
	return n, nil
}

func (r *Repository) queryCollaborations(ctx context.Context, query string, args ...any) ([]*model.Collaboration, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	collaborations := []*model.Collaboration{}
	for rows.Next() {
		c, err := scanCollaboration(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan collaboration: %w", err)
		}
		collaborations = append(collaborations, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating collaborations: %w", err)
	}

	return collaborations, nil
}

func scanCollaboration(row pgx.Row) (*model.Collaboration, error) {
	var c model.Collaboration
	err := row.Scan(
		&c.ID,
		&c.Title,
		&c.Description,
		&c.StartDate,
		&c.EndDate,
		&c.ImageURL,
		&c.Partners,
		pq.Array(&c.Projects),
		&c.Status,
		&c.CreatedBy,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if c.Partners == nil {
		c.Partners = []model.Partner{}
	}
	return &c, nil
}

func nonNilPartners(partners []model.Partner) []model.Partner {
	if partners == nil {
		return []model.Partner{}
	}
	return partners
}
