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

const eventColumns = `
	e.id, e.title, e.description, e.start_date, e.end_date, e.location, e.image_url,
	e.category, e.is_virtual, e.registration_link, e.organizer_id, e.attendees,
	e.related_projects, e.status, e.created_at, u.name, u.avatar
`

// CreateEvent inserts a new event.
func (r *Repository) CreateEvent(ctx context.Context, e *model.Event) error {
	query := `
		INSERT INTO events (id, title, description, start_date, end_date, location, image_url, category,
		                    is_virtual, registration_link, organizer_id, attendees, related_projects, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.Exec(ctx, query,
		e.ID,
		e.Title,
		e.Description,
		e.StartDate,
		e.EndDate,
		e.Location,
		e.ImageURL,
		e.Category,
		e.IsVirtual,
		e.RegistrationLink,
		e.OrganizerID,
		pq.Array(nonNil(e.Attendees)),
		pq.Array(nonNil(e.RelatedProjects)),
		e.Status,
		e.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrConflict
		}
		return fmt.Errorf("failed to create event: %w", err)
	}

	return nil
}

// GetEvent retrieves an event with its organizer.
func (r *Repository) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	query := `SELECT ` + eventColumns + `
		FROM events e
		JOIN users u ON u.id = e.organizer_id
		WHERE e.id = $1
	`

	e, err := scanEvent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return e, nil
}

// ListEvents returns a filtered page of events ordered by start date.
func (r *Repository) ListEvents(ctx context.Context, q store.EventQuery) ([]*model.Event, int64, error) {
	where := " WHERE 1=1"
	var args []any
	argIndex := 1

	if q.Category != "" {
		where += fmt.Sprintf(" AND e.category = $%d", argIndex)
		args = append(args, q.Category)
		argIndex++
	}

	if q.Status != "" {
		where += fmt.Sprintf(" AND e.status = $%d", argIndex)
		args = append(args, q.Status)
		argIndex++
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM events e`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	query := `SELECT ` + eventColumns + `
		FROM events e
		JOIN users u ON u.id = e.organizer_id` + where + " ORDER BY e.start_date ASC, e.seq ASC"
	query, args = limitOffset(query, args, q.Page.Size, q.Page.Offset())

	events, err := r.queryEvents(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}

	return events, total, nil
}

// UpcomingEvents returns upcoming events starting after the given time.
func (r *Repository) UpcomingEvents(ctx context.Context, after time.Time, limit int) ([]*model.Event, error) {
	query := `SELECT ` + eventColumns + `
		FROM events e
		JOIN users u ON u.id = e.organizer_id
		WHERE e.status = 'upcoming' AND e.start_date > $1
		ORDER BY e.start_date ASC, e.seq ASC
		LIMIT $2
	`

	events, err := r.queryEvents(ctx, query, after, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming events: %w", err)
	}

	return events, nil
}

// UpdateEvent writes the editable fields of an event.
func (r *Repository) UpdateEvent(ctx context.Context, e *model.Event) error {
	query := `
		UPDATE events
		SET title = $2, description = $3, start_date = $4, end_date = $5, location = $6,
		    image_url = $7, category = $8, is_virtual = $9, registration_link = $10,
		    related_projects = $11, status = $12
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		e.ID,
		e.Title,
		e.Description,
		e.StartDate,
		e.EndDate,
		e.Location,
		e.ImageURL,
		e.Category,
		e.IsVirtual,
		e.RegistrationLink,
		pq.Array(nonNil(e.RelatedProjects)),
		e.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	return notFoundIfEmpty(tag)
}

// DeleteEvent removes an event.
func (r *Repository) DeleteEvent(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	return notFoundIfEmpty(tag)
}

// AddAttendee registers the user for the event. A repeat call is a no-op.
func (r *Repository) AddAttendee(ctx context.Context, eventID, userID string) error {
	query := `
		UPDATE events
		SET attendees = array_append(attendees, $2)
		WHERE id = $1 AND NOT ($2 = ANY(attendees))
	`

	tag, err := r.db.Exec(ctx, query, eventID, userID)
	if err != nil {
		return fmt.Errorf("failed to add attendee: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM events WHERE id = $1)`, eventID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check event existence: %w", err)
	}
	if !exists {
		return store.ErrNotFound
	}
	return nil
}

// RemoveRelatedProject unlinks the project from every event.
func (r *Repository) RemoveRelatedProject(ctx context.Context, projectID string) error {
	query := `
		UPDATE events
		SET related_projects = array_remove(related_projects, $1)
		WHERE $1 = ANY(related_projects)
	`

	if _, err := r.db.Exec(ctx, query, projectID); err != nil {
		return fmt.Errorf("failed to unlink project from events: %w", err)
	}

	return nil
}

// CountEvents returns the number of events.
func (r *Repository) CountEvents(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return n, nil
}

func (r *Repository) queryEvents(ctx context.Context, query string, args ...any) ([]*model.Event, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []*model.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}

func scanEvent(row pgx.Row) (*model.Event, error) {
	var e model.Event
	var name, avatar string
	err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Description,
		&e.StartDate,
		&e.EndDate,
		&e.Location,
		&e.ImageURL,
		&e.Category,
		&e.IsVirtual,
		&e.RegistrationLink,
		&e.OrganizerID,
		pq.Array(&e.Attendees),
		pq.Array(&e.RelatedProjects),
		&e.Status,
		&e.CreatedAt,
		&name,
		&avatar,
	)
	if err != nil {
		return nil, err
	}

	e.Organizer = &model.UserSummary{ID: e.OrganizerID, Name: name, Avatar: avatar}
	return &e, nil
}
