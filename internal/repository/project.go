package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fundhive/fundhive/internal/model"
	"github.com/fundhive/fundhive/internal/store"
)

const projectColumns = `
	p.id, p.title, p.description, p.category, p.goal, p.raised, p.deadline,
	p.image_url, p.creator_id, p.faqs, p.risks, p.status, p.created_at,
	(SELECT COUNT(*) FROM project_backers b WHERE b.project_id = p.id) AS backer_count,
	u.name, u.avatar
`

var projectOrderBy = map[model.ProjectSort]string{
	model.SortNewest:          "p.created_at DESC, p.seq DESC",
	model.SortPopular:         "backer_count DESC, p.seq ASC",
	model.SortMostFunded:      "p.raised DESC, p.seq ASC",
	model.SortDeadlineSoonest: "p.deadline ASC, p.seq ASC",
}

// CreateProject inserts a new project.
func (r *Repository) CreateProject(ctx context.Context, p *model.Project) error {
	query := `
		INSERT INTO projects (id, title, description, category, goal, raised, deadline, image_url, creator_id, faqs, risks, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		p.ID,
		p.Title,
		p.Description,
		p.Category,
		p.Goal,
		p.Raised,
		p.Deadline,
		p.ImageURL,
		p.CreatorID,
		nonNilFAQs(p.FAQs),
		p.Risks,
		p.Status,
		p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrConflict
		}
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// GetProject retrieves a project with its creator, backers and updates.
func (r *Repository) GetProject(ctx context.Context, id string) (*model.Project, error) {
	query := `SELECT ` + projectColumns + `
		FROM projects p
		JOIN users u ON u.id = p.creator_id
		WHERE p.id = $1
	`

	p, err := scanProject(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if p.Backers, err = r.backers(ctx, id); err != nil {
		return nil, err
	}
	if p.Updates, err = r.updates(ctx, id); err != nil {
		return nil, err
	}

	return p, nil
}

// LockProject takes a row lock on the project with SELECT ... FOR UPDATE and
// returns it. The lock lasts until the surrounding transaction ends.
func (r *Repository) LockProject(ctx context.Context, id string) (*model.Project, error) {
	var locked string
	err := r.db.QueryRow(ctx, `SELECT id FROM projects WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock project: %w", err)
	}

	return r.GetProject(ctx, id)
}

// ListProjects returns a filtered, sorted page of projects and the total match count.
func (r *Repository) ListProjects(ctx context.Context, q store.ProjectQuery) ([]*model.Project, int64, error) {
	where := " WHERE 1=1"
	var args []any
	argIndex := 1

	if q.Filter.Category != "" {
		where += fmt.Sprintf(" AND p.category = $%d", argIndex)
		args = append(args, q.Filter.Category)
		argIndex++
	}

	if q.Filter.Search != "" {
		where += fmt.Sprintf(" AND (p.title ILIKE $%d OR p.description ILIKE $%d)", argIndex, argIndex)
		args = append(args, likePattern(q.Filter.Search))
		argIndex++
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM projects p`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}

	orderBy, ok := projectOrderBy[q.Sort]
	if !ok {
		orderBy = projectOrderBy[model.SortNewest]
	}

	query := `SELECT ` + projectColumns + `
		FROM projects p
		JOIN users u ON u.id = p.creator_id` + where + " ORDER BY " + orderBy
	query, args = limitOffset(query, args, q.Page.Size, q.Page.Offset())

	projects, err := r.queryProjects(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}

	return projects, total, nil
}

// UpdateProject writes the editable fields of a project.
// raised, the backer rows and the creator are never written here.
func (r *Repository) UpdateProject(ctx context.Context, p *model.Project) error {
	query := `
		UPDATE projects
		SET title = $2, description = $3, category = $4, goal = $5, deadline = $6,
		    image_url = $7, risks = $8, faqs = $9, status = $10
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		p.ID,
		p.Title,
		p.Description,
		p.Category,
		p.Goal,
		p.Deadline,
		p.ImageURL,
		p.Risks,
		nonNilFAQs(p.FAQs),
		p.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	return notFoundIfEmpty(tag)
}

// DeleteProject removes the project row. Backer and update rows cascade.
func (r *Repository) DeleteProject(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return notFoundIfEmpty(tag)
}

// AppendBacker records a backing and increments raised in the same statement.
// The increment is applied in place so concurrent backings never lose an update.
func (r *Repository) AppendBacker(ctx context.Context, projectID string, b model.Backer) error {
	query := `
		WITH updated AS (
			UPDATE projects
			SET raised = raised + $3
			WHERE id = $1
			RETURNING id
		)
		INSERT INTO project_backers (project_id, user_id, amount, backed_at)
		SELECT id, $2, $3, $4 FROM updated
	`

	tag, err := r.db.Exec(ctx, query, projectID, b.UserID, b.Amount, b.Date)
	if err != nil {
		if isOutOfRange(err) {
			return store.ErrOutOfRange
		}
		return fmt.Errorf("failed to append backer: %w", err)
	}

	return notFoundIfEmpty(tag)
}

// ListBackers returns the project's backers with identities, oldest first.
func (r *Repository) ListBackers(ctx context.Context, projectID string) ([]model.Backer, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM projects WHERE id = $1)`, projectID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check project existence: %w", err)
	}
	if !exists {
		return nil, store.ErrNotFound
	}

	return r.backers(ctx, projectID)
}

// AppendUpdate stores a creator update for the project.
func (r *Repository) AppendUpdate(ctx context.Context, projectID string, u model.ProjectUpdate) error {
	query := `
		INSERT INTO project_updates (project_id, title, content, posted_at)
		SELECT id, $2, $3, $4 FROM projects WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, projectID, u.Title, u.Content, u.Date)
	if err != nil {
		return fmt.Errorf("failed to append project update: %w", err)
	}

	return notFoundIfEmpty(tag)
}

// CategoryCounts groups projects by category, largest first.
func (r *Repository) CategoryCounts(ctx context.Context) ([]model.CategoryCount, error) {
	query := `
		SELECT category, COUNT(*) AS n
		FROM projects
		GROUP BY category
		ORDER BY n DESC, category ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	defer rows.Close()

	counts := []model.CategoryCount{}
	for rows.Next() {
		var c model.CategoryCount
		if err := rows.Scan(&c.Name, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category counts: %w", err)
	}

	return counts, nil
}

// TrendingProjects ranks projects by backings made since the given time.
func (r *Repository) TrendingProjects(ctx context.Context, since time.Time, limit int) ([]*model.Project, error) {
	query := `SELECT ` + projectColumns + `
		FROM projects p
		JOIN users u ON u.id = p.creator_id
		JOIN (
			SELECT project_id, COUNT(*) AS recent
			FROM project_backers
			WHERE backed_at >= $1
			GROUP BY project_id
		) t ON t.project_id = p.id
		ORDER BY t.recent DESC, backer_count DESC, p.seq ASC
		LIMIT $2
	`

	projects, err := r.queryProjects(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list trending projects: %w", err)
	}

	return projects, nil
}

// TopFundedByCategory returns up to perCategory projects per category, best funded first.
func (r *Repository) TopFundedByCategory(ctx context.Context, perCategory int) ([]*model.Project, error) {
	query := `SELECT ` + projectColumns + `
		FROM (
			SELECT projects.*,
			       ROW_NUMBER() OVER (PARTITION BY category ORDER BY raised DESC, seq ASC) AS rn
			FROM projects
		) p
		JOIN users u ON u.id = p.creator_id
		WHERE p.rn <= $1
		ORDER BY p.category ASC, p.raised DESC, p.seq ASC
	`

	projects, err := r.queryProjects(ctx, query, perCategory)
	if err != nil {
		return nil, fmt.Errorf("failed to list featured projects: %w", err)
	}

	return projects, nil
}

// CountProjects returns the number of projects.
func (r *Repository) CountProjects(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM projects`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return n, nil
}

// TotalRaised sums raised across all projects.
func (r *Repository) TotalRaised(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(raised), 0) FROM projects`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to sum raised: %w", err)
	}
	return n, nil
}

func (r *Repository) backers(ctx context.Context, projectID string) ([]model.Backer, error) {
	query := `
		SELECT b.user_id, b.amount, b.backed_at, u.name, u.avatar
		FROM project_backers b
		JOIN users u ON u.id = b.user_id
		WHERE b.project_id = $1
		ORDER BY b.id ASC
	`

	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list backers: %w", err)
	}
	defer rows.Close()

	backers := []model.Backer{}
	for rows.Next() {
		var b model.Backer
		var name, avatar string
		if err := rows.Scan(&b.UserID, &b.Amount, &b.Date, &name, &avatar); err != nil {
			return nil, fmt.Errorf("failed to scan backer: %w", err)
		}
		b.User = &model.UserSummary{ID: b.UserID, Name: name, Avatar: avatar}
		backers = append(backers, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating backers: %w", err)
	}

	return backers, nil
}

func (r *Repository) updates(ctx context.Context, projectID string) ([]model.ProjectUpdate, error) {
	query := `
		SELECT title, content, posted_at
		FROM project_updates
		WHERE project_id = $1
		ORDER BY id ASC
	`

	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project updates: %w", err)
	}
	defer rows.Close()

	updates := []model.ProjectUpdate{}
	for rows.Next() {
		var u model.ProjectUpdate
		if err := rows.Scan(&u.Title, &u.Content, &u.Date); err != nil {
			return nil, fmt.Errorf("failed to scan project update: %w", err)
		}
		updates = append(updates, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project updates: %w", err)
	}

	return updates, nil
}

func (r *Repository) queryProjects(ctx context.Context, query string, args ...any) ([]*model.Project, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []*model.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}

	return projects, nil
}

// scanProject scans a projectColumns row. pgx.Rows satisfies pgx.Row.
func scanProject(row pgx.Row) (*model.Project, error) {
	var p model.Project
	var creatorName, creatorAvatar string
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Category,
		&p.Goal,
		&p.Raised,
		&p.Deadline,
		&p.ImageURL,
		&p.CreatorID,
		&p.FAQs,
		&p.Risks,
		&p.Status,
		&p.CreatedAt,
		&p.BackerCount,
		&creatorName,
		&creatorAvatar,
	)
	if err != nil {
		return nil, err
	}

	p.Creator = &model.UserSummary{ID: p.CreatorID, Name: creatorName, Avatar: creatorAvatar}
	if p.FAQs == nil {
		p.FAQs = []model.FAQ{}
	}
	return &p, nil
}

func nonNilFAQs(faqs []model.FAQ) []model.FAQ {
	if faqs == nil {
		return []model.FAQ{}
	}
	return faqs
}
