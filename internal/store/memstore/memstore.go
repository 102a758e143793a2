// Package memstore provides an in-memory store.Store.
// It backs the service and handler tests and can run the API without Postgres.
package memstore

import (
	"cmp"
	"context"
	"math"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fundhive/fundhive/internal/model"
	"github.com/fundhive/fundhive/internal/store"
)

type projectRow struct {
	seq int64
	p   model.Project
}

type userRow struct {
	seq int64
	u   model.User
}

type eventRow struct {
	seq int64
	e   model.Event
}

type collaborationRow struct {
	seq int64
	c   model.Collaboration
}

type state struct {
	seq            int64
	projects       map[string]*projectRow
	users          map[string]*userRow
	emails         map[string]string
	events         map[string]*eventRow
	collaborations map[string]*collaborationRow
}

func newState() *state {
	return &state{
		projects:       make(map[string]*projectRow),
		users:          make(map[string]*userRow),
		emails:         make(map[string]string),
		events:         make(map[string]*eventRow),
		collaborations: make(map[string]*collaborationRow),
	}
}

func (st *state) next() int64 {
	st.seq++
	return st.seq
}

func (st *state) clone() *state {
	c := newState()
	c.seq = st.seq
	for id, r := range st.projects {
		c.projects[id] = &projectRow{seq: r.seq, p: *copyProject(&r.p)}
	}
	for id, r := range st.users {
		c.users[id] = &userRow{seq: r.seq, u: *copyUser(&r.u)}
	}
	for email, id := range st.emails {
		c.emails[email] = id
	}
	for id, r := range st.events {
		c.events[id] = &eventRow{seq: r.seq, e: *copyEvent(&r.e)}
	}
	for id, r := range st.collaborations {
		c.collaborations[id] = &collaborationRow{seq: r.seq, c: *copyCollaboration(&r.c)}
	}
	return c
}

// Store is a mutex-guarded in-memory implementation of store.Store.
// Transactions hold the lock for their whole duration and restore a
// snapshot when the callback fails.
type Store struct {
	mu   *sync.Mutex
	st   *state
	inTx bool
}

var _ store.Store = (*Store)(nil)

// New creates an empty Store.
func New() *Store {
	return &Store{mu: &sync.Mutex{}, st: newState()}
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error {
	return nil
}

func (s *Store) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// InTx runs fn with exclusive access and rolls back on error, panic or
// cancellation of ctx.
func (s *Store) InTx(ctx context.Context, fn func(tx store.Store) error) (err error) {
	if s.inTx {
		return fn(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	snapshot := s.st.clone()
	defer func() {
		if p := recover(); p != nil {
			*s.st = *snapshot
			panic(p)
		}
		if err != nil {
			*s.st = *snapshot
		}
	}()

	tx := &Store{mu: s.mu, st: s.st, inTx: true}
	if err = fn(tx); err != nil {
		return err
	}
	return ctx.Err()
}

// ============================================================================
// Projects
// ============================================================================

// CreateProject stores a new project.
func (s *Store) CreateProject(ctx context.Context, p *model.Project) error {
	defer s.lock()()

	if _, ok := s.st.projects[p.ID]; ok {
		return store.ErrConflict
	}
	s.st.projects[p.ID] = &projectRow{seq: s.st.next(), p: *copyProject(p)}
	return nil
}

// GetProject returns the project with creator and backers resolved.
func (s *Store) GetProject(ctx context.Context, id string) (*model.Project, error) {
	defer s.lock()()

	row, ok := s.st.projects[id]
	if !ok {
		return nil, store.ErrNotFound
	}

	p := s.view(&row.p)
	for i := range p.Backers {
		p.Backers[i].User = s.summary(p.Backers[i].UserID)
	}
	return p, nil
}

// LockProject returns the project. Transactions already hold the store lock.
func (s *Store) LockProject(ctx context.Context, id string) (*model.Project, error) {
	return s.GetProject(ctx, id)
}

// ListProjects filters, sorts and pages projects. Backers are not included.
func (s *Store) ListProjects(ctx context.Context, q store.ProjectQuery) ([]*model.Project, int64, error) {
	defer s.lock()()

	search := strings.ToLower(q.Filter.Search)
	rows := make([]*projectRow, 0, len(s.st.projects))
	for _, r := range s.st.projects {
		if q.Filter.Category != "" && r.p.Category != q.Filter.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(r.p.Title), search) &&
			!strings.Contains(strings.ToLower(r.p.Description), search) {
			continue
		}
		rows = append(rows, r)
	}

	slices.SortFunc(rows, projectOrder(q.Sort))

	total := int64(len(rows))
	rows = pageOf(rows, q.Page)

	out := make([]*model.Project, 0, len(rows))
	for _, r := range rows {
		p := s.view(&r.p)
		p.Backers = nil
		out = append(out, p)
	}
	return out, total, nil
}

func projectOrder(sort model.ProjectSort) func(a, b *projectRow) int {
	switch sort {
	case model.SortPopular:
		return func(a, b *projectRow) int {
			return cmp.Or(cmp.Compare(len(b.p.Backers), len(a.p.Backers)), cmp.Compare(a.seq, b.seq))
		}
	case model.SortMostFunded:
		return func(a, b *projectRow) int {
			return cmp.Or(cmp.Compare(b.p.Raised, a.p.Raised), cmp.Compare(a.seq, b.seq))
		}
	case model.SortDeadlineSoonest:
		return func(a, b *projectRow) int {
			return cmp.Or(a.p.Deadline.Compare(b.p.Deadline), cmp.Compare(a.seq, b.seq))
		}
	default:
		return func(a, b *projectRow) int {
			return cmp.Or(b.p.CreatedAt.Compare(a.p.CreatedAt), cmp.Compare(b.seq, a.seq))
		}
	}
}

// UpdateProject overwrites the editable fields of a project.
// The ledger (raised, backers) and the creator are never touched.
func (s *Store) UpdateProject(ctx context.Context, p *model.Project) error {
	defer s.lock()()

	row, ok := s.st.projects[p.ID]
	if !ok {
		return store.ErrNotFound
	}
	row.p.Title = p.Title
	row.p.Description = p.Description
	row.p.Category = p.Category
	row.p.Goal = p.Goal
	row.p.Deadline = p.Deadline
	row.p.ImageURL = p.ImageURL
	row.p.Risks = p.Risks
	row.p.FAQs = cloneSlice(p.FAQs)
	row.p.Status = p.Status
	return nil
}

// DeleteProject removes the project document.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	defer s.lock()()

	if _, ok := s.st.projects[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.st.projects, id)
	return nil
}

// AppendBacker appends the backer and adds its amount to raised.
func (s *Store) AppendBacker(ctx context.Context, projectID string, b model.Backer) error {
	defer s.lock()()

	row, ok := s.st.projects[projectID]
	if !ok {
		return store.ErrNotFound
	}
	if b.Amount > math.MaxInt64-row.p.Raised {
		return store.ErrOutOfRange
	}
	b.User = nil
	row.p.Backers = append(row.p.Backers, b)
	row.p.Raised += b.Amount
	return nil
}

// ListBackers returns the project's backers with identities resolved.
func (s *Store) ListBackers(ctx context.Context, projectID string) ([]model.Backer, error) {
	defer s.lock()()

	row, ok := s.st.projects[projectID]
	if !ok {
		return nil, store.ErrNotFound
	}
	backers := cloneSlice(row.p.Backers)
	for i := range backers {
		backers[i].User = s.summary(backers[i].UserID)
	}
	return backers, nil
}

// AppendUpdate appends a creator update to the project.
func (s *Store) AppendUpdate(ctx context.Context, projectID string, u model.ProjectUpdate) error {
	defer s.lock()()

	row, ok := s.st.projects[projectID]
	if !ok {
		return store.ErrNotFound
	}
	row.p.Updates = append(row.p.Updates, u)
	return nil
}

// CategoryCounts groups projects by category, largest first.
func (s *Store) CategoryCounts(ctx context.Context) ([]model.CategoryCount, error) {
	defer s.lock()()

	counts := make(map[string]int64)
	for _, r := range s.st.projects {
		counts[r.p.Category]++
	}

	out := make([]model.CategoryCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, model.CategoryCount{Name: name, Count: n})
	}
	slices.SortFunc(out, func(a, b model.CategoryCount) int {
		return cmp.Or(cmp.Compare(b.Count, a.Count), strings.Compare(a.Name, b.Name))
	})
	return out, nil
}

// TrendingProjects returns projects backed since the given time, most recent backings first.
func (s *Store) TrendingProjects(ctx context.Context, since time.Time, limit int) ([]*model.Project, error) {
	defer s.lock()()

	type ranked struct {
		row    *projectRow
		recent int
	}
	var candidates []ranked
	for _, r := range s.st.projects {
		n := 0
		for _, b := range r.p.Backers {
			if !b.Date.Before(since) {
				n++
			}
		}
		if n > 0 {
			candidates = append(candidates, ranked{row: r, recent: n})
		}
	}
	slices.SortFunc(candidates, func(a, b ranked) int {
		return cmp.Or(
			cmp.Compare(b.recent, a.recent),
			cmp.Compare(len(b.row.p.Backers), len(a.row.p.Backers)),
			cmp.Compare(a.row.seq, b.row.seq),
		)
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	out := make([]*model.Project, 0, len(candidates))
	for _, c := range candidates {
		p := s.view(&c.row.p)
		p.Backers = nil
		out = append(out, p)
	}
	return out, nil
}

// TopFundedByCategory returns the best funded projects of each category.
func (s *Store) TopFundedByCategory(ctx context.Context, perCategory int) ([]*model.Project, error) {
	defer s.lock()()

	groups := make(map[string][]*projectRow)
	for _, r := range s.st.projects {
		groups[r.p.Category] = append(groups[r.p.Category], r)
	}

	categories := make([]string, 0, len(groups))
	for c := range groups {
		categories = append(categories, c)
	}
	slices.Sort(categories)

	var out []*model.Project
	for _, c := range categories {
		rows := groups[c]
		slices.SortFunc(rows, projectOrder(model.SortMostFunded))
		if len(rows) > perCategory {
			rows = rows[:perCategory]
		}
		for _, r := range rows {
			p := s.view(&r.p)
			p.Backers = nil
			out = append(out, p)
		}
	}
	return out, nil
}

// CountProjects returns the number of projects.
func (s *Store) CountProjects(ctx context.Context) (int64, error) {
	defer s.lock()()
	return int64(len(s.st.projects)), nil
}

// TotalRaised sums raised across all projects.
func (s *Store) TotalRaised(ctx context.Context) (int64, error) {
	defer s.lock()()

	var total int64
	for _, r := range s.st.projects {
		total += r.p.Raised
	}
	return total, nil
}

// ============================================================================
// Users
// ============================================================================

// CreateUser stores a new user. Emails are unique case-insensitively.
func (s *Store) CreateUser(ctx context.Context, u *model.User) error {
	defer s.lock()()

	email := model.NormalizeEmail(u.Email)
	if _, ok := s.st.emails[email]; ok {
		return store.ErrConflict
	}
	if _, ok := s.st.users[u.ID]; ok {
		return store.ErrConflict
	}

	row := &userRow{seq: s.st.next(), u: *copyUser(u)}
	row.u.Email = email
	s.st.users[u.ID] = row
	s.st.emails[email] = u.ID
	return nil
}

// GetUser returns a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*model.User, error) {
	defer s.lock()()

	row, ok := s.st.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return copyUser(&row.u), nil
}

// GetUserByEmail returns a user by normalized email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	defer s.lock()()

	id, ok := s.st.emails[model.NormalizeEmail(email)]
	if !ok {
		return nil, store.ErrNotFound
	}
	return copyUser(&s.st.users[id].u), nil
}

// AddCreatedProject adds the project to the user's created set.
func (s *Store) AddCreatedProject(ctx context.Context, userID, projectID string) error {
	return s.updateUser(userID, func(u *model.User) {
		u.CreatedProjects = addToSet(u.CreatedProjects, projectID)
	})
}

// RemoveCreatedProject removes the project from the user's created set.
func (s *Store) RemoveCreatedProject(ctx context.Context, userID, projectID string) error {
	return s.updateUser(userID, func(u *model.User) {
		u.CreatedProjects = removeFromSet(u.CreatedProjects, projectID)
	})
}

// AddBackedProject adds the project to the user's backed set.
func (s *Store) AddBackedProject(ctx context.Context, userID, projectID string) error {
	return s.updateUser(userID, func(u *model.User) {
		u.BackedProjects = addToSet(u.BackedProjects, projectID)
	})
}

// RemoveBackedProject removes the project from the user's backed set.
func (s *Store) RemoveBackedProject(ctx context.Context, userID, projectID string) error {
	return s.updateUser(userID, func(u *model.User) {
		u.BackedProjects = removeFromSet(u.BackedProjects, projectID)
	})
}

// AddSavedProject bookmarks the project for the user.
func (s *Store) AddSavedProject(ctx context.Context, userID, projectID string) error {
	return s.updateUser(userID, func(u *model.User) {
		u.SavedProjects = addToSet(u.SavedProjects, projectID)
	})
}

// RemoveSavedProject drops the bookmark.
func (s *Store) RemoveSavedProject(ctx context.Context, userID, projectID string) error {
	return s.updateUser(userID, func(u *model.User) {
		u.SavedProjects = removeFromSet(u.SavedProjects, projectID)
	})
}

// RemoveSavedProjectEverywhere drops the project from every user's bookmarks.
func (s *Store) RemoveSavedProjectEverywhere(ctx context.Context, projectID string) error {
	defer s.lock()()

	for _, r := range s.st.users {
		r.u.SavedProjects = removeFromSet(r.u.SavedProjects, projectID)
	}
	return nil
}

// AddContribution adds amount to the user's lifetime contribution total.
func (s *Store) AddContribution(ctx context.Context, userID string, amount int64) error {
	defer s.lock()()

	row, ok := s.st.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	if amount > math.MaxInt64-row.u.TotalContributed {
		return store.ErrOutOfRange
	}
	row.u.TotalContributed += amount
	return nil
}

// CountUsers returns the number of users.
func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	defer s.lock()()
	return int64(len(s.st.users)), nil
}

// RecentUsers returns the newest users first.
func (s *Store) RecentUsers(ctx context.Context, limit int) ([]*model.User, error) {
	defer s.lock()()

	rows := make([]*userRow, 0, len(s.st.users))
	for _, r := range s.st.users {
		rows = append(rows, r)
	}
	slices.SortFunc(rows, func(a, b *userRow) int {
		return cmp.Or(b.u.CreatedAt.Compare(a.u.CreatedAt), cmp.Compare(b.seq, a.seq))
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}

	out := make([]*model.User, 0, len(rows))
	for _, r := range rows {
		out = append(out, copyUser(&r.u))
	}
	return out, nil
}

func (s *Store) updateUser(id string, fn func(u *model.User)) error {
	defer s.lock()()

	row, ok := s.st.users[id]
	if !ok {
		return store.ErrNotFound
	}
	fn(&row.u)
	return nil
}

// ============================================================================
// Events
// ============================================================================

// CreateEvent stores a new event.
func (s *Store) CreateEvent(ctx context.Context, e *model.Event) error {
	defer s.lock()()

	if _, ok := s.st.events[e.ID]; ok {
		return store.ErrConflict
	}
	s.st.events[e.ID] = &eventRow{seq: s.st.next(), e: *copyEvent(e)}
	return nil
}

// GetEvent returns an event with its organizer resolved.
func (s *Store) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	defer s.lock()()

	row, ok := s.st.events[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	e := copyEvent(&row.e)
	e.Organizer = s.summary(e.OrganizerID)
	return e, nil
}

// ListEvents filters and pages events by start date.
func (s *Store) ListEvents(ctx context.Context, q store.EventQuery) ([]*model.Event, int64, error) {
	defer s.lock()()

	var rows []*eventRow
	for _, r := range s.st.events {
		if q.Category != "" && r.e.Category != q.Category {
			continue
		}
		if q.Status != "" && r.e.Status != q.Status {
			continue
		}
		rows = append(rows, r)
	}
	slices.SortFunc(rows, eventOrder)

	total := int64(len(rows))
	rows = pageOf(rows, q.Page)

	out := make([]*model.Event, 0, len(rows))
	for _, r := range rows {
		e := copyEvent(&r.e)
		e.Organizer = s.summary(e.OrganizerID)
		out = append(out, e)
	}
	return out, total, nil
}

// UpcomingEvents returns upcoming events starting after the given time.
func (s *Store) UpcomingEvents(ctx context.Context, after time.Time, limit int) ([]*model.Event, error) {
	defer s.lock()()

	var rows []*eventRow
	for _, r := range s.st.events {
		if r.e.Status == model.EventStatusUpcoming && r.e.StartDate.After(after) {
			rows = append(rows, r)
		}
	}
	slices.SortFunc(rows, eventOrder)
	if len(rows) > limit {
		rows = rows[:limit]
	}

	out := make([]*model.Event, 0, len(rows))
	for _, r := range rows {
		e := copyEvent(&r.e)
		e.Organizer = s.summary(e.OrganizerID)
		out = append(out, e)
	}
	return out, nil
}

func eventOrder(a, b *eventRow) int {
	return cmp.Or(a.e.StartDate.Compare(b.e.StartDate), cmp.Compare(a.seq, b.seq))
}

// UpdateEvent overwrites the editable fields of an event.
func (s *Store) UpdateEvent(ctx context.Context, e *model.Event) error {
	defer s.lock()()

	row, ok := s.st.events[e.ID]
	if !ok {
		return store.ErrNotFound
	}
	row.e.Title = e.Title
	row.e.Description = e.Description
	row.e.StartDate = e.StartDate
	row.e.EndDate = e.EndDate
	row.e.Location = e.Location
	row.e.ImageURL = e.ImageURL
	row.e.Category = e.Category
	row.e.IsVirtual = e.IsVirtual
	row.e.RegistrationLink = e.RegistrationLink
	row.e.RelatedProjects = cloneSlice(e.RelatedProjects)
	row.e.Status = e.Status
	return nil
}

// DeleteEvent removes an event.
func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	defer s.lock()()

	if _, ok := s.st.events[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.st.events, id)
	return nil
}

// AddAttendee registers the user for the event.
func (s *Store) AddAttendee(ctx context.Context, eventID, userID string) error {
	defer s.lock()()

	row, ok := s.st.events[eventID]
	if !ok {
		return store.ErrNotFound
	}
	row.e.Attendees = addToSet(row.e.Attendees, userID)
	return nil
}

// RemoveRelatedProject unlinks the project from every event.
func (s *Store) RemoveRelatedProject(ctx context.Context, projectID string) error {
	defer s.lock()()

	for _, r := range s.st.events {
		r.e.RelatedProjects = removeFromSet(r.e.RelatedProjects, projectID)
	}
	return nil
}

// CountEvents returns the number of events.
func (s *Store) CountEvents(ctx context.Context) (int64, error) {
	defer s.lock()()
	return int64(len(s.st.events)), nil
}

// ============================================================================
// Collaborations
// ============================================================================

// CreateCollaboration stores a new collaboration.
func (s *Store) CreateCollaboration(ctx context.Context, c *model.Collaboration) error {
	defer s.lock()()

	if _, ok := s.st.collaborations[c.ID]; ok {
		return store.ErrConflict
	}
	s.st.collaborations[c.ID] = &collaborationRow{seq: s.st.next(), c: *copyCollaboration(c)}
	return nil
}

// GetCollaboration returns a collaboration by ID.
func (s *Store) GetCollaboration(ctx context.Context, id string) (*model.Collaboration, error) {
	defer s.lock()()

	row, ok := s.st.collaborations[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return copyCollaboration(&row.c), nil
}

// ListCollaborations filters and pages collaborations by start date.
func (s *Store) ListCollaborations(ctx context.Context, q store.CollaborationQuery) ([]*model.Collaboration, int64, error) {
	defer s.lock()()

	var rows []*collaborationRow
	for _, r := range s.st.collaborations {
		if q.Status != "" && r.c.Status != q.Status {
			continue
		}
		rows = append(rows, r)
	}
	slices.SortFunc(rows, collaborationOrder)

	total := int64(len(rows))
	rows = pageOf(rows, q.Page)

	out := make([]*model.Collaboration, 0, len(rows))
	for _, r := range rows {
		out = append(out, copyCollaboration(&r.c))
	}
	return out, total, nil
}

// ActiveCollaborations returns active collaborations running at the given time.
func (s *Store) ActiveCollaborations(ctx context.Context, at time.Time, limit int) ([]*model.Collaboration, error) {
	defer s.lock()()

	var rows []*collaborationRow
	for _, r := range s.st.collaborations {
		if r.c.Status != model.CollaborationStatusActive {
			continue
		}
		if r.c.StartDate.After(at) || r.c.EndDate.Before(at) {
			continue
		}
		rows = append(rows, r)
	}
	slices.SortFunc(rows, collaborationOrder)
	if len(rows) > limit {
		rows = rows[:limit]
	}

	out := make([]*model.Collaboration, 0, len(rows))
	for _, r := range rows {
		out = append(out, copyCollaboration(&r.c))
	}
	return out, nil
}

func collaborationOrder(a, b *collaborationRow) int {
	return cmp.Or(a.c.StartDate.Compare(b.c.StartDate), cmp.Compare(a.seq, b.seq))
}

// UpdateCollaboration overwrites the editable fields of a collaboration.
func (s *Store) UpdateCollaboration(ctx context.Context, c *model.Collaboration) error {
	defer s.lock()()

	row, ok := s.st.collaborations[c.ID]
	if !ok {
		return store.ErrNotFound
	}
	row.c.Title = c.Title
	row.c.Description = c.Description
	row.c.StartDate = c.StartDate
	row.c.EndDate = c.EndDate
	row.c.ImageURL = c.ImageURL
	row.c.Partners = cloneSlice(c.Partners)
	row.c.Projects = cloneSlice(c.Projects)
	row.c.Status = c.Status
	return nil
}

// DeleteCollaboration removes a collaboration.
func (s *Store) DeleteCollaboration(ctx context.Context, id string) error {
	defer s.lock()()

	if _, ok := s.st.collaborations[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.st.collaborations, id)
	return nil
}

// RemoveCollaborationProject unlinks the project from every collaboration.
func (s *Store) RemoveCollaborationProject(ctx context.Context, projectID string) error {
	defer s.lock()()

	for _, r := range s.st.collaborations {
		r.c.Projects = removeFromSet(r.c.Projects, projectID)
	}
	return nil
}

// CountCollaborations returns the number of collaborations.
func (s *Store) CountCollaborations(ctx context.Context) (int64, error) {
	defer s.lock()()
	return int64(len(s.st.collaborations)), nil
}

// ============================================================================
// Helpers
// ============================================================================

// view copies a stored project and fills in the read-only fields.
// Callers must hold the lock.
func (s *Store) view(stored *model.Project) *model.Project {
	p := copyProject(stored)
	p.Creator = s.summary(p.CreatorID)
	p.BackerCount = len(p.Backers)
	return p
}

func (s *Store) summary(userID string) *model.UserSummary {
	row, ok := s.st.users[userID]
	if !ok {
		return nil
	}
	return row.u.Summary()
}

func pageOf[T any](rows []T, page model.Page) []T {
	if page.Size <= 0 {
		return rows
	}
	offset := page.Offset()
	if offset >= len(rows) {
		return nil
	}
	end := min(offset+page.Size, len(rows))
	return rows[offset:end]
}

func addToSet(set []string, id string) []string {
	if slices.Contains(set, id) {
		return set
	}
	return append(set, id)
}

func removeFromSet(set []string, id string) []string {
	return slices.DeleteFunc(set, func(v string) bool { return v == id })
}

func cloneSlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func copyProject(p *model.Project) *model.Project {
	c := *p
	c.Backers = cloneSlice(p.Backers)
	c.Updates = cloneSlice(p.Updates)
	c.FAQs = cloneSlice(p.FAQs)
	return &c
}

func copyUser(u *model.User) *model.User {
	c := *u
	c.CreatedProjects = cloneSlice(u.CreatedProjects)
	c.BackedProjects = cloneSlice(u.BackedProjects)
	c.SavedProjects = cloneSlice(u.SavedProjects)
	return &c
}

func copyEvent(e *model.Event) *model.Event {
	c := *e
	c.Attendees = cloneSlice(e.Attendees)
	c.RelatedProjects = cloneSlice(e.RelatedProjects)
	return &c
}

func copyCollaboration(c *model.Collaboration) *model.Collaboration {
	out := *c
	out.Partners = cloneSlice(c.Partners)
	out.Projects = cloneSlice(c.Projects)
	return &out
}
