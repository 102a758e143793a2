package service

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fundhive/fundhive/internal/model"
	"github.com/fundhive/fundhive/internal/store"
)

func TestCreateProject_Defaults(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedUser(t)

	p := env.seedProject(t, creator, func(in *CreateProjectInput) {
		in.FAQs = []model.FAQ{{Question: "When?", Answer: "Spring"}}
	})

	assert.NotEmpty(t, p.ID)
	assert.Zero(t, p.Raised)
	assert.Empty(t, p.Backers)
	assert.Empty(t, p.Updates)
	assert.Len(t, p.FAQs, 1)
	assert.Equal(t, model.ProjectStatusActive, p.Status)
	assert.Equal(t, creator.ID, p.CreatorID)
	require.NotNil(t, p.Creator)
	assert.Equal(t, creator.Name, p.Creator.Name)

	assert.Equal(t, []string{p.ID}, env.user(t, creator.ID).CreatedProjects)
	assert.Equal(t, uint64(1), env.metrics.Snapshot().ProjectsCreated)
	assert.Equal(t, 1, env.categories.invalidates)
}

func TestCreateProject_Validation(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedUser(t)

	tests := []struct {
		name   string
		mutate func(*CreateProjectInput)
		field  string
	}{
		{"missing_title", func(in *CreateProjectInput) { in.Title = "  " }, "title"},
		{"missing_description", func(in *CreateProjectInput) { in.Description = "" }, "description"},
		{"missing_category", func(in *CreateProjectInput) { in.Category = "" }, "category"},
		{"zero_goal", func(in *CreateProjectInput) { in.Goal = 0 }, "goal"},
		{"negative_goal", func(in *CreateProjectInput) { in.Goal = -5 }, "goal"},
		{"missing_deadline", func(in *CreateProjectInput) { in.Deadline = time.Time{} }, "deadline"},
		{"missing_image", func(in *CreateProjectInput) { in.ImageURL = "" }, "imageUrl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := CreateProjectInput{
				CreatorID:   creator.ID,
				Title:       "Title",
				Description: "Description",
				Category:    "Art",
				Goal:        100,
				Deadline:    time.Now().Add(time.Hour),
				ImageURL:    "https://example.com/a.jpg",
			}
			tt.mutate(&input)

			_, err := env.projects.Create(context.Background(), input)
			require.ErrorIs(t, err, ErrValidation)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}

	n, err := env.store.CountProjects(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCreateProject_UnknownCreatorLeavesNothing(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.projects.Create(context.Background(), CreateProjectInput{
		CreatorID:   "ghost",
		Title:       "Orphan",
		Description: "Nobody owns this",
		Category:    "Art",
		Goal:        10,
		Deadline:    time.Now().Add(time.Hour),
		ImageURL:    "https://example.com/a.jpg",
	})
	require.ErrorIs(t, err, ErrUserNotFound)

	n, err := env.store.CountProjects(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCreateProject_LinkFailureRollsBack(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedUser(t)

	faulty := &faultyStore{Store: env.store, failAddCreated: errInjected}
	svc := NewProjectService(faulty, nil, DefaultPaging, nil, discardLogger())

	_, err := svc.Create(context.Background(), CreateProjectInput{
		CreatorID:   creator.ID,
		Title:       "T",
		Description: "D",
		Category:    "Art",
		Goal:        10,
		Deadline:    time.Now().Add(time.Hour),
		ImageURL:    "https://example.com/a.jpg",
	})
	require.ErrorIs(t, err, errInjected)

	n, err := env.store.CountProjects(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDeleteProject_NonCreatorForbidden(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedUser(t)
	stranger := env.seedUser(t)
	project := env.seedProject(t, creator, nil)

	err := env.projects.Delete(context.Background(), project.ID, stranger.ID)
	require.ErrorIs(t, err, ErrForbidden)

	_, err = env.projects.Get(context.Background(), project.ID)
	require.NoError(t, err, "project must still be retrievable")
	assert.Equal(t, []string{project.ID}, env.user(t, creator.ID).CreatedProjects)
}

func TestDeleteProject_Unauthenticated(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedUser(t)
	project := env.seedProject(t, creator, nil)

	require.ErrorIs(t, env.projects.Delete(context.Background(), project.ID, ""), ErrUnauthorized)
}

func TestDeleteProject_NotFound(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t)

	require.ErrorIs(t, env.projects.Delete(context.Background(), "missing", user.ID), ErrProjectNotFound)
}

func seedReferences(t *testing.T, env *testEnv, creator *model.User, projectID string) (backers []*model.User, saver *model.User, eventID, collabID string) {
	t.Helper()
	ctx := context.Background()

	backers = []*model.User{env.seedUser(t), env.seedUser(t)}
	for _, b := range backers {
		for i := 0; i < 2; i++ {
			_, err := env.ledger.Back(ctx, BackInput{ProjectID: projectID, BackerID: b.ID, Amount: 10})
			require.NoError(t, err)
		}
	}

	saver = env.seedUser(t)
	require.NoError(t, env.projects.Save(ctx, projectID, saver.ID))

	now := time.Now().UTC()
	event := &model.Event{
		ID: "evt-" + projectID, Title: "Demo day", Description: "d", StartDate: now.Add(time.Hour),
		EndDate: now.Add(2 * time.Hour), Location: "Hall", ImageURL: "https://example.com/e.jpg",
		Category: "Tech", OrganizerID: creator.ID, Attendees: []string{},
		RelatedProjects: []string{projectID, "other"}, Status: model.EventStatusUpcoming, CreatedAt: now,
	}
	require.NoError(t, env.store.CreateEvent(ctx, event))

	collab := &model.Collaboration{
		ID: "col-" + projectID, Title: "Joint", Description: "d", StartDate: now, EndDate: now.Add(time.Hour),
		ImageURL: "https://example.com/c.jpg", Partners: []model.Partner{}, Projects: []string{"other", projectID},
		Status: model.CollaborationStatusActive, CreatedBy: creator.ID, CreatedAt: now,
	}
	require.NoError(t, env.store.CreateCollaboration(ctx, collab))

	return backers, saver, event.ID, collab.ID
}

func TestDeleteProject_Cascade(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := env.seedUser(t)
	project := env.seedProject(t, creator, nil)
	backers, saver, eventID, collabID := seedReferences(t, env, creator, project.ID)

	require.NoError(t, env.projects.Delete(ctx, project.ID, creator.ID))

	_, err := env.projects.Get(ctx, project.ID)
	require.ErrorIs(t, err, ErrProjectNotFound)

	assert.NotContains(t, env.user(t, creator.ID).CreatedProjects, project.ID)
	for _, b := range backers {
		u := env.user(t, b.ID)
		assert.NotContains(t, u.BackedProjects, project.ID)
		assert.Equal(t, int64(20), u.TotalContributed, "contribution history is kept")
	}
	assert.NotContains(t, env.user(t, saver.ID).SavedProjects, project.ID)

	event, err := env.store.GetEvent(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, []string{"other"}, event.RelatedProjects)

	collab, err := env.store.GetCollaboration(ctx, collabID)
	require.NoError(t, err)
	assert.Equal(t, []string{"other"}, collab.Projects)

	assert.Equal(t, uint64(1), env.metrics.Snapshot().ProjectsDeleted)
}

func TestDeleteProject_FailureKeepsEverything(t *testing.T) {
	tests := []struct {
		name  string
		store func(store.Store) *faultyStore
	}{
		{"bookmarks", func(s store.Store) *faultyStore { return &faultyStore{Store: s, failRemoveSaved: errInjected} }},
		{"document", func(s store.Store) *faultyStore { return &faultyStore{Store: s, failDeleteProject: errInjected} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			ctx := context.Background()
			creator := env.seedUser(t)
			project := env.seedProject(t, creator, nil)
			backers, saver, _, _ := seedReferences(t, env, creator, project.ID)

			svc := NewProjectService(tt.store(env.store), nil, DefaultPaging, nil, discardLogger())
			require.ErrorIs(t, svc.Delete(ctx, project.ID, creator.ID), errInjected)

			got, err := env.projects.Get(ctx, project.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(40), got.Raised)
			assert.Contains(t, env.user(t, creator.ID).CreatedProjects, project.ID)
			for _, b := range backers {
				assert.Contains(t, env.user(t, b.ID).BackedProjects, project.ID)
			}
			assert.Contains(t, env.user(t, saver.ID).SavedProjects, project.ID)
		})
	}
}

func TestUpdateProject_CreatorOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := env.seedUser(t)
	stranger := env.seedUser(t)
	project := env.seedProject(t, creator, nil)

	title := "Brighter Lanterns"
	_, err := env.projects.Update(ctx, UpdateProjectInput{ID: project.ID, RequesterID: stranger.ID, Patch: model.ProjectPatch{Title: &title}})
	require.ErrorIs(t, err, ErrForbidden)

	got, err := env.projects.Update(ctx, UpdateProjectInput{ID: project.ID, RequesterID: creator.ID, Patch: model.ProjectPatch{Title: &title}})
	require.NoError(t, err)
	assert.Equal(t, title, got.Title)
	assert.Equal(t, project.Description, got.Description, "absent fields are untouched")
	assert.Equal(t, uint64(1), env.metrics.Snapshot().ProjectsUpdated)
}

func TestUpdateProject_ConcurrentAdminChangeIsKept(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := env.seedUser(t)
	project := env.seedProject(t, creator, nil)

	paused := &pausingStore{Store: env.store, reached: make(chan struct{}), release: make(chan struct{})}
	svc := NewProjectService(paused, nil, DefaultPaging, nil, discardLogger())

	title := "Brighter Lanterns"
	creatorDone := make(chan error, 1)
	go func() {
		_, err := svc.Update(ctx, UpdateProjectInput{ID: project.ID, RequesterID: creator.ID, Patch: model.ProjectPatch{Title: &title}})
		creatorDone <- err
	}()
	<-paused.reached

	funded := model.ProjectStatusFunded
	adminDone := make(chan error, 1)
	go func() {
		_, err := env.admin.UpdateProject(ctx, project.ID, "admin-1", model.ProjectPatch{Status: &funded})
		adminDone <- err
	}()

	select {
	case err := <-adminDone:
		t.Fatalf("admin update committed while the creator held the row: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	close(paused.release)
	require.NoError(t, <-creatorDone)
	require.NoError(t, <-adminDone)

	got, err := env.projects.Get(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, title, got.Title)
	assert.Equal(t, model.ProjectStatusFunded, got.Status)
}

func TestUpdateProject_RejectsBlankFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := env.seedUser(t)
	project := env.seedProject(t, creator, nil)

	blank := "   "
	patches := map[string]model.ProjectPatch{
		"title":       {Title: &blank},
		"description": {Description: &blank},
		"category":    {Category: &blank},
		"imageUrl":    {ImageURL: &blank},
	}
	for field, patch := range patches {
		_, err := env.projects.Update(ctx, UpdateProjectInput{ID: project.ID, RequesterID: creator.ID, Patch: patch})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, field)
		assert.Equal(t, []string{field}, verr.Fields)
	}

	got, err := env.projects.Get(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, project.Description, got.Description)
}

func TestUpdateProject_StatusIsAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := env.seedUser(t)
	project := env.seedProject(t, creator, nil)

	funded := model.ProjectStatusFunded
	_, err := env.projects.Update(ctx, UpdateProjectInput{ID: project.ID, RequesterID: creator.ID, Patch: model.ProjectPatch{Status: &funded}})
	require.ErrorIs(t, err, ErrForbidden)

	got, err := env.admin.UpdateProject(ctx, project.ID, "admin-1", model.ProjectPatch{Status: &funded})
	require.NoError(t, err)
	assert.Equal(t, model.ProjectStatusFunded, got.Status)

	bogus := model.ProjectStatus("archived")
	_, err = env.admin.UpdateProject(ctx, project.ID, "admin-1", model.ProjectPatch{Status: &bogus})
	require.ErrorIs(t, err, ErrValidation)
}

func TestUpdateProject_RejectsInvalidGoal(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedUser(t)
	project := env.seedProject(t, creator, nil)

	zero := int64(0)
	_, err := env.projects.Update(context.Background(), UpdateProjectInput{ID: project.ID, RequesterID: creator.ID, Patch: model.ProjectPatch{Goal: &zero}})
	require.ErrorIs(t, err, ErrValidation)
}

func TestUpdateProject_PreservesLedger(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := env.seedUser(t)
	backer := env.seedUser(t)
	project := env.seedProject(t, creator, nil)

	_, err := env.ledger.Back(ctx, BackInput{ProjectID: project.ID, BackerID: backer.ID, Amount: 300})
	require.NoError(t, err)

	goal := int64(600)
	got, err := env.projects.Update(ctx, UpdateProjectInput{ID: project.ID, RequesterID: creator.ID, Patch: model.ProjectPatch{Goal: &goal}})
	require.NoError(t, err)
	assert.Equal(t, int64(300), got.Raised)
	assert.Len(t, got.Backers, 1)
	assert.Equal(t, int64(50), got.PercentFunded())
}

func TestUpdateProject_CategoryChangeInvalidatesCache(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedUser(t)
	project := env.seedProject(t, creator, nil)
	before := env.categories.invalidates

	title := "Same category"
	_, err := env.projects.Update(context.Background(), UpdateProjectInput{ID: project.ID, RequesterID: creator.ID, Patch: model.ProjectPatch{Title: &title}})
	require.NoError(t, err)
	assert.Equal(t, before, env.categories.invalidates)

	category := "Design"
	_, err = env.projects.Update(context.Background(), UpdateProjectInput{ID: project.ID, RequesterID: creator.ID, Patch: model.ProjectPatch{Category: &category}})
	require.NoError(t, err)
	assert.Equal(t, before+1, env.categories.invalidates)
}

func TestListProjects_SearchIsCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedUser(t)

	match := env.seedProject(t, creator, func(in *CreateProjectInput) {
		in.Title = "Rooftop beds"
		in.Description = "A Garden above the city"
	})
	env.seedProject(t, creator, func(in *CreateProjectInput) {
		in.Title = "Bike repair"
		in.Description = "Tools for everyone"
	})

	list, err := env.projects.List(context.Background(), ListProjectsInput{Search: "garden"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, match.ID, list.Items[0].ID)
	assert.Equal(t, int64(1), list.Total)
}

func TestListProjects_DeadlineSoonestIsStable(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedUser(t)
	base := time.Now().Add(48 * time.Hour).Truncate(time.Second)

	deadlines := []time.Time{base.Add(time.Hour), base, base, base.Add(-time.Hour)}
	ids := make([]string, len(deadlines))
	for i, d := range deadlines {
		ids[i] = env.seedProject(t, creator, func(in *CreateProjectInput) { in.Deadline = d }).ID
	}

	list, err := env.projects.List(context.Background(), ListProjectsInput{Sort: "deadlineSoonest"})
	require.NoError(t, err)
	require.Len(t, list.Items, 4)

	got := make([]string, len(list.Items))
	for i, p := range list.Items {
		got[i] = p.ID
	}
	assert.Equal(t, []string{ids[3], ids[1], ids[2], ids[0]}, got)
}

func TestListProjects_SortAliases(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := env.seedUser(t)
	backer := env.seedUser(t)

	low := env.seedProject(t, creator, nil)
	high := env.seedProject(t, creator, nil)
	_, err := env.ledger.Back(ctx, BackInput{ProjectID: high.ID, BackerID: backer.ID, Amount: 90})
	require.NoError(t, err)
	_, err = env.ledger.Back(ctx, BackInput{ProjectID: low.ID, BackerID: backer.ID, Amount: 5})
	require.NoError(t, err)
	_, err = env.ledger.Back(ctx, BackInput{ProjectID: low.ID, BackerID: backer.ID, Amount: 5})
	require.NoError(t, err)

	for _, sort := range []string{"mostFunded", "funded"} {
		list, err := env.projects.List(ctx, ListProjectsInput{Sort: sort})
		require.NoError(t, err)
		assert.Equal(t, high.ID, list.Items[0].ID, sort)
	}

	list, err := env.projects.List(ctx, ListProjectsInput{Sort: "popular"})
	require.NoError(t, err)
	assert.Equal(t, low.ID, list.Items[0].ID)
	assert.Equal(t, 2, list.Items[0].BackerCount)
}

func TestListProjects_Pagination(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedUser(t)
	for i := 0; i < 25; i++ {
		env.seedProject(t, creator, func(in *CreateProjectInput) { in.Title = fmt.Sprintf("Project %02d", i) })
	}

	tests := []struct {
		page, size int
		wantItems  int
		wantPages  int64
		wantPage   int
	}{
		{page: 1, size: 10, wantItems: 10, wantPages: 3, wantPage: 1},
		{page: 3, size: 10, wantItems: 5, wantPages: 3, wantPage: 3},
		{page: 4, size: 10, wantItems: 0, wantPages: 3, wantPage: 4},
		{page: 0, size: 0, wantItems: 12, wantPages: 3, wantPage: 1},
		{page: 1, size: 500, wantItems: 25, wantPages: 1, wantPage: 1},
		{page: math.MaxInt/10 + 7, size: 50, wantItems: 0, wantPages: 1, wantPage: math.MaxInt/10 + 7},
		{page: math.MaxInt, size: 10, wantItems: 0, wantPages: 3, wantPage: math.MaxInt},
	}

	for _, tt := range tests {
		list, err := env.projects.List(context.Background(), ListProjectsInput{Page: tt.page, PageSize: tt.size})
		require.NoError(t, err)
		assert.Len(t, list.Items, tt.wantItems)
		assert.Equal(t, int64(25), list.Total)
		assert.Equal(t, tt.wantPages, list.Pages)
		assert.Equal(t, tt.wantPage, list.Page)
	}
}

func TestListProjects_Empty(t *testing.T) {
	env := newTestEnv(t)

	list, err := env.projects.List(context.Background(), ListProjectsInput{})
	require.NoError(t, err)
	assert.NotNil(t, list.Items)
	assert.Empty(t, list.Items)
	assert.Zero(t, list.Total)
	assert.Zero(t, list.Pages)
}

func TestByCategory(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedUser(t)
	art := env.seedProject(t, creator, func(in *CreateProjectInput) { in.Category = "Art" })
	env.seedProject(t, creator, func(in *CreateProjectInput) { in.Category = "Games" })

	list, err := env.projects.ByCategory(context.Background(), "Art", 1, 10)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, art.ID, list.Items[0].ID)

	_, err = env.projects.ByCategory(context.Background(), " ", 1, 10)
	require.ErrorIs(t, err, ErrValidation)
}

func TestTrending(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := env.seedUser(t)
	backer := env.seedUser(t)

	quiet := env.seedProject(t, creator, nil)
	busy := env.seedProject(t, creator, nil)
	env.seedProject(t, creator, nil)

	for i := 0; i < 3; i++ {
		_, err := env.ledger.Back(ctx, BackInput{ProjectID: busy.ID, BackerID: backer.ID, Amount: 1})
		require.NoError(t, err)
	}
	_, err := env.ledger.Back(ctx, BackInput{ProjectID: quiet.ID, BackerID: backer.ID, Amount: 1})
	require.NoError(t, err)

	trending, err := env.projects.Trending(ctx)
	require.NoError(t, err)
	require.Len(t, trending, 2)
	assert.Equal(t, busy.ID, trending[0].ID)
	assert.Equal(t, quiet.ID, trending[1].ID)

	env.projects.now = func() time.Time { return time.Now().Add(8 * 24 * time.Hour) }
	trending, err = env.projects.Trending(ctx)
	require.NoError(t, err)
	assert.Empty(t, trending)
}

func TestSaveProject_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := env.seedUser(t)
	user := env.seedUser(t)
	project := env.seedProject(t, creator, nil)

	require.NoError(t, env.projects.Save(ctx, project.ID, user.ID))
	require.NoError(t, env.projects.Save(ctx, project.ID, user.ID))
	assert.Equal(t, []string{project.ID}, env.user(t, user.ID).SavedProjects)

	require.NoError(t, env.projects.Unsave(ctx, project.ID, user.ID))
	require.NoError(t, env.projects.Unsave(ctx, project.ID, user.ID))
	assert.Empty(t, env.user(t, user.ID).SavedProjects)

	require.ErrorIs(t, env.projects.Save(ctx, "missing", user.ID), ErrProjectNotFound)
}

func TestPostUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := env.seedUser(t)
	stranger := env.seedUser(t)
	project := env.seedProject(t, creator, nil)

	_, err := env.projects.PostUpdate(ctx, PostUpdateInput{ProjectID: project.ID, RequesterID: stranger.ID, Title: "Hi", Content: "News"})
	require.ErrorIs(t, err, ErrForbidden)

	_, err = env.projects.PostUpdate(ctx, PostUpdateInput{ProjectID: project.ID, RequesterID: creator.ID, Title: "", Content: "News"})
	require.ErrorIs(t, err, ErrValidation)

	got, err := env.projects.PostUpdate(ctx, PostUpdateInput{ProjectID: project.ID, RequesterID: creator.ID, Title: "Shipped", Content: "First batch out"})
	require.NoError(t, err)
	require.Len(t, got.Updates, 1)
	assert.Equal(t, "Shipped", got.Updates[0].Title)
}

func TestBackers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := env.seedUser(t)
	backer := env.seedUser(t)
	project := env.seedProject(t, creator, nil)

	_, err := env.ledger.Back(ctx, BackInput{ProjectID: project.ID, BackerID: backer.ID, Amount: 12})
	require.NoError(t, err)

	backers, err := env.projects.Backers(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, backers, 1)
	require.NotNil(t, backers[0].User)
	assert.Equal(t, backer.ID, backers[0].User.ID)

	_, err = env.projects.Backers(ctx, "missing")
	require.ErrorIs(t, err, ErrProjectNotFound)
}
