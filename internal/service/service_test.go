package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fundhive/fundhive/internal/cache"
	"github.com/fundhive/fundhive/internal/metrics"
	"github.com/fundhive/fundhive/internal/model"
	"github.com/fundhive/fundhive/internal/store"
	"github.com/fundhive/fundhive/internal/store/memstore"
	"github.com/fundhive/fundhive/internal/testutil"
)

type testEnv struct {
	store      *memstore.Store
	metrics    *metrics.InMemoryRecorder
	categories *fakeCategoryCache
	ledger     *LedgerService
	projects   *ProjectService
	admin      *AdminService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st := memstore.New()
	rec := metrics.NewInMemory()
	cc := &fakeCategoryCache{}
	logger := discardLogger()

	return &testEnv{
		store:      st,
		metrics:    rec,
		categories: cc,
		ledger:     NewLedgerService(st, rec, logger),
		projects:   NewProjectService(st, cc, Paging{DefaultSize: 12, MaxSize: 50}, rec, logger),
		admin:      NewAdminService(st, cc, rec, logger),
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (e *testEnv) seedUser(t *testing.T) *model.User {
	t.Helper()
	u := testutil.NewTestUser(t)
	require.NoError(t, e.store.CreateUser(context.Background(), u))
	return u
}

func (e *testEnv) seedProject(t *testing.T, creator *model.User, mutate func(*CreateProjectInput)) *model.Project {
	t.Helper()
	input := CreateProjectInput{
		CreatorID:   creator.ID,
		Title:       "Solar Lanterns",
		Description: "Affordable lanterns for rural schools",
		Category:    "Technology",
		Goal:        1000,
		Deadline:    time.Now().Add(30 * 24 * time.Hour),
		ImageURL:    "https://example.com/lantern.jpg",
	}
	if mutate != nil {
		mutate(&input)
	}
	p, err := e.projects.Create(context.Background(), input)
	require.NoError(t, err)
	return p
}

func (e *testEnv) user(t *testing.T, id string) *model.User {
	t.Helper()
	u, err := e.store.GetUser(context.Background(), id)
	require.NoError(t, err)
	return u
}

// fakeCategoryCache is an in-process CategoryCache.
type fakeCategoryCache struct {
	mu          sync.Mutex
	counts      []model.CategoryCount
	cached      bool
	getErr      error
	sets        int
	invalidates int
}

func (f *fakeCategoryCache) GetCategoryCounts(ctx context.Context) ([]model.CategoryCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	if !f.cached {
		return nil, cache.ErrCacheMiss
	}
	return f.counts, nil
}

func (f *fakeCategoryCache) SetCategoryCounts(ctx context.Context, counts []model.CategoryCount, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts = counts
	f.cached = true
	f.sets++
	return nil
}

func (f *fakeCategoryCache) InvalidateCategoryCounts(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts = nil
	f.cached = false
	f.invalidates++
	return nil
}

// faultyStore fails selected operations, including inside transactions.
type faultyStore struct {
	store.Store
	failAddBacked     error
	failRemoveSaved   error
	failDeleteProject error
	failAddCreated    error
}

func (f *faultyStore) InTx(ctx context.Context, fn func(tx store.Store) error) error {
	return f.Store.InTx(ctx, func(tx store.Store) error {
		return fn(&faultyStore{
			Store:             tx,
			failAddBacked:     f.failAddBacked,
			failRemoveSaved:   f.failRemoveSaved,
			failDeleteProject: f.failDeleteProject,
			failAddCreated:    f.failAddCreated,
		})
	})
}

func (f *faultyStore) AddBackedProject(ctx context.Context, userID, projectID string) error {
	if f.failAddBacked != nil {
		return f.failAddBacked
	}
	return f.Store.AddBackedProject(ctx, userID, projectID)
}

func (f *faultyStore) RemoveSavedProjectEverywhere(ctx context.Context, projectID string) error {
	if f.failRemoveSaved != nil {
		return f.failRemoveSaved
	}
	return f.Store.RemoveSavedProjectEverywhere(ctx, projectID)
}

func (f *faultyStore) DeleteProject(ctx context.Context, id string) error {
	if f.failDeleteProject != nil {
		return f.failDeleteProject
	}
	return f.Store.DeleteProject(ctx, id)
}

func (f *faultyStore) AddCreatedProject(ctx context.Context, userID, projectID string) error {
	if f.failAddCreated != nil {
		return f.failAddCreated
	}
	return f.Store.AddCreatedProject(ctx, userID, projectID)
}

var errInjected = errors.New("injected failure")

// pausingStore blocks UpdateProject inside a transaction until release is closed.
type pausingStore struct {
	store.Store
	reached chan struct{}
	release chan struct{}
}

func (p *pausingStore) InTx(ctx context.Context, fn func(tx store.Store) error) error {
	return p.Store.InTx(ctx, func(tx store.Store) error {
		return fn(&pausingStore{Store: tx, reached: p.reached, release: p.release})
	})
}

func (p *pausingStore) UpdateProject(ctx context.Context, project *model.Project) error {
	close(p.reached)
	<-p.release
	return p.Store.UpdateProject(ctx, project)
}
