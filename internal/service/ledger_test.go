package service

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBack_SameUserTwice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	creator := env.seedUser(t)
	backer := env.seedUser(t)
	project := env.seedProject(t, creator, nil)

	for i := 0; i < 2; i++ {
		_, err := env.ledger.Back(ctx, BackInput{ProjectID: project.ID, BackerID: backer.ID, Amount: 250})
		require.NoError(t, err)
	}

	got, err := env.projects.Get(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(500), got.Raised)
	assert.Len(t, got.Backers, 2)
	assert.Equal(t, 2, got.BackerCount)
	assert.Equal(t, int64(50), got.PercentFunded())

	u := env.user(t, backer.ID)
	count := 0
	for _, id := range u.BackedProjects {
		if id == project.ID {
			count++
		}
	}
	assert.Equal(t, 1, count, "backedProjects must hold the project once")
	assert.Equal(t, int64(500), u.TotalContributed)
}

func TestBack_ReturnsResolvedBackers(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedUser(t)
	backer := env.seedUser(t)
	project := env.seedProject(t, creator, nil)

	got, err := env.ledger.Back(context.Background(), BackInput{ProjectID: project.ID, BackerID: backer.ID, Amount: 40})
	require.NoError(t, err)
	require.Len(t, got.Backers, 1)
	require.NotNil(t, got.Backers[0].User)
	assert.Equal(t, backer.Name, got.Backers[0].User.Name)
	assert.Equal(t, int64(40), got.Backers[0].Amount)
	assert.False(t, got.Backers[0].Date.IsZero())
}

func TestBack_RejectsNonPositiveAmount(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedUser(t)
	backer := env.seedUser(t)
	project := env.seedProject(t, creator, nil)

	for _, amount := range []int64{0, -10} {
		_, err := env.ledger.Back(context.Background(), BackInput{ProjectID: project.ID, BackerID: backer.ID, Amount: amount})
		require.ErrorIs(t, err, ErrValidation)
	}

	got, err := env.projects.Get(context.Background(), project.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Raised)
	assert.Empty(t, got.Backers)
	assert.Empty(t, env.user(t, backer.ID).BackedProjects)
	assert.Equal(t, uint64(2), env.metrics.Snapshot().BackingsRejected)
}

func TestBack_RejectsOverflow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	creator := env.seedUser(t)
	whale := env.seedUser(t)
	minnow := env.seedUser(t)
	full := env.seedProject(t, creator, nil)
	other := env.seedProject(t, creator, nil)

	_, err := env.ledger.Back(ctx, BackInput{ProjectID: full.ID, BackerID: whale.ID, Amount: math.MaxInt64})
	require.NoError(t, err)

	// The project total is saturated.
	_, err = env.ledger.Back(ctx, BackInput{ProjectID: full.ID, BackerID: minnow.ID, Amount: 10})
	require.ErrorIs(t, err, ErrValidation)

	// The backer's lifetime total is saturated.
	_, err = env.ledger.Back(ctx, BackInput{ProjectID: other.ID, BackerID: whale.ID, Amount: 1})
	require.ErrorIs(t, err, ErrValidation)

	got, err := env.projects.Get(ctx, full.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), got.Raised)
	assert.Len(t, got.Backers, 1)

	untouched, err := env.projects.Get(ctx, other.ID)
	require.NoError(t, err)
	assert.Zero(t, untouched.Raised)
	assert.Empty(t, untouched.Backers)

	assert.Equal(t, int64(math.MaxInt64), env.user(t, whale.ID).TotalContributed)
	assert.Zero(t, env.user(t, minnow.ID).TotalContributed)
	assert.Empty(t, env.user(t, minnow.ID).BackedProjects)
	assert.Equal(t, uint64(2), env.metrics.Snapshot().BackingsRejected)
}

func TestBack_UnknownProject(t *testing.T) {
	env := newTestEnv(t)
	backer := env.seedUser(t)

	_, err := env.ledger.Back(context.Background(), BackInput{ProjectID: "missing", BackerID: backer.ID, Amount: 10})
	require.ErrorIs(t, err, ErrProjectNotFound)
	assert.Empty(t, env.user(t, backer.ID).BackedProjects)
}

func TestBack_UnknownUser(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedUser(t)
	project := env.seedProject(t, creator, nil)

	_, err := env.ledger.Back(context.Background(), BackInput{ProjectID: project.ID, BackerID: "ghost", Amount: 10})
	require.ErrorIs(t, err, ErrUserNotFound)

	got, err := env.projects.Get(context.Background(), project.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Raised)
}

func TestBack_Unauthenticated(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.ledger.Back(context.Background(), BackInput{ProjectID: "p", Amount: 10})
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestBack_FailureAfterAppendRollsBack(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedUser(t)
	backer := env.seedUser(t)
	project := env.seedProject(t, creator, nil)

	faulty := &faultyStore{Store: env.store, failAddBacked: errInjected}
	ledger := NewLedgerService(faulty, env.metrics, discardLogger())

	_, err := ledger.Back(context.Background(), BackInput{ProjectID: project.ID, BackerID: backer.ID, Amount: 75})
	require.ErrorIs(t, err, errInjected)

	got, err := env.projects.Get(context.Background(), project.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Raised, "raised must not move when the reference update fails")
	assert.Empty(t, got.Backers)

	u := env.user(t, backer.ID)
	assert.Empty(t, u.BackedProjects)
	assert.Zero(t, u.TotalContributed)
	assert.Equal(t, uint64(1), env.metrics.Snapshot().BackingsFailed)
}

func TestBack_CancelledContext(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedUser(t)
	backer := env.seedUser(t)
	project := env.seedProject(t, creator, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := env.ledger.Back(ctx, BackInput{ProjectID: project.ID, BackerID: backer.ID, Amount: 10})
	require.ErrorIs(t, err, context.Canceled)

	got, err := env.projects.Get(context.Background(), project.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Raised)
}

func TestBack_SumInvariantUnderConcurrency(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedUser(t)
	project := env.seedProject(t, creator, nil)

	backers := make([]string, 4)
	for i := range backers {
		backers[i] = env.seedUser(t).ID
	}

	const perBacker = 25
	var wg sync.WaitGroup
	var want int64
	for i, id := range backers {
		amount := int64(i + 1)
		want += amount * perBacker
		wg.Add(1)
		go func(id string, amount int64) {
			defer wg.Done()
			for j := 0; j < perBacker; j++ {
				_, err := env.ledger.Back(context.Background(), BackInput{ProjectID: project.ID, BackerID: id, Amount: amount})
				assert.NoError(t, err)
			}
		}(id, amount)
	}
	wg.Wait()

	got, err := env.projects.Get(context.Background(), project.ID)
	require.NoError(t, err)
	assert.Equal(t, want, got.Raised)
	assert.Equal(t, got.Raised, got.BackedTotal())
	assert.Len(t, got.Backers, len(backers)*perBacker)

	for _, id := range backers {
		assert.Len(t, env.user(t, id).BackedProjects, 1)
	}

	s := env.metrics.Snapshot()
	assert.Equal(t, uint64(len(backers)*perBacker), s.BackingsSucceeded)
	assert.Equal(t, want, s.BackedAmountTotal)
}

func TestBack_RecordsMetrics(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedUser(t)
	backer := env.seedUser(t)
	project := env.seedProject(t, creator, nil)

	_, err := env.ledger.Back(context.Background(), BackInput{ProjectID: project.ID, BackerID: backer.ID, Amount: 30})
	require.NoError(t, err)

	s := env.metrics.Snapshot()
	assert.Equal(t, uint64(1), s.BackingsSucceeded)
	assert.Equal(t, int64(30), s.BackedAmountTotal)
}
