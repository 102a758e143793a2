// Package testutil holds helpers shared by integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/fundhive/fundhive/internal/database"
	"github.com/fundhive/fundhive/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 420420

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// ResetSchema drops every table and re-applies the embedded migrations.
func ResetSchema(databaseURL string) error {
	if err := database.ResetSchema(databaseURL); err != nil {
		return fmt.Errorf("reset schema: %w", err)
	}
	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ============================================================================
// Test Data Factories
// ============================================================================

var counter atomic.Int64

// UniqueID generates a unique ID for tests.
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d-%d", prefix, time.Now().UnixNano(), counter.Add(1))
}

// NewTestUser creates a test user with sensible defaults.
func NewTestUser(t testing.TB) *model.User {
	t.Helper()
	id := UniqueID("user")
	return &model.User{
		ID:              id,
		Name:            "Test User",
		Email:           id + "@example.com",
		PasswordHash:    "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		Role:            model.RoleUser,
		Avatar:          model.DefaultAvatar,
		CreatedProjects: []string{},
		BackedProjects:  []string{},
		SavedProjects:   []string{},
		CreatedAt:       time.Now().UTC(),
	}
}

// NewTestProject creates a test project owned by creatorID.
func NewTestProject(t testing.TB, creatorID string) *model.Project {
	t.Helper()
	now := time.Now().UTC()
	return &model.Project{
		ID:          UniqueID("project"),
		Title:       "Community Garden",
		Description: "Raised beds for the neighbourhood",
		Category:    "Community",
		Goal:        1000,
		Deadline:    now.Add(30 * 24 * time.Hour),
		ImageURL:    "https://example.com/garden.jpg",
		CreatorID:   creatorID,
		Backers:     []model.Backer{},
		Updates:     []model.ProjectUpdate{},
		FAQs:        []model.FAQ{},
		Status:      model.ProjectStatusActive,
		CreatedAt:   now,
	}
}
