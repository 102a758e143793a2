//go:build integration

package database_test

import (
	"testing"

	"github.com/fundhive/fundhive/internal/database"
	"github.com/fundhive/fundhive/internal/testutil"
)

func TestIntegrationRunMigrations_Idempotent(t *testing.T) {
	dbURL := testutil.RequireEnv(t, "DATABASE_URL")

	if err := database.ResetSchema(dbURL); err != nil {
		t.Fatalf("ResetSchema failed: %v", err)
	}
	if err := database.RunMigrations(dbURL); err != nil {
		t.Fatalf("second RunMigrations should be a no-op, got: %v", err)
	}

	m, err := database.NewMigrator(dbURL)
	if err != nil {
		t.Fatalf("NewMigrator failed: %v", err)
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if err != nil {
		t.Fatalf("Version failed: %v", err)
	}
	if dirty {
		t.Error("schema should not be dirty")
	}
	if version != 3 {
		t.Errorf("version = %d, want 3", version)
	}
}
