package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	testDB *DB
)

// GetTestDB returns the shared test database connection, or nil when TestMain
// could not reach Postgres.
func GetTestDB() *DB {
	return testDB
}

// SetupTestDB connects to dbURL and applies the embedded migrations.
// Should be called once in TestMain, not in individual tests.
func SetupTestDB(dbURL string) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := Connect(ctx, dbURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// RequireTestDB skips integration tests in short mode or without Postgres,
// and truncates the kv table otherwise.
func RequireTestDB(t *testing.T) *DB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db := GetTestDB()
	if db == nil {
		t.Skip("postgres not available")
	}

	_, err := db.Pool.Exec(context.Background(), "TRUNCATE TABLE kv_entries")
	require.NoError(t, err)
	return db
}

// TeardownTestDB closes the test database connection. Safe to call with nil.
func TeardownTestDB(db *DB) {
	if db != nil {
		db.Close()
	}
}
