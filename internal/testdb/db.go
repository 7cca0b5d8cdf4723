//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/attendance-api/internal/platform/postgres"
	"github.com/phrazzld/attendance-api/internal/redact"
	"github.com/stretchr/testify/require"
)

// TestTimeout bounds setup operations against the test database.
const TestTimeout = 10 * time.Second

var migrateOnce sync.Once
var migrateErr error

// GetTestDBWithT opens the test database, applies the embedded migrations
// once per test binary and registers Close with t.Cleanup. The test is
// skipped when no database is configured.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		t.Skip("no test database configured (set TEST_DATABASE_URL or DATABASE_URL)")
	}

	db, err := sql.Open("pgx", dbURL)
	require.NoError(t, err, "failed to open %s", redact.DatabaseURL(dbURL))

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "failed to ping %s", redact.DatabaseURL(dbURL))

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("warning: failed to close test database: %v", err)
		}
	})

	ApplyMigrations(t, db)
	return db
}

// ApplyMigrations runs the embedded migrations up to the latest version. It
// only touches the database on the first call in a test binary.
func ApplyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()

	migrateOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
		defer cancel()
		migrateErr = postgres.Migrate(ctx, db, "up", nil)
	})
	require.NoError(t, migrateErr, "failed to apply migrations")
}
