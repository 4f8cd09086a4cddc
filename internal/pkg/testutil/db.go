// Package testutil holds helpers for tests that need a real PostgreSQL database.
package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/yigit/registrar/internal/app/migrations"
	"github.com/yigit/registrar/internal/db"
)

// DatabaseURLEnv names the variable holding the connection string of a
// disposable test database
const DatabaseURLEnv = "REGISTRAR_TEST_DATABASE_URL"

// PrepareDB connects to the test database, drops every table and applies the
// migrations again. The test is skipped when DatabaseURLEnv is unset.
func PrepareDB(t *testing.T) *db.PostgresDB {
	t.Helper()

	url := os.Getenv(DatabaseURLEnv)
	if url == "" {
		t.Skipf("%s is not set", DatabaseURLEnv)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err, "connect to test database")
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `DROP TABLE IF EXISTS attendance, grades, professor_courses,
		professor_departments, courses, students, users, departments, schema_migrations CASCADE`)
	require.NoError(t, err, "reset schema")

	_, err = migrations.NewMigrator(pool).Up(ctx)
	require.NoError(t, err, "apply migrations")

	return &db.PostgresDB{Pool: pool}
}
