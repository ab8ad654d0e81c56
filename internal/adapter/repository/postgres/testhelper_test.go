package postgres_test

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/marcos-nsantos/user-management-backend/internal/infrastructure/database"
)

type TestDB struct {
	Pool *pgxpool.Pool
}

// SetupTestDB starts a throwaway postgres with the users schema applied. The
// container and pool are released when the test finishes.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:18-alpine",
		postgres.WithDatabase("users_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err, "starting postgres container")

	connString, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "building connection string")

	pool, err := pgxpool.New(ctx, connString)
	require.NoError(t, err, "creating pool")
	t.Cleanup(pool.Close)

	require.NoError(t, database.RunMigrations(ctx, pool, migrationsDir()), "applying migrations")

	return &TestDB{Pool: pool}
}

// Truncate empties tables and restarts their id sequences.
func (db *TestDB) Truncate(t *testing.T, tables ...string) {
	t.Helper()
	for _, table := range tables {
		_, err := db.Pool.Exec(context.Background(), fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table))
		require.NoError(t, err, "truncating %s", table)
	}
}

func migrationsDir() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "..", "..", "..", "..", "migrations")
}
