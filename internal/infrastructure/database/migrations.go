package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jackc/pgx/v5/pgconn"
)

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// RunMigrations applies every *.up.sql file in dir in lexical order. The service
// never calls it; integration tests use it to create the schema.
func RunMigrations(ctx context.Context, db execer, dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		return fmt.Errorf("listing migrations: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no migrations found in %s", dir)
	}

	sort.Strings(files)

	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading migration file %s: %w", filepath.Base(path), err)
		}

		if _, err := db.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", filepath.Base(path), err)
		}
	}

	return nil
}
