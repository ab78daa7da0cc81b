package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrations embed.FS

// gooseUp is a seam for testing the goose provider.
var gooseUp = func(ctx context.Context, provider *goose.Provider) ([]*goose.MigrationResult, error) {
	return provider.Up(ctx)
}

// Migrate applies every pending embedded migration for dialect.
func Migrate(ctx context.Context, db *sql.DB, dialect Dialect) error {
	var (
		gooseDialect goose.Dialect
		dir          string
	)
	switch dialect {
	case DialectPostgres:
		gooseDialect, dir = goose.DialectPostgres, "migrations/postgres"
	case DialectSQLite:
		gooseDialect, dir = goose.DialectSQLite3, "migrations/sqlite"
	default:
		return fmt.Errorf("sqlstore: no migrations for dialect %q", dialect)
	}

	fsys, err := fs.Sub(migrations, dir)
	if err != nil {
		return fmt.Errorf("sqlstore: migrations fs: %w", err)
	}

	provider, err := goose.NewProvider(gooseDialect, db, fsys)
	if err != nil {
		return fmt.Errorf("sqlstore: goose provider: %w", err)
	}

	if _, err := gooseUp(ctx, provider); err != nil {
		return fmt.Errorf("sqlstore: migrate: %w", err)
	}
	return nil
}
