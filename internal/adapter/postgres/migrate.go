package repo

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"slices"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies the embedded schema files that were not applied yet, in name order.
// It returns the names of the files applied by this call.
func Migrate(ctx context.Context, db *pgxpool.Pool) ([]string, error) {
	const op = "Migrate"

	if _, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name       TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	names, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	slices.Sort(names)

	var applied []string
	for _, name := range names {
		done, err := applyMigration(ctx, db, name)
		if err != nil {
			return applied, fmt.Errorf("%s: %s: %w", op, name, err)
		}
		if done {
			applied = append(applied, name)
		}
	}

	return applied, nil
}

func applyMigration(ctx context.Context, db *pgxpool.Pool, name string) (bool, error) {
	body, err := migrations.ReadFile(name)
	if err != nil {
		return false, err
	}

	applied := false
	err = pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `INSERT INTO schema_migrations (name) VALUES ($1) ON CONFLICT DO NOTHING`, name)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return nil
		}

		// no arguments: the simple protocol accepts several statements at once
		if _, err := tx.Exec(ctx, string(body), pgx.QueryExecModeSimpleProtocol); err != nil {
			return err
		}
		applied = true
		return nil
	})

	return applied, err
}
