// Package migrations manages the agent's database schema. Migrations are
// ordered, applied once, and tracked in the schema_migrations table.
package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

type migration struct {
	version int
	name    string
	stmts   []string
}

var all = []migration{
	{
		version: 1,
		name:    "create settings table",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS settings (
				category TEXT NOT NULL,
				config_key TEXT NOT NULL,
				config_value TEXT NOT NULL,
				config_type TEXT NOT NULL DEFAULT 'string',
				is_active BOOLEAN NOT NULL DEFAULT TRUE,
				updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				PRIMARY KEY (category, config_key)
			)`,
		},
	},
	{
		version: 2,
		name:    "index settings by active flag",
		stmts: []string{
			`CREATE INDEX IF NOT EXISTS idx_settings_active ON settings (is_active)`,
		},
	},
}

// Run applies every pending migration. Safe to call repeatedly.
func Run(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return err
	}

	log := zap.S().Named("migrations")
	for _, m := range all {
		if applied[m.version] {
			continue
		}
		log.Debugw("applying migration", "version", m.version, "name", m.name)
		if err := apply(ctx, db, m); err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
		}
	}
	return nil
}

func appliedVersions(ctx context.Context, db *sql.DB) (map[int]bool, error) {
	rows, err := db.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := map[int]bool{}
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

func apply(ctx context.Context, db *sql.DB, m migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range m.stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version) VALUES (?)`, m.version); err != nil {
		return err
	}
	return tx.Commit()
}
