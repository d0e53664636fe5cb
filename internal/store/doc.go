// Package store implements the data access layer for the collector agent.
//
// Persistent storage uses SQLite through database/sql. The only locally-owned
// table family is the settings table feeding the configuration engine, plus
// the migration bookkeeping table.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                         Store (facade)                          │
//	├─────────────────────────────────────────────────────────────────┤
//	│                        SettingsStore                            │
//	│                             ▼                                   │
//	│                          settings                               │
//	└─────────────────────────────────────────────────────────────────┘
//
// # Tables
//
// Created by internal/store/migrations:
//
//	┌────────────────────┬─────────────────────────────────────────────┐
//	│  Table             │  Purpose                                    │
//	├────────────────────┼─────────────────────────────────────────────┤
//	│  settings          │  Configuration overrides (category, key,    │
//	│                    │  value, declared type, is_active)           │
//	│  schema_migrations │  Migration version tracking                 │
//	└────────────────────┴─────────────────────────────────────────────┘
//
// # SettingsStore
//
// Persists configuration overrides. The effective dotted configuration key
// of a row is category + "." + config_key. Only rows with is_active = TRUE
// contribute to configuration resolution; deactivated rows keep their value
// so they can be re-enabled.
//
// Schema:
//
//	settings (
//	    category TEXT NOT NULL,
//	    config_key TEXT NOT NULL,
//	    config_value TEXT NOT NULL,
//	    config_type TEXT NOT NULL DEFAULT 'string',
//	    is_active BOOLEAN NOT NULL DEFAULT TRUE,
//	    updated_at TIMESTAMP,
//	    PRIMARY KEY (category, config_key)
//	)
//
// Methods:
//   - List(ctx, opts...) → []models.Setting
//   - ActiveSettings(ctx) → []models.Setting (config.SettingsReader)
//   - Save(ctx, setting) → error (uses UPSERT)
//   - Deactivate(ctx, category, key) → error
//
// List uses the functional options pattern; each ListOption modifies a
// squirrel.SelectBuilder and options compose:
//
//	settings, err := store.Settings().List(ctx,
//	    store.Active(),
//	    store.ByCategories("collectors"),
//	    store.WithDefaultOrder(),
//	)
//
// # QueryInterceptor
//
// All database operations go through a QueryInterceptor that debug-logs each
// query with zap, so SQL execution is visible without touching the store
// implementations.
//
// # Design Patterns
//
// Upserts:
//   - Save uses INSERT ... ON CONFLICT (category, config_key) DO UPDATE
//   - Deactivation flips is_active rather than deleting, preserving values
//
// Functional Options:
//   - SettingsStore.List composes ListOption functions over a squirrel builder
package store
