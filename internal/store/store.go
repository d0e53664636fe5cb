package store

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

// QueryInterceptor is the subset of *sql.DB the stores use, so query logging
// can be layered in without touching store implementations.
type QueryInterceptor interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// NewDB opens the agent database at path. ":memory:" is valid for tests.
func NewDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection keeps ":memory:" databases coherent and serializes
	// writers, which is plenty for a settings table.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Store provides access to all storage repositories.
type Store struct {
	db       *sql.DB
	settings *SettingsStore
}

func NewStore(db *sql.DB) *Store {
	intercepted := newLoggingInterceptor(db)
	return &Store{
		db:       db,
		settings: NewSettingsStore(intercepted),
	}
}

func (s *Store) Settings() *SettingsStore {
	return s.settings
}

func (s *Store) Close() error {
	return s.db.Close()
}

type loggingInterceptor struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

func newLoggingInterceptor(db *sql.DB) *loggingInterceptor {
	return &loggingInterceptor{db: db, log: zap.S().Named("store")}
}

func (l *loggingInterceptor) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	l.log.Debugw("query", "sql", query, "args", args)
	return l.db.QueryContext(ctx, query, args...)
}

func (l *loggingInterceptor) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	l.log.Debugw("query row", "sql", query, "args", args)
	return l.db.QueryRowContext(ctx, query, args...)
}

func (l *loggingInterceptor) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	l.log.Debugw("exec", "sql", query, "args", args)
	return l.db.ExecContext(ctx, query, args...)
}
