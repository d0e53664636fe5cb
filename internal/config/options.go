package config

import (
	"context"
	"os"
	"time"

	"github.com/creasty/defaults"

	"github.com/medialens/collector/internal/models"
)

// SettingsReader is the database-backed settings source. Implemented by
// store.SettingsStore; only active rows are returned.
type SettingsReader interface {
	ActiveSettings(ctx context.Context) ([]models.Setting, error)
}

type loadOptions struct {
	ConfigDir       string        `default:"configs"`
	DatabaseTimeout time.Duration `default:"10s"`

	useDatabase bool
	settings    SettingsReader

	// Injection points for tests.
	environ  func() []string
	readFile func(string) ([]byte, error)
	readDir  func(string) ([]os.DirEntry, error)
}

type Option func(*loadOptions)

// WithConfigDir points the file source at dir. All *.json documents in it
// are merged in lexicographic filename order.
func WithConfigDir(dir string) Option {
	return func(o *loadOptions) {
		o.ConfigDir = dir
	}
}

// WithDatabase enables the database source. Loading fails if the source
// cannot be read; there is no silent fallback to file-only configuration.
func WithDatabase(settings SettingsReader) Option {
	return func(o *loadOptions) {
		o.useDatabase = true
		o.settings = settings
	}
}

// WithDatabaseTimeout bounds the one-shot settings read at load and reload.
func WithDatabaseTimeout(d time.Duration) Option {
	return func(o *loadOptions) {
		o.DatabaseTimeout = d
	}
}

// WithEnviron replaces the process environment, for tests.
func WithEnviron(environ func() []string) Option {
	return func(o *loadOptions) {
		o.environ = environ
	}
}

// WithFileReader replaces the file reader, for tests.
func WithFileReader(readFile func(string) ([]byte, error)) Option {
	return func(o *loadOptions) {
		o.readFile = readFile
	}
}

func newLoadOptions(opts ...Option) (loadOptions, error) {
	options := loadOptions{
		environ:  os.Environ,
		readFile: os.ReadFile,
		readDir:  os.ReadDir,
	}
	if err := defaults.Set(&options); err != nil {
		return loadOptions{}, err
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options, nil
}
