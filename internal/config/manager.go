package config

import (
	"context"
	"path/filepath"
	"sync/atomic"

	"github.com/spf13/cast"
	"go.uber.org/zap"

	srvErrors "github.com/medialens/collector/pkg/errors"
)

// basePathKey anchors every relative path value in the tree.
const basePathKey = "paths.base"

// Manager resolves dotted configuration keys against a layered tree built
// from, in ascending precedence: compiled-in defaults, JSON files, the
// settings database, and environment variables.
//
// The tree is immutable between reloads and published through an atomic
// pointer, so Get* methods are safe to call concurrently with Reload.
type Manager struct {
	opts loadOptions
	tree atomic.Pointer[Tree]
}

// Load builds a Manager by applying every configured source. Any source that
// exists but cannot be read or parsed aborts the load; no partially built
// tree is ever returned.
func Load(ctx context.Context, opts ...Option) (*Manager, error) {
	options, err := newLoadOptions(opts...)
	if err != nil {
		return nil, err
	}
	m := &Manager{opts: options}
	tree, err := m.build(ctx)
	if err != nil {
		return nil, err
	}
	m.tree.Store(&tree)
	zap.S().Named("config").Debugw("configuration loaded",
		"config_dir", options.ConfigDir,
		"database", options.useDatabase,
	)
	return m, nil
}

// Reload rebuilds the whole tree from scratch with the same sources and
// swaps it in atomically. On failure the previous tree stays published.
func (m *Manager) Reload(ctx context.Context) error {
	tree, err := m.build(ctx)
	if err != nil {
		return err
	}
	m.tree.Store(&tree)
	zap.S().Named("config").Debugw("configuration reloaded")
	return nil
}

func (m *Manager) build(ctx context.Context) (Tree, error) {
	tree := defaultTree()

	fileTree, err := loadFiles(m.opts.ConfigDir, m.opts)
	if err != nil {
		return nil, err
	}
	tree.merge(fileTree)

	if m.opts.useDatabase {
		dbTree, err := loadDatabase(ctx, m.opts.settings, m.opts.DatabaseTimeout)
		if err != nil {
			return nil, err
		}
		tree.merge(dbTree)
	}

	// Environment wins last, regardless of which other sources were used.
	tree.merge(envTree(m.opts.environ()))
	return tree, nil
}

func (m *Manager) snapshot() Tree {
	return *m.tree.Load()
}

// Get returns the value at key, or def when the key is absent from every
// source. Absence is never an error.
func (m *Manager) Get(key string, def any) any {
	value, ok := m.snapshot().lookup(key)
	if !ok {
		return def
	}
	if sub, isTree := value.(Tree); isTree {
		return toPlainMap(sub)
	}
	return value
}

// GetInt resolves key and coerces it to int. A present but uncoercible value
// is a ConfigError; only absence falls back to def.
func (m *Manager) GetInt(key string, def int) (int, error) {
	value, ok := m.snapshot().lookup(key)
	if !ok {
		return def, nil
	}
	n, err := cast.ToIntE(value)
	if err != nil {
		return def, srvErrors.NewTypeMismatchError(key, "int", value)
	}
	return n, nil
}

func (m *Manager) GetFloat(key string, def float64) (float64, error) {
	value, ok := m.snapshot().lookup(key)
	if !ok {
		return def, nil
	}
	f, err := cast.ToFloat64E(value)
	if err != nil {
		return def, srvErrors.NewTypeMismatchError(key, "float", value)
	}
	return f, nil
}

func (m *Manager) GetBool(key string, def bool) (bool, error) {
	value, ok := m.snapshot().lookup(key)
	if !ok {
		return def, nil
	}
	b, err := cast.ToBoolE(value)
	if err != nil {
		return def, srvErrors.NewTypeMismatchError(key, "bool", value)
	}
	return b, nil
}

// GetList resolves key as a list of strings. A scalar value is wrapped in a
// singleton list: legacy single-file configs store one string where a
// one-element list is meant.
func (m *Manager) GetList(key string, def []string) []string {
	value, ok := m.snapshot().lookup(key)
	if !ok {
		return def
	}
	switch v := value.(type) {
	case Tree:
		return def
	case []string:
		return v
	case []any:
		out, err := cast.ToStringSliceE(v)
		if err != nil {
			return def
		}
		return out
	default:
		return []string{cast.ToString(v)}
	}
}

// GetDict returns the subtree rooted at key as a plain mapping.
func (m *Manager) GetDict(key string, def map[string]any) map[string]any {
	value, ok := m.snapshot().lookup(key)
	if !ok {
		return def
	}
	switch v := value.(type) {
	case Tree:
		return toPlainMap(v)
	case map[string]any:
		return v
	default:
		return def
	}
}

// GetPath resolves key as a filesystem path, joined onto the base path when
// relative. It does not touch the filesystem; existence guarantees belong to
// the paths package.
func (m *Manager) GetPath(key string, def string) (string, error) {
	value, ok := m.snapshot().lookup(key)
	if !ok {
		value = def
	}
	raw, err := cast.ToStringE(value)
	if err != nil {
		return "", srvErrors.NewTypeMismatchError(key, "string", value)
	}
	if key == basePathKey {
		return absolute(raw), nil
	}
	if filepath.IsAbs(raw) {
		return raw, nil
	}
	return filepath.Join(m.BasePath(), raw), nil
}

// BasePath resolves paths.base, defaulting to the current working directory.
// Resolved on every call so a reload that changes paths.base is observed.
func (m *Manager) BasePath() string {
	raw := cast.ToString(m.Get(basePathKey, "."))
	if raw == "" {
		raw = "."
	}
	return absolute(raw)
}

// Dump returns the whole resolved tree as a plain mapping, for the operator
// API and for debug logging.
func (m *Manager) Dump() map[string]any {
	return toPlainMap(m.snapshot())
}

func absolute(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
