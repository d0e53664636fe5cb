// Package config implements the layered configuration resolution engine for
// the collector agent.
//
// A Manager resolves arbitrary dotted keys (e.g.
// "processing.parallel.max_collector_workers") against a tree built from
// multiple sources. Later sources override earlier ones at the leaf level;
// merging is key-wise, so a later source setting a.b.c never erases a
// sibling a.b.d from an earlier one.
//
// # Sources
//
// Applied in ascending precedence:
//
//	┌───┬──────────────┬─────────────────────────────────────────────────┐
//	│ # │ Source       │ Contribution                                    │
//	├───┼──────────────┼─────────────────────────────────────────────────┤
//	│ 1 │ Defaults     │ Compiled-in map, always present                 │
//	│ 2 │ Files        │ Every *.json in the config directory, merged in │
//	│   │              │ lexicographic filename order                    │
//	│ 3 │ Database     │ Active rows of the settings table (optional)    │
//	│ 4 │ Environment  │ CONFIG__A__B__C=value → a.b.c, always last      │
//	└───┴──────────────┴─────────────────────────────────────────────────┘
//
// Environment values parse booleans from "true"/"false" (case-insensitive),
// then best-effort int, then float, otherwise stay strings.
//
// One legacy aliasing rule exists: a file's top-level "parallel_processing"
// object is remapped into processing.parallel.
//
// # Accessors
//
//	┌─────────┬────────────────────────────────────────────────────────┐
//	│ Method  │ Behavior                                               │
//	├─────────┼────────────────────────────────────────────────────────┤
//	│ Get     │ Raw value or caller default; never errors              │
//	│ GetInt  │ Coerces; present-but-uncoercible is a ConfigError      │
//	│ GetFloat│ Same as GetInt for float64                             │
//	│ GetBool │ Same as GetInt for bool                                │
//	│ GetList │ Scalars wrap into a singleton list                     │
//	│ GetDict │ Subtree as plain map[string]any                        │
//	│ GetPath │ Joined onto paths.base when relative                   │
//	└─────────┴────────────────────────────────────────────────────────┘
//
// Missing keys are never errors: absence always falls through to the
// caller-supplied default.
//
// # Failure Semantics
//
// Construction and Reload are all-or-nothing. A malformed JSON document, an
// undecodable settings row, or an unreachable database (when the database
// source is enabled) aborts the load with a ConfigError naming the offending
// file or row; no partially merged tree is ever published.
//
// # Concurrency
//
// The tree is immutable between reloads and published through an atomic
// pointer. Reload builds a complete new tree and swaps it in, so concurrent
// readers always observe either the old or the new generation, never a mix.
//
// # Usage
//
//	cfg, err := config.Load(ctx,
//	    config.WithConfigDir("/etc/collector"),
//	    config.WithDatabase(store.Settings()),
//	)
//	if err != nil {
//	    return err
//	}
//	workers, err := cfg.GetInt("processing.parallel.max_collector_workers", 4)
package config
