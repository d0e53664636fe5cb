// Package errors defines the typed error taxonomy for the collector agent.
//
// Two families exist:
//
//   - ConfigError: a configuration source could not be loaded, a value could
//     not be coerced to the requested type, or the settings database was
//     required but unreachable. Source failures are fatal at load time;
//     coercion failures are recoverable by the caller.
//   - PathError: a filesystem location derived from configuration could not
//     be created.
//
// Callers match with the Is* predicates rather than type assertions.
package errors

import (
	"errors"
	"fmt"
)

// ConfigErrorKind discriminates the failure modes of configuration loading
// and value resolution.
type ConfigErrorKind string

const (
	KindMalformedSource     ConfigErrorKind = "malformed_source"
	KindTypeMismatch        ConfigErrorKind = "type_mismatch"
	KindDatabaseUnavailable ConfigErrorKind = "database_unavailable"
)

type ConfigError struct {
	Kind ConfigErrorKind
	// Key is the dotted configuration key, when the failure concerns one.
	Key string
	// Source names the offending origin (file path, table, env var) so an
	// operator can fix the source data.
	Source string
	Err    error
}

func (e *ConfigError) Error() string {
	switch e.Kind {
	case KindMalformedSource:
		return fmt.Sprintf("config: malformed source %q: %v", e.Source, e.Err)
	case KindTypeMismatch:
		return fmt.Sprintf("config: key %q: %v", e.Key, e.Err)
	case KindDatabaseUnavailable:
		return fmt.Sprintf("config: settings database unavailable: %v", e.Err)
	default:
		return fmt.Sprintf("config: %v", e.Err)
	}
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewMalformedSourceError reports a configuration source that exists but
// cannot be parsed.
func NewMalformedSourceError(source string, err error) error {
	return &ConfigError{Kind: KindMalformedSource, Source: source, Err: err}
}

// NewTypeMismatchError reports a value that is present but cannot be coerced
// to the type the caller asked for.
func NewTypeMismatchError(key, wantType string, value any) error {
	return &ConfigError{
		Kind: KindTypeMismatch,
		Key:  key,
		Err:  fmt.Errorf("value %v (%T) is not coercible to %s", value, value, wantType),
	}
}

// NewDatabaseUnavailableError reports that the settings database was required
// but could not be read.
func NewDatabaseUnavailableError(err error) error {
	return &ConfigError{Kind: KindDatabaseUnavailable, Err: err}
}

func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

func IsMalformedSource(err error) bool {
	return configErrorOfKind(err, KindMalformedSource)
}

func IsTypeMismatch(err error) bool {
	return configErrorOfKind(err, KindTypeMismatch)
}

func IsDatabaseUnavailable(err error) bool {
	return configErrorOfKind(err, KindDatabaseUnavailable)
}

func configErrorOfKind(err error, kind ConfigErrorKind) bool {
	var ce *ConfigError
	if !errors.As(err, &ce) {
		return false
	}
	return ce.Kind == kind
}

// PathError reports a failure to create or resolve a managed filesystem
// location. Path holds the location that was attempted.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("paths: %q: %v", e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// NewPathCreateError reports that a directory could not be created.
func NewPathCreateError(path string, err error) error {
	return &PathError{Path: path, Err: err}
}

func IsPathError(err error) bool {
	var pe *PathError
	return errors.As(err, &pe)
}
