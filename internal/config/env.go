package config

import (
	"strconv"
	"strings"
)

// Environment variables named CONFIG__A__B__C override the dotted key a.b.c.
// Double underscores delimit segments; matching is case-insensitive.
const envPrefix = "CONFIG__"

const envSegmentDelimiter = "__"

// envTree parses the environment snapshot into a tree. Applied last, it
// overrides every other source unconditionally.
func envTree(environ []string) Tree {
	t := Tree{}
	for _, entry := range environ {
		name, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		key, ok := envNameToKey(name)
		if !ok {
			continue
		}
		t.set(key, parseEnvScalar(value))
	}
	return t
}

func envNameToKey(name string) (string, bool) {
	upper := strings.ToUpper(name)
	if !strings.HasPrefix(upper, envPrefix) {
		return "", false
	}
	rest := upper[len(envPrefix):]
	segments := strings.Split(rest, envSegmentDelimiter)
	for _, seg := range segments {
		if seg == "" {
			return "", false
		}
	}
	return strings.ToLower(strings.Join(segments, ".")), true
}

// parseEnvScalar interprets the string value: booleans first, then a
// best-effort int-then-float parse, otherwise the raw string.
func parseEnvScalar(value string) any {
	switch strings.ToLower(value) {
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.Atoi(value); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	return value
}
