package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SettingType enumerates the declared type of a persisted setting value.
type SettingType string

const (
	SettingTypeInt    SettingType = "int"
	SettingTypeFloat  SettingType = "float"
	SettingTypeBool   SettingType = "bool"
	SettingTypeString SettingType = "string"
	SettingTypeJSON   SettingType = "json"
	SettingTypeArray  SettingType = "array"
)

func ParseSettingType(s string) (SettingType, error) {
	switch SettingType(s) {
	case SettingTypeInt, SettingTypeFloat, SettingTypeBool,
		SettingTypeString, SettingTypeJSON, SettingTypeArray:
		return SettingType(s), nil
	default:
		return "", fmt.Errorf("invalid setting type: %s", s)
	}
}

// Setting is one row of the settings table. The effective configuration key
// is Category + "." + Key. Only rows with Active set participate in
// configuration resolution.
type Setting struct {
	Category  string
	Key       string
	Value     string
	Type      SettingType
	Active    bool
	UpdatedAt time.Time
}

// DottedKey returns the configuration key this setting binds to.
func (s Setting) DottedKey() string {
	return s.Category + "." + s.Key
}

// Decode interprets the raw stored value according to the declared type.
func (s Setting) Decode() (any, error) {
	raw := strings.TrimSpace(s.Value)
	switch s.Type {
	case SettingTypeInt:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", s.DottedKey(), err)
		}
		return v, nil
	case SettingTypeFloat:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", s.DottedKey(), err)
		}
		return v, nil
	case SettingTypeBool:
		v, err := strconv.ParseBool(strings.ToLower(raw))
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", s.DottedKey(), err)
		}
		return v, nil
	case SettingTypeString:
		// Stored either as a bare string or a JSON-quoted one.
		var quoted string
		if err := json.Unmarshal([]byte(raw), &quoted); err == nil {
			return quoted, nil
		}
		return s.Value, nil
	case SettingTypeArray:
		var items []any
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return nil, fmt.Errorf("setting %s: %w", s.DottedKey(), err)
		}
		return items, nil
	case SettingTypeJSON:
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return nil, fmt.Errorf("setting %s: %w", s.DottedKey(), err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("setting %s: invalid setting type: %s", s.DottedKey(), s.Type)
	}
}
