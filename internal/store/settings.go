package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/medialens/collector/internal/models"
)

// SettingsStore persists configuration overrides as rows of
// (category, config_key, config_value, config_type, is_active).
type SettingsStore struct {
	db QueryInterceptor
}

func NewSettingsStore(db QueryInterceptor) *SettingsStore {
	return &SettingsStore{db: db}
}

func (s *SettingsStore) List(ctx context.Context, opts ...ListOption) ([]models.Setting, error) {
	builder := sq.Select(
		"category",
		"config_key",
		"config_value",
		"config_type",
		"is_active",
		"updated_at",
	).From("settings")

	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []models.Setting
	for rows.Next() {
		var setting models.Setting
		var rawType string
		err := rows.Scan(
			&setting.Category,
			&setting.Key,
			&setting.Value,
			&rawType,
			&setting.Active,
			&setting.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		setting.Type, err = models.ParseSettingType(rawType)
		if err != nil {
			return nil, err
		}
		settings = append(settings, setting)
	}

	return settings, rows.Err()
}

// ActiveSettings implements config.SettingsReader. Inactive rows never
// participate in resolution, they are not merged as deletions.
func (s *SettingsStore) ActiveSettings(ctx context.Context) ([]models.Setting, error) {
	return s.List(ctx, Active())
}

// Save stores or updates a setting (upsert on category + config_key).
func (s *SettingsStore) Save(ctx context.Context, setting models.Setting) error {
	if _, err := models.ParseSettingType(string(setting.Type)); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, queryUpsertSetting,
		setting.Category,
		setting.Key,
		setting.Value,
		string(setting.Type),
		setting.Active,
	)
	return err
}

// Deactivate flips a setting inactive without deleting the row, so an
// operator can re-enable it later with its value intact.
func (s *SettingsStore) Deactivate(ctx context.Context, category, key string) error {
	_, err := s.db.ExecContext(ctx, queryDeactivateSetting, category, key)
	return err
}

type ListOption func(sq.SelectBuilder) sq.SelectBuilder

func Active() ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.Eq{"is_active": true})
	}
}

func ByCategories(categories ...string) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if len(categories) == 0 {
			return b
		}
		return b.Where(sq.Eq{"category": categories})
	}
}

func WithDefaultOrder() ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.OrderBy("category", "config_key")
	}
}
