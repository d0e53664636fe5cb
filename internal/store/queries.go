package store

// Settings queries
const (
	queryUpsertSetting = `
		INSERT INTO settings (category, config_key, config_value, config_type, is_active, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (category, config_key) DO UPDATE SET
			config_value = EXCLUDED.config_value,
			config_type = EXCLUDED.config_type,
			is_active = EXCLUDED.is_active,
			updated_at = CURRENT_TIMESTAMP`

	queryDeactivateSetting = `
		UPDATE settings SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP
		WHERE category = ? AND config_key = ?`
)
