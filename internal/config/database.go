package config

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/medialens/collector/internal/models"
	srvErrors "github.com/medialens/collector/pkg/errors"
)

const databaseMaxTries = 3

// loadDatabase reads the active settings rows once, bounded by timeout, and
// converts them into a tree. An unreachable database is fatal: configuration
// correctness takes priority over availability, so a database override must
// never be masked by a silent file-only fallback.
func loadDatabase(ctx context.Context, settings SettingsReader, timeout time.Duration) (Tree, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	rows, err := backoff.Retry(ctx, func() ([]models.Setting, error) {
		return settings.ActiveSettings(ctx)
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(databaseMaxTries),
	)
	if err != nil {
		return nil, srvErrors.NewDatabaseUnavailableError(err)
	}

	t := Tree{}
	for _, row := range rows {
		if !row.Active {
			continue
		}
		value, err := row.Decode()
		if err != nil {
			return nil, srvErrors.NewMalformedSourceError("settings."+row.DottedKey(), err)
		}
		t.set(row.DottedKey(), fromJSONValue(value))
	}
	return t, nil
}
