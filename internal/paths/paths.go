// Package paths translates semantic location names (raw data, processed
// data, logs) into guaranteed-existing filesystem paths derived from
// configuration. Directory accessors create their directory before
// returning; file accessors ensure the parent directory instead.
package paths

import (
	"os"
	"path/filepath"

	"github.com/medialens/collector/internal/config"
	srvErrors "github.com/medialens/collector/pkg/errors"
)

const (
	keyDataRaw       = "paths.data_raw"
	keyDataProcessed = "paths.data_processed"
	keyLogs          = "paths.logs"
	keyAgentLog      = "paths.agent_log"
	keyConfigDir     = "paths.config"
)

// Manager resolves semantic paths through a config.Manager. Nothing is
// cached: paths.base may change across a configuration reload, so every
// accessor re-resolves from the current tree.
type Manager struct {
	cfg *config.Manager
}

func NewManager(cfg *config.Manager) *Manager {
	return &Manager{cfg: cfg}
}

// DataRaw returns the directory collectors write raw captures into.
func (m *Manager) DataRaw() (string, error) {
	return m.dir(keyDataRaw, "data/raw")
}

// DataProcessed returns the directory processed output lands in.
func (m *Manager) DataProcessed() (string, error) {
	return m.dir(keyDataProcessed, "data/processed")
}

// Logs returns the root log directory.
func (m *Manager) Logs() (string, error) {
	return m.dir(keyLogs, "logs")
}

// CollectorLogs returns the per-collector log directory under Logs.
func (m *Manager) CollectorLogs(collector string) (string, error) {
	logs, err := m.Logs()
	if err != nil {
		return "", err
	}
	return m.EnsureExists(filepath.Join(logs, "collectors", collector))
}

// AgentLog returns the agent log file path. The parent directory is
// guaranteed to exist, the file itself is not created.
func (m *Manager) AgentLog() (string, error) {
	path, err := m.cfg.GetPath(keyAgentLog, "logs/agent.log")
	if err != nil {
		return "", err
	}
	if _, err := m.EnsureExists(filepath.Dir(path)); err != nil {
		return "", err
	}
	return path, nil
}

// ConfigDir returns the configuration file directory.
func (m *Manager) ConfigDir() (string, error) {
	return m.dir(keyConfigDir, "configs")
}

// EnsureExists creates path recursively if absent and returns it unchanged
// for chaining. Pre-existing directories are left untouched.
func (m *Manager) EnsureExists(path string) (string, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", srvErrors.NewPathCreateError(path, err)
	}
	return path, nil
}

func (m *Manager) dir(key, def string) (string, error) {
	path, err := m.cfg.GetPath(key, def)
	if err != nil {
		return "", err
	}
	return m.EnsureExists(path)
}
