// Package v1 defines the operator-facing API types for the collector agent.
package v1

import (
	"github.com/medialens/collector/internal/models"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// ConfigValueResponse carries one resolved configuration value. Present is
// false when the key is absent from every source.
type ConfigValueResponse struct {
	Key     string `json:"key"`
	Value   any    `json:"value,omitempty"`
	Present bool   `json:"present"`
}

type ConfigDumpResponse struct {
	Config map[string]any `json:"config"`
}

type ReloadResponse struct {
	Status string `json:"status"`
}

type CollectorStatus struct {
	Collector string `json:"collector"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}

type AgentStatus struct {
	Id         string            `json:"id"`
	Version    string            `json:"version"`
	Collectors []CollectorStatus `json:"collectors"`
}

type KeywordsResponse struct {
	Target    string   `json:"target"`
	Collector string   `json:"collector"`
	Keywords  []string `json:"keywords"`
}

type CollectResponse struct {
	Target     string `json:"target"`
	Dispatched int    `json:"dispatched"`
}

// NewAgentStatusFromModel converts a models.AgentStatus to its API form.
func NewAgentStatusFromModel(m models.AgentStatus) AgentStatus {
	collectors := make([]CollectorStatus, 0, len(m.Collectors))
	for _, c := range m.Collectors {
		collectors = append(collectors, CollectorStatus{
			Collector: c.Collector,
			Status:    string(c.Status),
			Error:     c.Error,
		})
	}
	return AgentStatus{
		Id:         m.ID.String(),
		Version:    m.Version,
		Collectors: collectors,
	}
}
