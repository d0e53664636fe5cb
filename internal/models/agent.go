package models

import (
	"fmt"

	"github.com/google/uuid"
)

type CollectorStatusType string

const (
	CollectorStatusReady      CollectorStatusType = "ready"
	CollectorStatusCollecting CollectorStatusType = "collecting"
	CollectorStatusCollected  CollectorStatusType = "collected"
	CollectorStatusError      CollectorStatusType = "error"
)

func ParseCollectorStatusType(s string) (CollectorStatusType, error) {
	switch CollectorStatusType(s) {
	case CollectorStatusReady, CollectorStatusCollecting,
		CollectorStatusCollected, CollectorStatusError:
		return CollectorStatusType(s), nil
	default:
		return "", fmt.Errorf("invalid collector status type: %s", s)
	}
}

// CollectorStatus holds the last observed state of one collector module.
type CollectorStatus struct {
	Collector string
	Status    CollectorStatusType
	Error     string
}

// AgentStatus is the aggregate operator-facing status of the agent.
type AgentStatus struct {
	ID         uuid.UUID
	Version    string
	Collectors []CollectorStatus
}
