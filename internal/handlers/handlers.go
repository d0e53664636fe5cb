package handlers

import (
	"github.com/google/uuid"

	"github.com/medialens/collector/internal/config"
	"github.com/medialens/collector/internal/keywords"
	"github.com/medialens/collector/internal/services"
)

type Handler struct {
	agentID    uuid.UUID
	version    string
	cfg        *config.Manager
	resolver   *keywords.Resolver
	collection *services.Collection
}

func New(agentID uuid.UUID, version string, cfg *config.Manager, resolver *keywords.Resolver, collection *services.Collection) *Handler {
	return &Handler{
		agentID:    agentID,
		version:    version,
		cfg:        cfg,
		resolver:   resolver,
		collection: collection,
	}
}
