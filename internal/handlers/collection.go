package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/medialens/collector/api/v1"
	"github.com/medialens/collector/internal/models"
)

// GetStatus returns the agent identity and per-collector statuses
// (GET /status)
func (h *Handler) GetStatus(c *gin.Context) {
	status := models.AgentStatus{
		ID:         h.agentID,
		Version:    h.version,
		Collectors: h.collection.Statuses(),
	}
	c.JSON(http.StatusOK, v1.NewAgentStatusFromModel(status))
}

// GetTargetKeywords returns the resolved keyword list for a target
// (GET /targets/{target}/keywords?collector=youtube)
func (h *Handler) GetTargetKeywords(c *gin.Context, target string) {
	collector := c.Query("collector")
	if collector == "" {
		c.JSON(http.StatusBadRequest, v1.ErrorResponse{Error: "missing collector parameter"})
		return
	}
	c.JSON(http.StatusOK, v1.KeywordsResponse{
		Target:    target,
		Collector: collector,
		Keywords:  h.resolver.Keywords(target, collector),
	})
}

// StartCollection dispatches collection runs for a target
// (POST /targets/{target}/collect)
func (h *Handler) StartCollection(c *gin.Context, target string) {
	dispatched, err := h.collection.Collect(c.Request.Context(), target)
	if err != nil {
		zap.S().Named("collection_handler").Errorw("failed to start collection",
			"target", target, "error", err)
		c.JSON(http.StatusInternalServerError, v1.ErrorResponse{Error: "failed to start collection"})
		return
	}
	c.JSON(http.StatusAccepted, v1.CollectResponse{Target: target, Dispatched: dispatched})
}
