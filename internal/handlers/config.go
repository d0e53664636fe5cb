package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/medialens/collector/api/v1"
)

// GetConfigValue returns one resolved configuration value
// (GET /config/value?key=a.b.c)
func (h *Handler) GetConfigValue(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, v1.ErrorResponse{Error: "missing key parameter"})
		return
	}

	// A sentinel default distinguishes "absent" from "present with nil".
	sentinel := struct{}{}
	value := h.cfg.Get(key, sentinel)
	if value == any(sentinel) {
		c.JSON(http.StatusOK, v1.ConfigValueResponse{Key: key, Present: false})
		return
	}
	c.JSON(http.StatusOK, v1.ConfigValueResponse{Key: key, Value: value, Present: true})
}

// DumpConfig returns the whole resolved configuration tree
// (GET /config)
func (h *Handler) DumpConfig(c *gin.Context) {
	c.JSON(http.StatusOK, v1.ConfigDumpResponse{Config: h.cfg.Dump()})
}

// ReloadConfig rebuilds the configuration tree from all sources
// (POST /config/reload)
func (h *Handler) ReloadConfig(c *gin.Context) {
	if err := h.cfg.Reload(c.Request.Context()); err != nil {
		zap.S().Named("config_handler").Errorw("failed to reload configuration", "error", err)
		c.JSON(http.StatusInternalServerError, v1.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, v1.ReloadResponse{Status: "reloaded"})
}
