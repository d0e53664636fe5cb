package v1

import (
	"github.com/gin-gonic/gin"
)

// ServerInterface is implemented by the handlers package.
type ServerInterface interface {
	GetStatus(c *gin.Context)
	GetConfigValue(c *gin.Context)
	DumpConfig(c *gin.Context)
	ReloadConfig(c *gin.Context)
	GetTargetKeywords(c *gin.Context, target string)
	StartCollection(c *gin.Context, target string)
}

// RegisterHandlers wires the operator API onto the /api/v1 router group.
func RegisterHandlers(router *gin.RouterGroup, si ServerInterface) {
	router.GET("/status", si.GetStatus)
	router.GET("/config", si.DumpConfig)
	router.GET("/config/value", si.GetConfigValue)
	router.POST("/config/reload", si.ReloadConfig)
	router.GET("/targets/:target/keywords", func(c *gin.Context) {
		si.GetTargetKeywords(c, c.Param("target"))
	})
	router.POST("/targets/:target/collect", func(c *gin.Context) {
		si.StartCollection(c, c.Param("target"))
	})
}
