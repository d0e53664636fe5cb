package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/medialens/collector/internal/server/middlewares"
)

const shutdownTimeout = 10 * time.Second

type RegisterHandlerFn func(router *gin.RouterGroup)

// Server is the agent's HTTP server. Handlers are registered through a
// callback receiving the /api/v1 router group.
type Server struct {
	httpServer *http.Server
}

// NewServer builds the server. Mode "prod" switches gin to release mode;
// anything else runs in debug mode.
func NewServer(mode string, port int, registerHandlers RegisterHandlerFn) *Server {
	if mode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middlewares.Logger())
	router.Use(ginzap.RecoveryWithZap(zap.L().Named("http"), true))

	api := router.Group("/api/v1")
	registerHandlers(api)

	return &Server{
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		},
	}
}

// Start serves until the listener fails or Stop is called. Returns
// http.ErrServerClosed on graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	zap.S().Named("server").Infow("starting http server", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop drains in-flight requests and shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
