// Package server provides the HTTP server for the collector agent.
//
// The server uses the Gin web framework. Handlers are registered via a
// callback that receives a RouterGroup prefixed with /api/v1.
//
// # Server Modes
//
// Development Mode (mode = "dev"):
//   - Gin runs in debug mode
//
// Production Mode (mode = "prod"):
//   - Gin runs in release mode
//
// # Middleware
//
// The server applies two middleware to all API routes:
//
// Logger Middleware (middlewares.Logger):
//   - Logs method, path, query, IP, status code and latency per request
//   - Errors logged separately if present
//   - Uses zap structured logging with "http" logger name
//
// Recovery Middleware (ginzap.RecoveryWithZap):
//   - Recovers from panics in handlers
//   - Logs panic details with stack trace
//   - Returns 500 Internal Server Error
//
// # Server Lifecycle
//
// Creation:
//
//	srv := server.NewServer(mode, port, func(router *gin.RouterGroup) {
//	    v1.RegisterHandlers(router, handler)
//	})
//
// Starting:
//
//	// Blocks until error or shutdown
//	err := srv.Start(ctx)
//
// Stopping:
//
//	srv.Stop(ctx)
//
// Performs graceful shutdown, waiting for in-flight requests to complete.
package server
