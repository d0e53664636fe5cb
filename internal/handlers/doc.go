// Package handlers implements the HTTP API layer for the collector agent.
//
// Handlers delegate to the configuration engine and the services layer and
// focus on request validation, response formatting, and HTTP semantics.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                     HTTP Request (Gin)                          │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Handler (this package)                     │
//	│  - Request validation                                           │
//	│  - Parameter parsing                                            │
//	│  - Error mapping to HTTP status codes                           │
//	│  - Model-to-API conversion                                      │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│    ConfigManager │ keywords.Resolver │ services.Collection      │
//	└─────────────────────────────────────────────────────────────────┘
//
// # Endpoints
//
//	┌────────┬────────────────────────────────┬──────────────────────────────┐
//	│ Method │ Path                           │ Purpose                      │
//	├────────┼────────────────────────────────┼──────────────────────────────┤
//	│ GET    │ /status                        │ Agent + collector statuses   │
//	│ GET    │ /config                        │ Full resolved tree           │
//	│ GET    │ /config/value?key=a.b.c        │ One resolved value           │
//	│ POST   │ /config/reload                 │ Atomic rebuild of the tree   │
//	│ GET    │ /targets/{t}/keywords          │ Resolved keyword list        │
//	│ POST   │ /targets/{t}/collect           │ Dispatch collection runs     │
//	└────────┴────────────────────────────────┴──────────────────────────────┘
//
// The Handler implements v1.ServerInterface, registered via:
//
//	v1.RegisterHandlers(routerGroup, handler)
package handlers
