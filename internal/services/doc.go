// Package services implements the business logic layer for the collector agent.
//
// Services sit between HTTP handlers and the configuration/resolution
// packages. The only service today is Collection.
//
// # Service Dependency Graph
//
//	Handlers (HTTP endpoints)
//	    │
//	    ▼
//	Collection ──► ConfigManager, keywords.Resolver, paths.Manager, workpool.Pool
//
// # Collection
//
// Collection orchestrates collection runs for a target. For each source type
// with at least one mapped collector it resolves the keyword list for the
// (target, source type) pair, then submits one run per collector module to
// the worker pool.
//
// Collector State:
//
//	┌───────┐    ┌────────────┐    ┌───────────┐
//	│ Ready │───►│ Collecting │───►│ Collected │
//	└───────┘    └────────────┘    └───────────┘
//	                   │
//	                   ▼
//	              ┌───────┐
//	              │ Error │
//	              └───────┘
//
// Key behaviors:
//   - Runs execute asynchronously; Collect returns after dispatch
//   - Each run is bounded by collectors.request_timeout_seconds
//   - Collector implementations are pluggable via Register; unregistered
//     collectors fall back to a manifest writer that records the run as a
//     JSON document in the raw data directory
//   - Per-collector status is observable through Statuses
//
// Usage:
//
//	collection := services.NewCollectionService(cfg, resolver, pathMgr, pool)
//	dispatched, err := collection.Collect(ctx, "Emir of Qatar")
//	statuses := collection.Statuses()
//
// # Thread Safety
//
// Collection state is protected by sync.Mutex; run execution is coordinated
// by the worker pool and per-run context cancellation.
package services
