package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/medialens/collector/internal/config"
	"github.com/medialens/collector/internal/keywords"
	"github.com/medialens/collector/internal/models"
	"github.com/medialens/collector/internal/paths"
	"github.com/medialens/collector/pkg/workpool"
)

// CollectRequest is everything a collector module needs for one run.
type CollectRequest struct {
	Target    string
	Collector string
	Keywords  []string
	OutputDir string
}

// CollectorFunc executes one collection run. Implementations live outside
// this repository; the default runner records a run manifest so the
// pipeline is observable without a real collector attached.
type CollectorFunc func(ctx context.Context, req CollectRequest) error

// Collection orchestrates collection runs: it resolves which collectors are
// enabled for each source type, which keywords apply to the target, and
// dispatches the runs to the worker pool.
type Collection struct {
	cfg      *config.Manager
	resolver *keywords.Resolver
	paths    *paths.Manager
	pool     *workpool.Pool

	// mu guards runners and statuses; both are touched from pool goroutines.
	mu       sync.Mutex
	runners  map[string]CollectorFunc
	statuses map[string]models.CollectorStatus
}

func NewCollectionService(cfg *config.Manager, resolver *keywords.Resolver, pm *paths.Manager, pool *workpool.Pool) *Collection {
	return &Collection{
		cfg:      cfg,
		resolver: resolver,
		paths:    pm,
		pool:     pool,
		runners:  map[string]CollectorFunc{},
		statuses: map[string]models.CollectorStatus{},
	}
}

// Register binds a collector module name to its implementation. Unregistered
// collectors fall back to the manifest runner. Safe to call while runs are in
// flight; a run resolves its runner when it executes.
func (s *Collection) Register(collector string, fn CollectorFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runners[collector] = fn
}

// Collect schedules collection runs for target across every mapped source
// type and returns the number of runs dispatched. Runs execute
// asynchronously; progress is visible through Statuses.
func (s *Collection) Collect(ctx context.Context, target string) (int, error) {
	outputDir, err := s.paths.DataRaw()
	if err != nil {
		return 0, err
	}
	timeoutSec, err := s.cfg.GetInt("collectors.request_timeout_seconds", 30)
	if err != nil {
		return 0, err
	}
	timeout := time.Duration(timeoutSec) * time.Second

	log := zap.S().Named("collection")
	dispatched := 0
	for _, sourceType := range s.resolver.SourceTypes() {
		for _, collector := range s.resolver.CollectorsForSource(sourceType) {
			req := CollectRequest{
				Target:    target,
				Collector: collector,
				Keywords:  s.resolver.Keywords(target, sourceType),
				OutputDir: outputDir,
			}
			log.Debugw("dispatching collection run",
				"target", target,
				"source_type", sourceType,
				"collector", collector,
				"keywords", req.Keywords,
			)
			s.dispatch(req, timeout)
			dispatched++
		}
	}
	return dispatched, nil
}

func (s *Collection) dispatch(req CollectRequest, timeout time.Duration) {
	s.setStatus(req.Collector, models.CollectorStatusCollecting, "")

	s.pool.Submit(func(ctx context.Context) (any, error) {
		runCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		err := s.runner(req.Collector)(runCtx, req)
		if err != nil {
			s.setStatus(req.Collector, models.CollectorStatusError, err.Error())
			zap.S().Named("collection").Errorw("collection run failed",
				"target", req.Target,
				"collector", req.Collector,
				"error", err,
			)
			return nil, err
		}
		s.setStatus(req.Collector, models.CollectorStatusCollected, "")
		return req, nil
	})
}

func (s *Collection) runner(collector string) CollectorFunc {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fn, ok := s.runners[collector]; ok {
		return fn
	}
	return writeRunManifest
}

// Statuses returns the last observed state of every collector that has been
// dispatched at least once, ordered by collector name.
func (s *Collection) Statuses() []models.CollectorStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.CollectorStatus, 0, len(s.statuses))
	for _, status := range s.statuses {
		out = append(out, status)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Collector < out[j].Collector })
	return out
}

func (s *Collection) setStatus(collector string, status models.CollectorStatusType, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[collector] = models.CollectorStatus{
		Collector: collector,
		Status:    status,
		Error:     errMsg,
	}
}

// writeRunManifest records a collection run as a JSON document in the raw
// data directory, one file per (target, collector, timestamp).
func writeRunManifest(ctx context.Context, req CollectRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	manifest := map[string]any{
		"target":       req.Target,
		"collector":    req.Collector,
		"keywords":     req.Keywords,
		"collected_at": time.Now().UTC().Format(time.RFC3339),
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return err
	}
	name := fmt.Sprintf("%s_%s_%d.json",
		keywords.NormalizeTarget(req.Target), req.Collector, time.Now().UnixNano())
	return os.WriteFile(filepath.Join(req.OutputDir, name), data, 0o644)
}
