// Package keywords resolves per-target keyword lists and source-to-collector
// mappings on top of the configuration tree. Resolution is a pure function
// of the current tree: no I/O, no side effects.
package keywords

import (
	"fmt"
	"strings"

	"github.com/medialens/collector/internal/config"
)

const sourceMappingKey = "collectors.source_to_collector_mapping"

// fallbacks is the compiled-in last resort per collector, used only when no
// source configures a non-empty list for the target or the default.
var fallbacks = map[string][]string{
	"twitter":   {"qatar", "doha"},
	"youtube":   {"qatar"},
	"news":      {"qatar"},
	"instagram": {"qatar"},
}

// defaultSourceMapping maps a source type to the collector modules that
// gather it. Overridable as a whole through the configuration tree.
var defaultSourceMapping = map[string]any{
	"twitter":   []any{"twitter_api", "twitter_scraper"},
	"youtube":   []any{"youtube_api"},
	"news":      []any{"news_rss", "news_scraper"},
	"instagram": []any{"instagram_scraper"},
}

// Resolver answers keyword and collector-mapping queries for collection
// targets.
type Resolver struct {
	cfg *config.Manager
}

func NewResolver(cfg *config.Manager) *Resolver {
	return &Resolver{cfg: cfg}
}

// NormalizeTarget converts a display name ("Emir of Qatar") into its
// configuration key segment ("emir_of_qatar").
func NormalizeTarget(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// Keywords resolves the keyword list for a (target, collector) pair. The
// candidate keys are probed in fixed order; the first that resolves to a
// non-empty list wins. An explicitly configured empty list does not stop the
// chain: probing continues as if the key were absent, so "no keywords"
// cannot be expressed through an empty list. If every candidate is empty or
// absent, the compiled-in fallback for the collector applies.
func (r *Resolver) Keywords(target, collector string) []string {
	candidates := []string{
		fmt.Sprintf("collectors.keywords.%s.%s", NormalizeTarget(target), collector),
		fmt.Sprintf("collectors.keywords.default.%s", collector),
		fmt.Sprintf("target_config.sources.%s.keywords", collector),
		"target_config.keywords",
	}
	for _, key := range candidates {
		if list := r.cfg.GetList(key, nil); len(list) > 0 {
			return list
		}
	}
	return fallbacks[collector]
}

// CollectorsForSource returns the collector modules responsible for a source
// type. An unmapped source type yields an empty list, not an error: an
// administrator disables a source type by leaving it out of the mapping.
func (r *Resolver) CollectorsForSource(sourceType string) []string {
	mapping := r.cfg.GetDict(sourceMappingKey, defaultSourceMapping)
	raw, ok := mapping[sourceType]
	if !ok {
		return nil
	}
	switch v := raw.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// SourceTypes lists the source types with at least one mapped collector.
func (r *Resolver) SourceTypes() []string {
	mapping := r.cfg.GetDict(sourceMappingKey, defaultSourceMapping)
	out := make([]string, 0, len(mapping))
	for sourceType := range mapping {
		if len(r.CollectorsForSource(sourceType)) > 0 {
			out = append(out, sourceType)
		}
	}
	return out
}
