// Package splitters provides the text-splitting primitives used by chunking.
package splitters

import (
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/graphidx/internal/core/domain"
	"github.com/custodia-labs/graphidx/internal/core/ports/driven"
)

// BuilderFunc creates a TextSplitter from the chunking configuration.
type BuilderFunc func(cfg domain.ChunkingConfig) (driven.TextSplitter, error)

// Registry maps strategy names to their builders.
type Registry struct {
	mu       sync.RWMutex
	builders map[string]BuilderFunc
}

var _ driven.SplitterFactory = (*Registry)(nil)

// NewRegistry creates an empty splitter registry.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[string]BuilderFunc),
	}
}

// Register adds a splitter builder. A later registration under the same
// strategy replaces the earlier one.
func (r *Registry) Register(strategy domain.ChunkStrategy, builder BuilderFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builders[string(strategy)] = builder
}

// Build creates the splitter selected by cfg.Strategy.
// Returns domain.ErrUnknownStrategy if the strategy is not registered.
func (r *Registry) Build(cfg domain.ChunkingConfig) (driven.TextSplitter, error) {
	r.mu.RLock()
	builder, ok := r.builders[string(cfg.Strategy)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownStrategy, cfg.Strategy)
	}
	return builder(cfg)
}

// Has returns true if a splitter is registered for the strategy.
func (r *Registry) Has(strategy domain.ChunkStrategy) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.builders[string(strategy)]
	return ok
}

// Names returns all registered strategy names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
