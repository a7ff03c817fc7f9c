// Package storage provides the storage registry and its built-in backends.
package storage

import (
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/graphidx/internal/core/domain"
	"github.com/custodia-labs/graphidx/internal/core/ports/driven"
)

// BuilderFunc creates a Storage from generic options.
// Options are backend-specific settings, e.g. base_dir.
type BuilderFunc func(opts map[string]any) (driven.Storage, error)

// Registry maps storage type names to their builders.
// It is populated at start-up and read thereafter; reads are safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	builders map[string]BuilderFunc
}

var _ driven.StorageFactory = (*Registry)(nil)

// NewRegistry creates a new empty storage registry.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[string]BuilderFunc),
	}
}

// Register adds a storage builder under typeName.
// Registering an existing name replaces the earlier builder.
func (r *Registry) Register(typeName string, builder BuilderFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builders[typeName] = builder
}

// Create builds a storage of the given type.
// Returns domain.ErrUnknownStorageType if typeName was never registered.
func (r *Registry) Create(typeName string, opts map[string]any) (driven.Storage, error) {
	r.mu.RLock()
	builder, ok := r.builders[typeName]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownStorageType, typeName)
	}
	if opts == nil {
		opts = map[string]any{}
	}
	return builder(opts)
}

// Supports returns true if a storage type is registered under typeName.
func (r *Registry) Supports(typeName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.builders[typeName]
	return ok
}

// Types returns all registered storage type names, sorted.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
