package services

import (
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/graphidx/internal/core/domain"
	"github.com/custodia-labs/graphidx/internal/core/ports/driven"
)

// Ensure WorkflowRegistry implements the interface.
var _ driven.WorkflowLookup = (*WorkflowRegistry)(nil)

// WorkflowRegistry maps workflow names to workflow functions.
// It is populated at start-up and read thereafter; all methods are safe for
// concurrent use.
type WorkflowRegistry struct {
	mu        sync.RWMutex
	workflows map[string]driven.WorkflowFunc
}

// NewWorkflowRegistry creates an empty workflow registry.
func NewWorkflowRegistry() *WorkflowRegistry {
	return &WorkflowRegistry{
		workflows: make(map[string]driven.WorkflowFunc),
	}
}

// Register adds a workflow under name.
// Registering an existing name replaces the earlier workflow.
func (r *WorkflowRegistry) Register(name string, fn driven.WorkflowFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.workflows[name] = fn
}

// RegisterAll registers every workflow in the mapping.
func (r *WorkflowRegistry) RegisterAll(workflows map[string]driven.WorkflowFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for name, fn := range workflows {
		r.workflows[name] = fn
	}
}

// Resolve returns the workflow registered under name.
func (r *WorkflowRegistry) Resolve(name string) (driven.WorkflowFunc, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.workflows[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownWorkflow, name)
	}
	return fn, nil
}

// Has returns true if a workflow is registered under name.
func (r *WorkflowRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.workflows[name]
	return ok
}

// Names returns all registered workflow names, sorted.
func (r *WorkflowRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.workflows))
	for name := range r.workflows {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
