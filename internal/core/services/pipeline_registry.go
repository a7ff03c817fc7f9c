package services

import (
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/graphidx/internal/core/domain"
	"github.com/custodia-labs/graphidx/internal/core/ports/driven"
	"github.com/custodia-labs/graphidx/internal/core/ports/driving"
	"github.com/custodia-labs/graphidx/internal/logger"
)

// PipelineRegistry maps pipeline names to ordered workflow names.
// Names are resolved against the workflow lookup when a pipeline is created,
// not when it is registered, so a workflow can be replaced without
// re-registering the pipelines that use it.
type PipelineRegistry struct {
	lookup driven.WorkflowLookup

	mu        sync.RWMutex
	pipelines map[string][]string
}

// NewPipelineRegistry creates an empty pipeline registry resolving against lookup.
func NewPipelineRegistry(lookup driven.WorkflowLookup) *PipelineRegistry {
	return &PipelineRegistry{
		lookup:    lookup,
		pipelines: make(map[string][]string),
	}
}

// RegisterPipeline adds a pipeline under name.
// Registering an existing name replaces the earlier pipeline.
func (r *PipelineRegistry) RegisterPipeline(name string, workflows []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pipelines[name] = append([]string(nil), workflows...)
}

// Has returns true if a pipeline is registered under name.
func (r *PipelineRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.pipelines[name]
	return ok
}

// WorkflowNames returns the workflow names of the named pipeline.
func (r *PipelineRegistry) WorkflowNames(name string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names, ok := r.pipelines[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownPipeline, name)
	}
	return append([]string(nil), names...), nil
}

// CreatePipeline resolves the named pipeline's workflows now.
// Returns domain.ErrUnknownPipeline if name is not registered and
// domain.ErrUnknownWorkflow if any workflow it references is not.
func (r *PipelineRegistry) CreatePipeline(name string) (*Pipeline, error) {
	names, err := r.WorkflowNames(name)
	if err != nil {
		return nil, err
	}
	logger.Info("creating pipeline %s with workflows: %v", name, names)
	return r.Resolve(names)
}

// Resolve builds a pipeline from workflow names without registering it.
func (r *PipelineRegistry) Resolve(names []string) (*Pipeline, error) {
	steps := make([]Step, 0, len(names))
	for _, n := range names {
		fn, err := r.lookup.Resolve(n)
		if err != nil {
			return nil, err
		}
		steps = append(steps, Step{Name: n, Run: fn})
	}
	return NewPipeline(steps...), nil
}

// Pipelines returns every registered pipeline, sorted by name.
func (r *PipelineRegistry) Pipelines() []driving.PipelineInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	infos := make([]driving.PipelineInfo, 0, len(r.pipelines))
	for name, workflows := range r.pipelines {
		infos = append(infos, driving.PipelineInfo{
			Name:      name,
			Workflows: append([]string(nil), workflows...),
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos
}
