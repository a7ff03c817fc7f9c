package services

import (
	"github.com/custodia-labs/graphidx/internal/core/ports/driven"
)

// Step is one resolved workflow of a pipeline.
type Step struct {
	Name string
	Run  driven.WorkflowFunc
}

// Pipeline is a concrete, ordered sequence of workflows.
// It holds the functions resolved when it was created; later registry changes
// do not affect it.
type Pipeline struct {
	steps []Step
}

// NewPipeline creates a pipeline that runs steps in the order provided.
func NewPipeline(steps ...Step) *Pipeline {
	return &Pipeline{
		steps: append([]Step(nil), steps...),
	}
}

// Steps returns the pipeline's steps in run order.
func (p *Pipeline) Steps() []Step {
	return append([]Step(nil), p.steps...)
}

// Names returns the workflow names in run order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.steps))
	for i, s := range p.steps {
		names[i] = s.Name
	}
	return names
}

// Remove drops every step named name.
func (p *Pipeline) Remove(name string) {
	kept := p.steps[:0]
	for _, s := range p.steps {
		if s.Name != name {
			kept = append(kept, s)
		}
	}
	p.steps = kept
}

// Len returns the number of steps.
func (p *Pipeline) Len() int {
	return len(p.steps)
}
