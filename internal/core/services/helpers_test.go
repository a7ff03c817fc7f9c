package services

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/graphidx/internal/core/domain"
	"github.com/custodia-labs/graphidx/internal/core/ports/driven"
)

// calls records the order in which test workflows ran.
type calls struct {
	mu    sync.Mutex
	names []string
}

func (c *calls) add(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.names = append(c.names, name)
}

func (c *calls) list() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.names...)
}

// recordingWorkflow returns a workflow that records its invocation and returns result.
func recordingWorkflow(c *calls, name string, result any) driven.WorkflowFunc {
	return func(_ context.Context, _ *domain.Config, _ *driven.RunContext) (domain.WorkflowOutput, error) {
		c.add(name)
		return domain.WorkflowOutput{Result: result}, nil
	}
}

func stoppingWorkflow(c *calls, name string) driven.WorkflowFunc {
	return func(_ context.Context, _ *domain.Config, _ *driven.RunContext) (domain.WorkflowOutput, error) {
		c.add(name)
		return domain.WorkflowOutput{Result: name, Stop: true}, nil
	}
}

var errStage = errors.New("stage exploded")

func failingWorkflow(c *calls, name string) driven.WorkflowFunc {
	return func(_ context.Context, _ *domain.Config, _ *driven.RunContext) (domain.WorkflowOutput, error) {
		c.add(name)
		return domain.WorkflowOutput{}, errStage
	}
}

// eventRecorder implements driven.WorkflowCallbacks.
type eventRecorder struct {
	mu     sync.Mutex
	events []string
}

func (r *eventRecorder) add(e string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *eventRecorder) PipelineStart(_ []string)                 { r.add("pipeline_start") }
func (r *eventRecorder) PipelineEnd(_ []domain.PipelineRunResult) { r.add("pipeline_end") }
func (r *eventRecorder) WorkflowStart(name string, _ any)         { r.add("start:" + name) }
func (r *eventRecorder) WorkflowEnd(name string, _ any)           { r.add("end:" + name) }
func (r *eventRecorder) Progress(_ driven.Progress)               {}

func (r *eventRecorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}
