package driven

import (
	"context"

	"github.com/custodia-labs/graphidx/internal/core/domain"
)

// RunContext is threaded by reference through every workflow of one pipeline run.
// It is created once per run, mutated by workflows, and discarded at run end
// except for State, which the caller persists.
type RunContext struct {
	// RunID uniquely identifies this run.
	RunID string

	// Stats collects counters and timings.
	Stats *domain.RunStats

	// InputStorage holds raw input documents.
	InputStorage Storage

	// OutputStorage holds tables written by workflows.
	OutputStorage Storage

	// PreviousStorage holds the previous run's output in update mode.
	PreviousStorage Storage

	// Cache holds previous LLM responses.
	Cache Cache

	// Callbacks receives lifecycle notifications.
	Callbacks WorkflowCallbacks

	// State is the run's property bag.
	State domain.RunState
}

// WorkflowFunc is one named processing stage.
// A workflow reads its inputs from, and writes its outputs to, the run's storages by
// table name; the returned output is informational only.
type WorkflowFunc func(ctx context.Context, cfg *domain.Config, rc *RunContext) (domain.WorkflowOutput, error)

// WorkflowLookup resolves workflow names to functions.
type WorkflowLookup interface {
	// Resolve returns the workflow registered under name.
	// Returns domain.ErrUnknownWorkflow if none is registered.
	Resolve(name string) (WorkflowFunc, error)
}
