package driven

import "github.com/custodia-labs/graphidx/internal/core/domain"

// Progress reports how far a workflow has advanced.
type Progress struct {
	// Description names the unit of work, e.g. "chunk groups".
	Description string

	// Completed is the number of finished items.
	Completed int

	// Total is the number of items, or 0 if unknown.
	Total int
}

// WorkflowCallbacks receives pipeline lifecycle notifications.
// Implementations must not block for long; they run on the pipeline's goroutine.
type WorkflowCallbacks interface {
	// PipelineStart is called once before the first workflow runs.
	PipelineStart(names []string)

	// PipelineEnd is called once after the run reaches a terminal state.
	PipelineEnd(results []domain.PipelineRunResult)

	// WorkflowStart is called before a workflow runs. instance is optional.
	WorkflowStart(name string, instance any)

	// WorkflowEnd is called after a workflow returns successfully.
	WorkflowEnd(name string, instance any)

	// Progress reports progress within the current workflow.
	Progress(p Progress)
}
