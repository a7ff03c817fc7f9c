package driving

import (
	"context"

	"github.com/custodia-labs/graphidx/internal/core/domain"
	"github.com/custodia-labs/graphidx/internal/core/ports/driven"
)

// BuildOptions controls one indexing run.
type BuildOptions struct {
	// Method names the pipeline to run.
	Method string

	// Callbacks are combined into a single fan-out sink. May be empty.
	Callbacks []driven.WorkflowCallbacks
}

// BuildReport summarises a finished run.
type BuildReport struct {
	RunID   string
	State   domain.RunnerState
	Results []domain.PipelineRunResult
	Stats   *domain.RunStats
}

// Indexer builds the knowledge index from configured input.
type Indexer interface {
	// BuildIndex runs the named pipeline to a terminal state and persists run state.
	// The report is returned even when the run fails.
	BuildIndex(ctx context.Context, cfg *domain.Config, opts BuildOptions) (*BuildReport, error)
}

// PipelineInfo describes one registered pipeline.
type PipelineInfo struct {
	Name      string
	Workflows []string
}

// PipelineCatalog lists what can be run.
type PipelineCatalog interface {
	// Pipelines returns registered pipelines sorted by name.
	Pipelines() []PipelineInfo

	// Workflows returns registered workflow names sorted.
	Workflows() []string
}
