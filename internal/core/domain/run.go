package domain

import (
	"time"
)

// Storage keys written alongside tables in the output storage.
const (
	// StateKey holds the RunState of the previous run.
	StateKey = "context.json"

	// StatsKey holds the RunStats of the most recent run.
	StatsKey = "stats.json"
)

// RunState is the mutable property bag shared by all workflows of a run.
// It is persisted under StateKey after the run so later incremental runs can read it.
//
// Keys are namespaced by the workflow that owns them, e.g. "create_base_text_units.groups".
// Values must be JSON-serialisable.
type RunState map[string]any

// Namespaced returns the sub-map owned by namespace, creating it if absent.
// Workflows that keep structured state should store it here rather than at the top level.
func (s RunState) Namespaced(namespace string) map[string]any {
	if sub, ok := s[namespace].(map[string]any); ok {
		return sub
	}
	sub := make(map[string]any)
	s[namespace] = sub
	return sub
}

// WorkflowStats records timing for one workflow.
type WorkflowStats struct {
	// Overall is the wall-clock duration in seconds.
	Overall float64 `json:"overall"`
}

// RunStats holds counters collected during one pipeline run.
type RunStats struct {
	RunID        string                   `json:"run_id"`
	StartedAt    time.Time                `json:"started_at"`
	TotalRuntime float64                  `json:"total_runtime"`
	NumDocuments int                      `json:"num_documents"`
	NumTextUnits int                      `json:"num_text_units"`
	Workflows    map[string]WorkflowStats `json:"workflows"`
}

// NewRunStats creates empty statistics for a run.
func NewRunStats(runID string, startedAt time.Time) *RunStats {
	return &RunStats{
		RunID:     runID,
		StartedAt: startedAt,
		Workflows: make(map[string]WorkflowStats),
	}
}

// RunnerState is the lifecycle state of a pipeline runner.
type RunnerState string

// Runner lifecycle states.
const (
	RunnerIdle      RunnerState = "idle"
	RunnerRunning   RunnerState = "running"
	RunnerCompleted RunnerState = "completed"
	RunnerFailed    RunnerState = "failed"
	RunnerStopped   RunnerState = "stopped"
)

// IsTerminal returns true for Completed, Failed and Stopped.
func (s RunnerState) IsTerminal() bool {
	return s == RunnerCompleted || s == RunnerFailed || s == RunnerStopped
}

// String returns the string representation.
func (s RunnerState) String() string {
	return string(s)
}

// WorkflowOutput is what a workflow function returns to the runner.
// It is transient and never persisted; workflows persist their tables themselves.
type WorkflowOutput struct {
	// Result is the workflow's primary output, usually the table it wrote.
	Result any

	// Stop asks the runner to halt without running the remaining workflows.
	Stop bool
}

// PipelineRunResult is the outcome of one workflow within a run.
type PipelineRunResult struct {
	Workflow string
	Result   any
}
