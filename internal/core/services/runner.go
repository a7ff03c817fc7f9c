package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/graphidx/internal/callbacks"
	"github.com/custodia-labs/graphidx/internal/core/domain"
	"github.com/custodia-labs/graphidx/internal/core/ports/driven"
	"github.com/custodia-labs/graphidx/internal/logger"
)

// Runner executes a pipeline once.
//
// It moves from Idle to Running when Run is called, then to Completed when every
// step has run, Stopped when a step sets WorkflowOutput.Stop, or Failed when a
// step returns an error or ctx is cancelled between steps. Terminal states are
// final; running again returns domain.ErrRunnerUsed.
type Runner struct {
	pipeline *Pipeline

	mu      sync.Mutex
	state   domain.RunnerState
	results []domain.PipelineRunResult
}

// NewRunner creates an idle runner for pipeline.
func NewRunner(pipeline *Pipeline) *Runner {
	return &Runner{
		pipeline: pipeline,
		state:    domain.RunnerIdle,
	}
}

// State returns the runner's current state.
func (r *Runner) State() domain.RunnerState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Results returns the results accumulated so far, one per completed step.
func (r *Runner) Results() []domain.PipelineRunResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.PipelineRunResult(nil), r.results...)
}

func (r *Runner) setState(s domain.RunnerState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = s
}

// Run invokes each step in order with cfg and rc.
// Results of the steps that completed are returned even when err is non-nil.
// Per-step timings and the total runtime are recorded in rc.Stats.
func (r *Runner) Run(ctx context.Context, cfg *domain.Config, rc *driven.RunContext) ([]domain.PipelineRunResult, error) {
	r.mu.Lock()
	if r.state != domain.RunnerIdle {
		r.mu.Unlock()
		return nil, domain.ErrRunnerUsed
	}
	r.state = domain.RunnerRunning
	r.mu.Unlock()

	cb := rc.Callbacks
	if cb == nil {
		cb = callbacks.Noop{}
	}
	if rc.Stats == nil {
		rc.Stats = domain.NewRunStats(rc.RunID, time.Now().UTC())
	}
	if rc.Stats.Workflows == nil {
		rc.Stats.Workflows = make(map[string]domain.WorkflowStats)
	}

	started := time.Now()
	cb.PipelineStart(r.pipeline.Names())

	final, err := r.runSteps(ctx, cfg, rc, cb)

	rc.Stats.TotalRuntime = time.Since(started).Seconds()
	r.setState(final)
	results := r.Results()
	cb.PipelineEnd(results)

	logger.Debug("pipeline %s after %d workflows", final, len(results))
	return results, err
}

func (r *Runner) runSteps(
	ctx context.Context,
	cfg *domain.Config,
	rc *driven.RunContext,
	cb driven.WorkflowCallbacks,
) (domain.RunnerState, error) {
	for _, step := range r.pipeline.Steps() {
		if err := ctx.Err(); err != nil {
			return domain.RunnerFailed, err
		}

		logger.Section(step.Name)
		cb.WorkflowStart(step.Name, nil)

		started := time.Now()
		out, err := step.Run(ctx, cfg, rc)
		if err != nil {
			logger.Error("error executing workflow %s: %v", step.Name, err)
			return domain.RunnerFailed, fmt.Errorf("workflow %s: %w", step.Name, err)
		}
		rc.Stats.Workflows[step.Name] = domain.WorkflowStats{Overall: time.Since(started).Seconds()}

		r.mu.Lock()
		r.results = append(r.results, domain.PipelineRunResult{Workflow: step.Name, Result: out.Result})
		r.mu.Unlock()

		cb.WorkflowEnd(step.Name, nil)

		if out.Stop {
			logger.Info("workflow %s requested stop", step.Name)
			return domain.RunnerStopped, nil
		}
	}
	return domain.RunnerCompleted, nil
}
