package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/graphidx/internal/callbacks"
	"github.com/custodia-labs/graphidx/internal/core/domain"
	"github.com/custodia-labs/graphidx/internal/core/ports/driven"
)

// RunContextParams are the collaborators of one pipeline run.
type RunContextParams struct {
	InputStorage    driven.Storage
	OutputStorage   driven.Storage
	PreviousStorage driven.Storage
	Cache           driven.Cache
	Callbacks       []driven.WorkflowCallbacks
	State           domain.RunState
}

// CreateRunContext assembles the context threaded through every workflow of a run.
// Callbacks are combined into one fan-out sink, a nil State becomes an empty one
// and the stats are fresh. It performs no I/O.
func CreateRunContext(p RunContextParams) *driven.RunContext {
	state := p.State
	if state == nil {
		state = domain.RunState{}
	}
	runID := uuid.New().String()

	return &driven.RunContext{
		RunID:           runID,
		Stats:           domain.NewRunStats(runID, time.Now().UTC()),
		InputStorage:    p.InputStorage,
		OutputStorage:   p.OutputStorage,
		PreviousStorage: p.PreviousStorage,
		Cache:           p.Cache,
		Callbacks:       callbacks.Combine(p.Callbacks),
		State:           state,
	}
}
