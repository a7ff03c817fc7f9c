package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunState_Namespaced(t *testing.T) {
	state := RunState{}

	sub := state.Namespaced("create_base_text_units")
	sub["groups"] = 3

	again := state.Namespaced("create_base_text_units")
	assert.Equal(t, 3, again["groups"])
	assert.Len(t, state, 1)
}

func TestRunState_Namespaced_ReplacesNonMap(t *testing.T) {
	state := RunState{"ns": "scalar"}

	sub := state.Namespaced("ns")

	assert.NotNil(t, sub)
	assert.IsType(t, map[string]any{}, state["ns"])
}

func TestNewRunStats(t *testing.T) {
	now := time.Now()
	stats := NewRunStats("run-1", now)

	assert.Equal(t, "run-1", stats.RunID)
	assert.Equal(t, now, stats.StartedAt)
	assert.NotNil(t, stats.Workflows)
	assert.Zero(t, stats.NumDocuments)
}

func TestRunnerState_IsTerminal(t *testing.T) {
	tests := []struct {
		state    RunnerState
		terminal bool
	}{
		{RunnerIdle, false},
		{RunnerRunning, false},
		{RunnerCompleted, true},
		{RunnerFailed, true},
		{RunnerStopped, true},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			assert.Equal(t, tt.terminal, tt.state.IsTerminal())
		})
	}
}
