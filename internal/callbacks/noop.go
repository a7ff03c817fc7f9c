// Package callbacks provides WorkflowCallbacks implementations.
package callbacks

import (
	"github.com/custodia-labs/graphidx/internal/core/domain"
	"github.com/custodia-labs/graphidx/internal/core/ports/driven"
)

// Noop ignores every notification. It is used when the caller supplies no callbacks.
type Noop struct{}

// PipelineStart does nothing.
func (Noop) PipelineStart(_ []string) {}

// PipelineEnd does nothing.
func (Noop) PipelineEnd(_ []domain.PipelineRunResult) {}

// WorkflowStart does nothing.
func (Noop) WorkflowStart(_ string, _ any) {}

// WorkflowEnd does nothing.
func (Noop) WorkflowEnd(_ string, _ any) {}

// Progress does nothing.
func (Noop) Progress(_ driven.Progress) {}

// Verify interface compliance.
var _ driven.WorkflowCallbacks = Noop{}
