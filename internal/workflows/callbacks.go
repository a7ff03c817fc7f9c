package workflows

import (
	"github.com/custodia-labs/graphidx/internal/callbacks"
	"github.com/custodia-labs/graphidx/internal/core/ports/driven"
)

// callbacksOf returns the run's callback sink, or a no-op sink if none is set.
func callbacksOf(rc *driven.RunContext) driven.WorkflowCallbacks {
	if rc.Callbacks == nil {
		return callbacks.Noop{}
	}
	return rc.Callbacks
}
