package callbacks

import (
	"strings"

	"github.com/custodia-labs/graphidx/internal/core/domain"
	"github.com/custodia-labs/graphidx/internal/core/ports/driven"
	"github.com/custodia-labs/graphidx/internal/logger"
)

// Logging writes lifecycle notifications to the package logger.
type Logging struct {
	log *logger.Logger
}

// NewLogging creates a logging callback under the "pipeline" component.
func NewLogging() *Logging {
	return &Logging{log: logger.For("pipeline")}
}

// PipelineStart logs the workflow names at info level.
func (l *Logging) PipelineStart(names []string) {
	l.log.Info("starting pipeline with workflows: %s", strings.Join(names, ", "))
}

// PipelineEnd logs how many workflows ran.
func (l *Logging) PipelineEnd(results []domain.PipelineRunResult) {
	l.log.Info("pipeline complete: %d workflows ran", len(results))
}

// WorkflowStart logs the workflow name.
func (l *Logging) WorkflowStart(name string, _ any) {
	l.log.Info("workflow started: %s", name)
}

// WorkflowEnd logs the workflow name.
func (l *Logging) WorkflowEnd(name string, _ any) {
	l.log.Info("workflow completed: %s", name)
}

// Progress logs at debug level.
func (l *Logging) Progress(p driven.Progress) {
	if p.Total > 0 {
		l.log.Debug("%s progress: %d/%d", p.Description, p.Completed, p.Total)
		return
	}
	l.log.Debug("%s progress: %d", p.Description, p.Completed)
}

var _ driven.WorkflowCallbacks = (*Logging)(nil)
