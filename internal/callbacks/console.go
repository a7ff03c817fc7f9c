package callbacks

import (
	"fmt"
	"io"
	"sync"

	"github.com/custodia-labs/graphidx/internal/core/domain"
	"github.com/custodia-labs/graphidx/internal/core/ports/driven"
)

// Console prints human-readable progress to a writer, usually the terminal.
// Progress lines are rewritten in place with a carriage return.
type Console struct {
	mu            sync.Mutex
	out           io.Writer
	current       string
	inProgress    bool
	quietProgress bool
}

// NewConsole creates a console callback writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// SetProgress enables or disables progress lines. Workflow start and end
// lines are always printed. Disable progress when out is not a terminal.
func (c *Console) SetProgress(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quietProgress = !enabled
}

// PipelineStart prints the workflows about to run.
func (c *Console) PipelineStart(names []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "Running %d workflows\n", len(names))
}

// PipelineEnd prints how many workflows ran.
func (c *Console) PipelineEnd(results []domain.PipelineRunResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.endLine()
	fmt.Fprintf(c.out, "Finished %d workflows\n", len(results))
}

// WorkflowStart prints the workflow name.
func (c *Console) WorkflowStart(name string, _ any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.endLine()
	c.current = name
	fmt.Fprintf(c.out, "- %s\n", name)
}

// WorkflowEnd prints that the workflow finished.
func (c *Console) WorkflowEnd(name string, _ any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.endLine()
	fmt.Fprintf(c.out, "  %s done\n", name)
	c.current = ""
}

// Progress prints a progress line unless progress output is disabled.
func (c *Console) Progress(p driven.Progress) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.quietProgress {
		return
	}
	if p.Total > 0 {
		fmt.Fprintf(c.out, "\r  %s %d/%d", p.Description, p.Completed, p.Total)
	} else {
		fmt.Fprintf(c.out, "\r  %s %d", p.Description, p.Completed)
	}
	c.inProgress = true
}

// endLine terminates a pending progress line. Caller holds mu.
func (c *Console) endLine() {
	if c.inProgress {
		fmt.Fprintln(c.out)
		c.inProgress = false
	}
}

var _ driven.WorkflowCallbacks = (*Console)(nil)
