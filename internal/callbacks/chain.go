package callbacks

import (
	"github.com/custodia-labs/graphidx/internal/core/domain"
	"github.com/custodia-labs/graphidx/internal/core/ports/driven"
)

// Chain forwards every notification to each member in order.
type Chain struct {
	members []driven.WorkflowCallbacks
}

// NewChain combines callbacks into one fan-out sink. Nil members are skipped.
func NewChain(members ...driven.WorkflowCallbacks) *Chain {
	c := &Chain{}
	for _, m := range members {
		c.Register(m)
	}
	return c
}

// Combine returns a single sink for members: Noop when there are none, the
// member itself when there is one, and a Chain otherwise.
func Combine(members []driven.WorkflowCallbacks) driven.WorkflowCallbacks {
	chain := NewChain(members...)
	switch chain.Len() {
	case 0:
		return Noop{}
	case 1:
		return chain.members[0]
	default:
		return chain
	}
}

// Register appends a member to the chain.
func (c *Chain) Register(m driven.WorkflowCallbacks) {
	if m == nil {
		return
	}
	c.members = append(c.members, m)
}

// Len returns the number of members.
func (c *Chain) Len() int {
	return len(c.members)
}

// PipelineStart forwards to every callback in order.
func (c *Chain) PipelineStart(names []string) {
	for _, m := range c.members {
		m.PipelineStart(names)
	}
}

// PipelineEnd forwards to every callback in order.
func (c *Chain) PipelineEnd(results []domain.PipelineRunResult) {
	for _, m := range c.members {
		m.PipelineEnd(results)
	}
}

// WorkflowStart forwards to every callback in order.
func (c *Chain) WorkflowStart(name string, instance any) {
	for _, m := range c.members {
		m.WorkflowStart(name, instance)
	}
}

// WorkflowEnd forwards to every callback in order.
func (c *Chain) WorkflowEnd(name string, instance any) {
	for _, m := range c.members {
		m.WorkflowEnd(name, instance)
	}
}

// Progress forwards to every callback in order.
func (c *Chain) Progress(p driven.Progress) {
	for _, m := range c.members {
		m.Progress(p)
	}
}

var _ driven.WorkflowCallbacks = (*Chain)(nil)
