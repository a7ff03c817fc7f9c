package driven

import (
	"github.com/custodia-labs/graphidx/internal/core/domain"
)

// SplitterFactory selects the text splitter for a chunking configuration.
// It maintains a registry of strategies and their builders.
type SplitterFactory interface {
	// Build returns the splitter for cfg.Strategy.
	// Returns domain.ErrUnknownStrategy if the strategy is unknown.
	Build(cfg domain.ChunkingConfig) (TextSplitter, error)
}
