package driven

import (
	"context"

	"github.com/custodia-labs/graphidx/internal/core/domain"
)

// TextSplitter is the text-splitting primitive used by the chunking workflow.
// It receives one group's (document id, text) pairs in order and returns the
// group's chunks in order. Size, overlap and encoding are fixed at construction.
type TextSplitter interface {
	// Name returns the strategy name for logging and configuration.
	Name() string

	// Split chunks the concatenated inputs.
	Split(ctx context.Context, inputs []domain.TextInput) ([]domain.Chunk, error)

	// CountTokens returns the number of tokens in text under the splitter's encoding.
	CountTokens(text string) int
}
