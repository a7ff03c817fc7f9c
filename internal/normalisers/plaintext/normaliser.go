package plaintext

import (
	"github.com/custodia-labs/graphidx/internal/core/ports/driven"
)

// Name is the format name of plain text input.
const Name = "text"

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser passes text through unchanged.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Name returns the normaliser name.
func (n *Normaliser) Name() string {
	return Name
}

// Extensions returns the plain text file extensions handled.
func (n *Normaliser) Extensions() []string {
	return []string{".txt", ".text", ".log", ".csv"}
}

// Normalise returns content as is, without metadata.
func (n *Normaliser) Normalise(_ string, content []byte) (driven.NormaliseResult, error) {
	return driven.NormaliseResult{Text: string(content)}, nil
}
