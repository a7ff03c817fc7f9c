// Package sentence provides a sentence-per-chunk text splitter.
package sentence

import (
	"context"
	"strings"
	"unicode"

	"github.com/custodia-labs/graphidx/internal/core/domain"
	"github.com/custodia-labs/graphidx/internal/splitters/tokens"
)

// Name is the strategy name of this splitter.
const Name = "sentence"

// Splitter emits one chunk per sentence of each input.
// It implements the TextSplitter interface.
type Splitter struct{}

// New creates a sentence splitter.
func New() *Splitter {
	return &Splitter{}
}

// Name returns the strategy name.
func (s *Splitter) Name() string {
	return Name
}

// CountTokens returns the number of tokens in text.
func (s *Splitter) CountTokens(text string) int {
	return tokens.Count(text)
}

// Split returns the sentences of each input in order. Every chunk references
// exactly the input it was cut from.
func (s *Splitter) Split(ctx context.Context, inputs []domain.TextInput) ([]domain.Chunk, error) {
	var chunks []domain.Chunk
	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, sentence := range Sentences(in.Text) {
			chunks = append(chunks, domain.Chunk{
				DocumentIDs: []string{in.DocumentID},
				Text:        sentence,
				NTokens:     tokens.Count(sentence),
			})
		}
	}
	return chunks, nil
}

// Sentences splits text at terminal punctuation (. ! ?) followed by whitespace
// or the end of the text. Closing quotes and brackets stay with their sentence.
// Surrounding whitespace is trimmed and empty sentences are dropped.
func Sentences(text string) []string {
	var out []string
	runes := []rune(text)
	start := 0

	emit := func(end int) {
		if sentence := strings.TrimSpace(string(runes[start:end])); sentence != "" {
			out = append(out, sentence)
		}
		start = end
	}

	for i := 0; i < len(runes); i++ {
		if !isTerminal(runes[i]) {
			continue
		}
		j := i + 1
		for j < len(runes) && (isTerminal(runes[j]) || isCloser(runes[j])) {
			j++
		}
		if j == len(runes) || unicode.IsSpace(runes[j]) {
			emit(j)
		}
		i = j - 1
	}
	emit(len(runes))
	return out
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isCloser(r rune) bool {
	switch r {
	case '"', '\'', ')', ']', '}', '”', '’':
		return true
	}
	return false
}
