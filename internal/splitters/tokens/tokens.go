// Package tokens provides a sliding token-window text splitter.
package tokens

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/graphidx/internal/core/domain"
)

// Strategy names served by this package.
const (
	Name      = "tokens"
	WordsName = "words"
)

// Splitter slides a fixed-size token window across the concatenated
// tokens of a group. It implements the TextSplitter interface.
type Splitter struct {
	name      string
	size      int
	overlap   int
	encoding  string
	tokenizer Tokenizer
}

// Option configures the splitter.
type Option func(*Splitter)

// WithSize sets the maximum tokens per chunk.
func WithSize(size int) Option {
	return func(s *Splitter) {
		s.size = size
	}
}

// WithOverlap sets the number of tokens shared by consecutive chunks.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		s.overlap = overlap
	}
}

// WithEncoding selects the tiktoken encoding used to count tokens.
func WithEncoding(name string) Option {
	return func(s *Splitter) {
		s.encoding = name
	}
}

// WithTokenizer replaces the encoding-backed tokenizer. The splitter then
// reports name as its strategy.
func WithTokenizer(name string, t Tokenizer) Option {
	return func(s *Splitter) {
		s.name = name
		s.tokenizer = t
	}
}

// New creates a token splitter. Overlap must be smaller than size.
// Unless WithTokenizer is given, tokens come from the tiktoken encoding.
func New(opts ...Option) (*Splitter, error) {
	s := &Splitter{
		name:     Name,
		size:     domain.DefaultChunkSize,
		overlap:  domain.DefaultChunkOverlap,
		encoding: domain.DefaultEncodingModel,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.size <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", domain.ErrInvalidConfig, s.size)
	}
	if s.overlap < 0 || s.overlap >= s.size {
		return nil, fmt.Errorf("%w: chunk overlap %d must be in [0, %d)", domain.ErrInvalidConfig, s.overlap, s.size)
	}
	if s.tokenizer == nil {
		t, err := Encoding(s.encoding)
		if err != nil {
			return nil, err
		}
		s.tokenizer = t
	}
	return s, nil
}

// Name returns the strategy name.
func (s *Splitter) Name() string {
	return s.name
}

// Encoding returns the configured encoding model name.
func (s *Splitter) Encoding() string {
	return s.encoding
}

// CountTokens returns the number of tokens in text.
func (s *Splitter) CountTokens(text string) int {
	return len(s.tokenizer.Encode(text))
}

type sourcedToken struct {
	doc   int
	token string
}

// Split concatenates the tokens of all inputs in order and emits one chunk per
// window. Windows start every size-overlap tokens; the last window ends at the
// final token. A chunk's document ids are the distinct inputs that contributed
// tokens to it, in order of appearance. A rune cut by a window edge is
// rendered as U+FFFD.
func (s *Splitter) Split(ctx context.Context, inputs []domain.TextInput) ([]domain.Chunk, error) {
	var all []sourcedToken
	for i, in := range inputs {
		for _, tok := range s.tokenizer.Encode(in.Text) {
			all = append(all, sourcedToken{doc: i, token: tok})
		}
	}
	if len(all) == 0 {
		return nil, nil
	}

	step := s.size - s.overlap
	chunks := make([]domain.Chunk, 0, len(all)/step+1)

	for start := 0; start < len(all); start += step {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		end := min(start+s.size, len(all))
		window := all[start:end]

		var b strings.Builder
		var ids []string
		last := -1
		for _, t := range window {
			b.WriteString(t.token)
			if t.doc != last {
				ids = appendDistinct(ids, inputs[t.doc].DocumentID)
				last = t.doc
			}
		}

		chunks = append(chunks, domain.Chunk{
			DocumentIDs: ids,
			Text:        strings.ToValidUTF8(b.String(), "\uFFFD"),
			NTokens:     len(window),
		})

		if end == len(all) {
			break
		}
	}
	return chunks, nil
}

func appendDistinct(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
