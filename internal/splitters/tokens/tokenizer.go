package tokens

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"

	"github.com/custodia-labs/graphidx/internal/core/domain"
)

// Tokenizer splits text into tokens. Each token is returned as its byte
// sequence, so concatenating a text's tokens yields the text.
type Tokenizer interface {
	Encode(text string) []string
}

// wordPattern attaches leading whitespace to the following word.
var wordPattern = regexp.MustCompile(`\s*\S+|\s+`)

type words struct{}

// Words returns the whitespace word tokenizer.
func Words() Tokenizer {
	return words{}
}

func (words) Encode(text string) []string {
	return wordPattern.FindAllString(text, -1)
}

// Encode splits text into whitespace word tokens. strings.Join(Encode(s), "") == s.
func Encode(text string) []string {
	return words{}.Encode(text)
}

// Count returns the number of whitespace word tokens in text.
func Count(text string) int {
	return len(wordPattern.FindAllStringIndex(text, -1))
}

// bpe adapts a tiktoken encoding.
type bpe struct {
	enc *tiktoken.Tiktoken
}

func (b bpe) Encode(text string) []string {
	ids := b.enc.Encode(text, nil, nil)
	out := make([]string, len(ids))
	for i, id := range ids {
		// a single token may hold part of a multi-byte rune
		out[i] = b.enc.Decode([]int{id})
	}
	return out
}

var (
	loaderOnce sync.Once
	encodings  sync.Map
)

// Encoding returns the tokenizer for a tiktoken encoding name such as
// cl100k_base. Encoding files are embedded, so no network access is needed.
// Returns domain.ErrInvalidConfig for unknown encodings.
func Encoding(name string) (Tokenizer, error) {
	if t, ok := encodings.Load(name); ok {
		return t.(Tokenizer), nil
	}

	loaderOnce.Do(func() {
		tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
	})

	enc, err := tiktoken.GetEncoding(name)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding model %q: %w", domain.ErrInvalidConfig, name, err)
	}
	t, _ := encodings.LoadOrStore(name, bpe{enc: enc})
	return t.(Tokenizer), nil
}
