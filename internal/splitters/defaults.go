package splitters

import (
	"github.com/custodia-labs/graphidx/internal/core/domain"
	"github.com/custodia-labs/graphidx/internal/core/ports/driven"
	"github.com/custodia-labs/graphidx/internal/splitters/sentence"
	"github.com/custodia-labs/graphidx/internal/splitters/tokens"
)

// RegisterDefaults registers the built-in strategies with the registry.
func RegisterDefaults(r *Registry) {
	r.Register(domain.ChunkStrategyTokens, buildTokens)
	r.Register(domain.ChunkStrategyWords, buildWords)
	r.Register(domain.ChunkStrategySentence, buildSentence)
}

// NewDefaultRegistry returns a registry with the built-in strategies.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}

// buildTokens creates a token-window splitter over cfg.EncodingModel.
// A zero size falls back to the default.
func buildTokens(cfg domain.ChunkingConfig) (driven.TextSplitter, error) {
	opts := windowOptions(cfg)
	if cfg.EncodingModel != "" {
		opts = append(opts, tokens.WithEncoding(cfg.EncodingModel))
	}
	return tokens.New(opts...)
}

func buildWords(cfg domain.ChunkingConfig) (driven.TextSplitter, error) {
	return tokens.New(append(windowOptions(cfg), tokens.WithTokenizer(tokens.WordsName, tokens.Words()))...)
}

func windowOptions(cfg domain.ChunkingConfig) []tokens.Option {
	opts := []tokens.Option{tokens.WithOverlap(cfg.Overlap)}
	if cfg.Size != 0 {
		opts = append(opts, tokens.WithSize(cfg.Size))
	}
	return opts
}

func buildSentence(_ domain.ChunkingConfig) (driven.TextSplitter, error) {
	return sentence.New(), nil
}
