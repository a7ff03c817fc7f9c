package normalisers

import (
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/graphidx/internal/core/ports/driven"
	"github.com/custodia-labs/graphidx/internal/normalisers/html"
	"github.com/custodia-labs/graphidx/internal/normalisers/markdown"
	"github.com/custodia-labs/graphidx/internal/normalisers/plaintext"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserLookup = (*Registry)(nil)

// Registry maps file extensions to normalisers.
type Registry struct {
	mu       sync.RWMutex
	byExt    map[string]driven.Normaliser
	fallback driven.Normaliser
}

// NewRegistry creates a registry that falls back to fallback for unknown extensions.
func NewRegistry(fallback driven.Normaliser) *Registry {
	return &Registry{
		byExt:    make(map[string]driven.Normaliser),
		fallback: fallback,
	}
}

// NewDefaultRegistry creates a registry with the plain text, markdown and HTML normalisers.
func NewDefaultRegistry() *Registry {
	r := NewRegistry(plaintext.New())
	r.Register(plaintext.New())
	r.Register(markdown.New())
	r.Register(html.New())
	return r
}

// Register adds n under each of its extensions, replacing earlier registrations.
func (r *Registry) Register(n driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ext := range n.Extensions() {
		r.byExt[strings.ToLower(ext)] = n
	}
}

// For returns the normaliser for key's extension, or the fallback.
func (r *Registry) For(key string) driven.Normaliser {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if n, ok := r.byExt[strings.ToLower(path.Ext(key))]; ok {
		return n
	}
	return r.fallback
}

// Extensions returns the registered extensions, sorted.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
