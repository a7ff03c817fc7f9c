package driven

import "context"

// Cache stores previous LLM responses and other expensive results.
// The layout of cached values is opaque: key to bytes.
type Cache interface {
	// Get returns the cached value for key.
	// Returns domain.ErrNotFound on a miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set caches value under key.
	Set(ctx context.Context, key string, value []byte) error

	// Has reports whether key is cached.
	Has(ctx context.Context, key string) (bool, error)

	// Delete evicts key.
	Delete(ctx context.Context, key string) error

	// Clear evicts everything in this cache.
	Clear(ctx context.Context) error

	// Child returns a cache scoped to a sub-namespace.
	Child(name string) Cache
}
