package driven

import (
	"github.com/custodia-labs/graphidx/internal/core/domain"
)

// StorageFactory creates storage backends by type name.
// It maintains a registry of backend types and their builders.
type StorageFactory interface {
	// Create returns a Storage of the given type.
	// Returns domain.ErrUnknownStorageType if the type is unknown.
	Create(typeName string, opts map[string]any) (Storage, error)

	// Supports returns true if typeName is registered.
	Supports(typeName string) bool

	// Types returns all registered storage type names.
	Types() []string
}

// CacheFactory creates the response cache from configuration.
type CacheFactory interface {
	// Create returns the cache selected by cfg.
	// Returns domain.ErrUnknownCacheType if the type is unknown.
	Create(cfg domain.CacheConfig) (Cache, error)
}
