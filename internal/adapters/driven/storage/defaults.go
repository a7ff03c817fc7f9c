package storage

import (
	"github.com/custodia-labs/graphidx/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/graphidx/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/graphidx/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/graphidx/internal/core/domain"
)

// RegisterDefaults registers all built-in storage backends with the registry.
// Call this during application initialisation before any storage is created.
func RegisterDefaults(r *Registry) {
	r.Register(domain.StorageMemory.String(), memory.New)
	r.Register(domain.StorageFile.String(), file.New)
	r.Register(domain.StorageSQLite.String(), sqlite.New)
}

// NewDefaultRegistry returns a registry with the built-in backends registered.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}
