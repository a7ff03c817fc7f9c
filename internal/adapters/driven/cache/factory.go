package cache

import (
	"errors"
	"fmt"

	"github.com/custodia-labs/graphidx/internal/adapters/driven/storage"
	"github.com/custodia-labs/graphidx/internal/core/domain"
	"github.com/custodia-labs/graphidx/internal/core/ports/driven"
)

// Factory builds caches over the backends of a storage registry.
type Factory struct {
	storages *storage.Registry
}

var _ driven.CacheFactory = (*Factory)(nil)

// NewFactory creates a cache factory backed by storages.
func NewFactory(storages *storage.Registry) *Factory {
	return &Factory{storages: storages}
}

// Create builds the cache selected by cfg.
func (f *Factory) Create(cfg domain.CacheConfig) (driven.Cache, error) {
	return Create(cfg, f.storages)
}

// Create builds the cache selected by cfg.
// "none" (or empty) yields a NoopCache; every other type is looked up in the storage
// registry and wrapped in a StorageCache.
func Create(cfg domain.CacheConfig, storages *storage.Registry) (driven.Cache, error) {
	if cfg.Type == "" || cfg.Type == domain.CacheNone {
		return NoopCache{}, nil
	}

	s, err := storages.Create(string(cfg.Type), map[string]any{"base_dir": cfg.BaseDir})
	if errors.Is(err, domain.ErrUnknownStorageType) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownCacheType, cfg.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("creating %s cache: %w", cfg.Type, err)
	}
	return NewStorageCache(s), nil
}
