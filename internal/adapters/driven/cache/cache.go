// Package cache provides driven.Cache implementations backed by storage backends.
package cache

import (
	"context"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/custodia-labs/graphidx/internal/core/domain"
	"github.com/custodia-labs/graphidx/internal/core/ports/driven"
)

// Ensure implementations satisfy the interface.
var (
	_ driven.Cache = (*StorageCache)(nil)
	_ driven.Cache = NoopCache{}
)

// Key derives a storage-safe cache key from arbitrary parts.
// The same parts always produce the same key.
func Key(parts ...string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(strings.Join(parts, "\x00")))
}

// StorageCache stores cached values in a driven.Storage.
// Caller keys are hashed so any string is a valid key on every backend.
type StorageCache struct {
	storage driven.Storage
}

// NewStorageCache creates a cache over storage.
func NewStorageCache(storage driven.Storage) *StorageCache {
	return &StorageCache{storage: storage}
}

// Get returns the cached value for key.
func (c *StorageCache) Get(ctx context.Context, key string) ([]byte, error) {
	return c.storage.Get(ctx, Key(key))
}

// Set caches value under key.
func (c *StorageCache) Set(ctx context.Context, key string, value []byte) error {
	return c.storage.Set(ctx, Key(key), value)
}

// Has reports whether key is cached.
func (c *StorageCache) Has(ctx context.Context, key string) (bool, error) {
	return c.storage.Has(ctx, Key(key))
}

// Delete evicts key.
func (c *StorageCache) Delete(ctx context.Context, key string) error {
	return c.storage.Delete(ctx, Key(key))
}

// Clear evicts everything in this cache.
func (c *StorageCache) Clear(ctx context.Context) error {
	return c.storage.Clear(ctx)
}

// Child returns a cache scoped to name.
func (c *StorageCache) Child(name string) driven.Cache {
	return &StorageCache{storage: c.storage.Child(name)}
}

// NoopCache never stores anything. Every Get misses.
type NoopCache struct{}

// Get always misses.
func (NoopCache) Get(_ context.Context, _ string) ([]byte, error) {
	return nil, domain.ErrNotFound
}

// Set discards value.
func (NoopCache) Set(_ context.Context, _ string, _ []byte) error { return nil }

// Has always returns false.
func (NoopCache) Has(_ context.Context, _ string) (bool, error) { return false, nil }

// Delete does nothing.
func (NoopCache) Delete(_ context.Context, _ string) error { return nil }

// Clear does nothing.
func (NoopCache) Clear(_ context.Context) error { return nil }

// Child returns the same no-op cache.
func (c NoopCache) Child(_ string) driven.Cache { return c }
