// Package memory provides in-memory implementations of driven ports.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/graphidx/internal/core/domain"
	"github.com/custodia-labs/graphidx/internal/core/ports/driven"
)

// Ensure Storage implements the interface.
var _ driven.Storage = (*Storage)(nil)

// items is the map shared by a storage and all of its children.
type items struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// Storage is an in-memory implementation of driven.Storage.
// Values are copied on Set and Get so callers cannot mutate stored bytes.
type Storage struct {
	items  *items
	prefix string
}

// NewStorage creates a new empty in-memory storage.
func NewStorage() *Storage {
	return &Storage{
		items: &items{data: make(map[string][]byte)},
	}
}

// New builds a memory storage from registry options. Options are ignored.
func New(_ map[string]any) (driven.Storage, error) {
	return NewStorage(), nil
}

// Has reports whether key exists.
func (s *Storage) Has(_ context.Context, key string) (bool, error) {
	s.items.mu.RLock()
	defer s.items.mu.RUnlock()
	_, ok := s.items.data[s.prefix+key]
	return ok, nil
}

// Get returns the value stored at key.
func (s *Storage) Get(_ context.Context, key string) ([]byte, error) {
	s.items.mu.RLock()
	defer s.items.mu.RUnlock()
	value, ok := s.items.data[s.prefix+key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

// Set stores value at key.
func (s *Storage) Set(_ context.Context, key string, value []byte) error {
	s.items.mu.Lock()
	defer s.items.mu.Unlock()
	s.items.data[s.prefix+key] = append([]byte(nil), value...)
	return nil
}

// Delete removes key.
func (s *Storage) Delete(_ context.Context, key string) error {
	s.items.mu.Lock()
	defer s.items.mu.Unlock()
	delete(s.items.data, s.prefix+key)
	return nil
}

// Keys returns keys with the given prefix, sorted, relative to this storage.
func (s *Storage) Keys(_ context.Context, prefix string) ([]string, error) {
	s.items.mu.RLock()
	defer s.items.mu.RUnlock()
	full := s.prefix + prefix
	var keys []string
	for key := range s.items.data {
		if strings.HasPrefix(key, full) {
			keys = append(keys, strings.TrimPrefix(key, s.prefix))
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Clear removes every key in this storage, including keys of child storages.
func (s *Storage) Clear(_ context.Context) error {
	s.items.mu.Lock()
	defer s.items.mu.Unlock()
	for key := range s.items.data {
		if strings.HasPrefix(key, s.prefix) {
			delete(s.items.data, key)
		}
	}
	return nil
}

// Child returns a storage whose keys live under name/ in this storage.
func (s *Storage) Child(name string) driven.Storage {
	if name == "" {
		return s
	}
	return &Storage{
		items:  s.items,
		prefix: s.prefix + strings.Trim(name, "/") + "/",
	}
}
