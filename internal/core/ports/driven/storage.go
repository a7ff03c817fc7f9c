package driven

import (
	"context"
	"time"
)

// Storage is a key/value byte store scoped to one backend instance.
//
// A Set followed by Get on the same key returns the written value until the next
// Set or Delete of that key, and Has is consistent with the most recent Set/Delete.
// Every operation is a potential blocking I/O call.
type Storage interface {
	// Has reports whether key exists.
	Has(ctx context.Context, key string) (bool, error)

	// Get returns the value stored at key.
	// Returns domain.ErrNotFound if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value at key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys returns all keys with the given prefix in ascending order.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Clear removes every key in this storage.
	Clear(ctx context.Context) error

	// Child returns a storage scoped to a sub-namespace of this one.
	Child(name string) Storage
}

// CreationDater is implemented by storages that can date their keys.
// The date of an unchanged key is stable across calls.
type CreationDater interface {
	// CreationDate returns the time key was last written.
	// Returns domain.ErrNotFound if the key is absent.
	CreationDate(ctx context.Context, key string) (time.Time, error)
}
