package tables

import (
	"context"
	"fmt"

	"github.com/custodia-labs/graphidx/internal/core/domain"
	"github.com/custodia-labs/graphidx/internal/core/ports/driven"
	"github.com/custodia-labs/graphidx/internal/logger"
)

// Extension is appended to a table name to form its storage key.
const Extension = ".parquet"

// Key returns the storage key for the named table.
func Key(name string) string {
	return name + Extension
}

// Has reports whether the named table exists in storage.
func Has(ctx context.Context, name string, storage driven.Storage) (bool, error) {
	return storage.Has(ctx, Key(name))
}

// Load reads the named table from storage.
// Returns domain.ErrTableNotFound if the table is absent and domain.ErrTableCorrupt
// if its bytes cannot be decoded. Read failures are logged with the key before
// being returned.
func Load(ctx context.Context, name string, storage driven.Storage) (*domain.Table, error) {
	key := Key(name)
	exists, err := storage.Has(ctx, key)
	if err != nil {
		logger.Error("error checking table in storage: %s: %v", key, err)
		return nil, fmt.Errorf("checking %s: %w", key, err)
	}
	if !exists {
		return nil, fmt.Errorf("could not find %s in storage: %w", key, domain.ErrTableNotFound)
	}

	logger.Debug("reading table from storage: %s", key)
	data, err := storage.Get(ctx, key)
	if err != nil {
		logger.Error("error loading table from storage: %s: %v", key, err)
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}

	table, err := Decode(data)
	if err != nil {
		logger.Error("error loading table from storage: %s: %v", key, err)
		return nil, fmt.Errorf("decoding %s: %w: %w", key, domain.ErrTableCorrupt, err)
	}
	return table, nil
}

// Write serializes table and stores it under the named table's key.
// Cells are normalized to the portable representation of their column type first.
func Write(ctx context.Context, table *domain.Table, name string, storage driven.Storage) error {
	key := Key(name)
	data, err := Encode(table)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	logger.Debug("writing table to storage: %s (%d rows)", key, table.Len())
	if err := storage.Set(ctx, key, data); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// Delete removes the named table. Deleting an absent table is not an error.
func Delete(ctx context.Context, name string, storage driven.Storage) error {
	return storage.Delete(ctx, Key(name))
}
