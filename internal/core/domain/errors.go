package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent indexing failures.
// These are distinct from infrastructure errors, which are propagated unchanged.
var (
	// ErrNotFound indicates a requested key or entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfig indicates the indexing configuration failed validation.
	ErrInvalidConfig = errors.New("invalid config")

	// Registry Errors.

	// ErrUnknownStorageType indicates no storage backend is registered under a type name.
	ErrUnknownStorageType = errors.New("unknown storage type")

	// ErrUnknownCacheType indicates no cache is registered under a type name.
	ErrUnknownCacheType = errors.New("unknown cache type")

	// ErrUnknownWorkflow indicates a pipeline references an unregistered workflow.
	ErrUnknownWorkflow = errors.New("unknown workflow")

	// ErrUnknownPipeline indicates no pipeline is registered under a name.
	ErrUnknownPipeline = errors.New("unknown pipeline")

	// ErrUnknownStrategy indicates no text splitter is registered under a strategy name.
	ErrUnknownStrategy = errors.New("unknown chunk strategy")

	// Table Errors.

	// ErrTableNotFound indicates a named table is absent from storage.
	// It matches ErrNotFound with errors.Is.
	ErrTableNotFound = fmt.Errorf("table %w", ErrNotFound)

	// ErrTableCorrupt indicates stored table bytes could not be decoded.
	ErrTableCorrupt = errors.New("table corrupt")

	// Runner Errors.

	// ErrRunnerUsed indicates a Runner that already reached a terminal state was run again.
	ErrRunnerUsed = errors.New("runner already used")
)
