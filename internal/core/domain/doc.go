// Package domain defines the core entities of the graphidx indexing engine.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Table: A named, schema-flexible row set exchanged between workflows
//   - Document: One normalised input document
//   - TextUnit: A chunk of document text with provenance
//   - RunState / RunStats: Per-run bookkeeping
//   - Config: Indexing configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
