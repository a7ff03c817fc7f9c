// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services and workflows depend on these interfaces, and infrastructure
// adapters implement them.
//
// # Interfaces
//
//   - Storage: Key/value byte store (memory, file, sqlite)
//   - Cache: LLM response cache keyed by string
//   - WorkflowCallbacks: Lifecycle and progress notifications
//   - TextSplitter: The text-splitting primitive used by chunking
//   - WorkflowLookup: Name to workflow function resolution
//   - Normaliser: Input file format to plain text conversion
//
// RunContext aggregates the ports a workflow needs for one pipeline run.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, workflow, or splitter package
package driven
