// Package workflows provides the built-in indexing workflows and pipelines.
//
// Workflows exchange data only through named tables in the run's output
// storage. Each workflow reads the tables it needs by name and writes the
// tables it produces before returning.
package workflows
