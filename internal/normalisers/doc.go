// Package normalisers converts input files to plain text before chunking.
// Each normaliser handles a set of file extensions; keys with no registered
// extension fall back to plain text.
package normalisers
