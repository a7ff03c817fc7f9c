// Package tables is the named-table convention layer over driven.Storage.
//
// Workflows exchange data only through named tables: each workflow loads its
// inputs by name and writes its outputs by name. A table called "documents" is
// stored under the key "documents.parquet" in whichever storage it is written to.
// The stored bytes use the portable columnar encoding implemented by Encode and
// Decode, so a table written through one backend reads back value-identical
// through any other.
package tables
