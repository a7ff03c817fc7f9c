package domain

// Well-known table names exchanged between workflows.
const (
	// TableDocuments holds one row per normalised input document.
	TableDocuments = "documents"

	// TableTextUnits holds one row per chunk.
	TableTextUnits = "text_units"
)

// Well-known column names.
const (
	ColumnNameID           = "id"
	ColumnNameText         = "text"
	ColumnNameTitle        = "title"
	ColumnNameCreationDate = "creation_date"
	ColumnNameMetadata     = "metadata"
	ColumnNameDocumentIDs  = "document_ids"
	ColumnNameNTokens      = "n_tokens"
	ColumnNameTextUnitIDs  = "text_unit_ids"
)

// Document is one row of the documents table.
// It is the canonical representation after input loading.
type Document struct {
	// ID is a content hash of Text, or a caller-supplied key.
	ID string

	// Text is the full document text before chunking.
	Text string

	// Title is a human-readable name, usually the storage key it was loaded from.
	Title string

	// CreationDate is the RFC 3339 timestamp recorded when the document was loaded.
	CreationDate string

	// Metadata contains optional structured key-value pairs.
	Metadata map[string]any
}

// DocumentColumns is the column schema of the documents table written by input loading.
func DocumentColumns() []Column {
	return []Column{
		{Name: ColumnNameID, Type: ColumnString},
		{Name: ColumnNameText, Type: ColumnString},
		{Name: ColumnNameTitle, Type: ColumnString},
		{Name: ColumnNameCreationDate, Type: ColumnString},
		{Name: ColumnNameMetadata, Type: ColumnJSON},
	}
}

// Row returns the document's values in DocumentColumns order.
func (d Document) Row() []any {
	var metadata any
	if d.Metadata != nil {
		metadata = d.Metadata
	}
	return []any{d.ID, d.Text, d.Title, d.CreationDate, metadata}
}

// TextUnit is one row of the text_units table.
// One document may contribute to several text units and, when documents are grouped,
// one text unit may reference several documents.
type TextUnit struct {
	// ID is a deterministic hash of (DocumentIDs, Text, NTokens).
	ID string

	// DocumentIDs lists the source documents in the order they contributed text.
	DocumentIDs []string

	// Text is the chunk text.
	Text string

	// NTokens is the number of tokens in Text.
	NTokens int
}

// Chunk is the output of the text-splitting primitive before an ID is assigned.
type Chunk struct {
	DocumentIDs []string
	Text        string
	NTokens     int
}

// TextInput is one (document id, text) pair handed to the text-splitting primitive.
type TextInput struct {
	DocumentID string
	Text       string
}
