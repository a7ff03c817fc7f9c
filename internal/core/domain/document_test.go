package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_Row_MatchesColumns(t *testing.T) {
	doc := Document{
		ID:           "doc-1",
		Text:         "hello world",
		Title:        "a.txt",
		CreationDate: "2024-01-01T00:00:00Z",
		Metadata:     map[string]any{"author": "someone"},
	}

	table := NewTable(DocumentColumns()...)
	require.NoError(t, table.Append(doc.Row()...))

	assert.Equal(t, "doc-1", table.StringValue(0, ColumnNameID))
	assert.Equal(t, "hello world", table.StringValue(0, ColumnNameText))
	assert.Equal(t, "a.txt", table.StringValue(0, ColumnNameTitle))
	assert.Equal(t, map[string]any{"author": "someone"}, table.Value(0, ColumnNameMetadata))
}

func TestDocument_Row_NilMetadataIsNull(t *testing.T) {
	doc := Document{ID: "doc-1", Text: "x"}

	row := doc.Row()

	require.Len(t, row, len(DocumentColumns()))
	assert.Nil(t, row[4])
}
