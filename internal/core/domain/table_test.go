package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnType_IsValid(t *testing.T) {
	tests := []struct {
		typ   ColumnType
		valid bool
	}{
		{ColumnString, true},
		{ColumnInt, true},
		{ColumnFloat, true},
		{ColumnBool, true},
		{ColumnStringList, true},
		{ColumnJSON, true},
		{ColumnType("decimal"), false},
		{ColumnType(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.typ.IsValid())
		})
	}
}

func TestTable_AppendAndAccess(t *testing.T) {
	table := NewTable(
		Column{Name: "id", Type: ColumnString},
		Column{Name: "document_ids", Type: ColumnStringList},
	)

	require.NoError(t, table.Append("a", []string{"doc-1"}))
	require.NoError(t, table.Append("b", []any{"doc-2", "doc-3"}))

	assert.Equal(t, 2, table.Len())
	assert.Equal(t, "a", table.StringValue(0, "id"))
	assert.Equal(t, []string{"doc-1"}, table.StringListValue(0, "document_ids"))
	assert.Equal(t, []string{"doc-2", "doc-3"}, table.StringListValue(1, "document_ids"))
	assert.Nil(t, table.Value(0, "missing"))
	assert.Equal(t, "", table.StringValue(0, "missing"))
	assert.Equal(t, []string{"id", "document_ids"}, table.ColumnNames())
}

func TestTable_Append_WrongArity(t *testing.T) {
	table := NewTable(Column{Name: "id", Type: ColumnString})

	err := table.Append("a", "b")

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, table.Len())
}

func TestTable_ColumnIndex(t *testing.T) {
	table := NewTable(Column{Name: "id", Type: ColumnString}, Column{Name: "text", Type: ColumnString})

	assert.Equal(t, 0, table.ColumnIndex("id"))
	assert.Equal(t, 1, table.ColumnIndex("text"))
	assert.Equal(t, -1, table.ColumnIndex("nope"))
	assert.True(t, table.HasColumn("text"))
	assert.False(t, table.HasColumn("nope"))
}

func TestTable_WithColumn_Append(t *testing.T) {
	table := NewTable(Column{Name: "id", Type: ColumnString})
	require.NoError(t, table.Append("a"))
	require.NoError(t, table.Append("b"))

	out, err := table.WithColumn(Column{Name: "n", Type: ColumnInt}, []any{int64(1), int64(2)})
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "n"}, out.ColumnNames())
	assert.Equal(t, int64(2), out.Value(1, "n"))
	// original is untouched
	assert.Equal(t, []string{"id"}, table.ColumnNames())
	assert.Len(t, table.Rows[0], 1)
}

func TestTable_WithColumn_Replace(t *testing.T) {
	table := NewTable(Column{Name: "id", Type: ColumnString}, Column{Name: "text", Type: ColumnString})
	require.NoError(t, table.Append("a", "hello"))

	out, err := table.WithColumn(Column{Name: "id", Type: ColumnString}, []any{"z"})
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "text"}, out.ColumnNames())
	assert.Equal(t, "z", out.StringValue(0, "id"))
	assert.Equal(t, "a", table.StringValue(0, "id"))
}

func TestTable_WithColumn_LengthMismatch(t *testing.T) {
	table := NewTable(Column{Name: "id", Type: ColumnString})
	require.NoError(t, table.Append("a"))

	_, err := table.WithColumn(Column{Name: "n", Type: ColumnInt}, nil)

	assert.ErrorIs(t, err, ErrInvalidInput)
}
