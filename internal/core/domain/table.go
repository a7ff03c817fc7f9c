package domain

import "fmt"

// ColumnType identifies the portable value type held by a table column.
type ColumnType string

// Supported column types. Every cell may additionally be nil (null).
const (
	// ColumnString holds string values.
	ColumnString ColumnType = "string"

	// ColumnInt holds int64 values.
	ColumnInt ColumnType = "int"

	// ColumnFloat holds float64 values.
	ColumnFloat ColumnType = "float"

	// ColumnBool holds bool values.
	ColumnBool ColumnType = "bool"

	// ColumnStringList holds []string values.
	ColumnStringList ColumnType = "list<string>"

	// ColumnJSON holds arbitrary structured values (map[string]any, []any, scalars).
	ColumnJSON ColumnType = "json"
)

// IsValid returns true if the column type is recognised.
func (c ColumnType) IsValid() bool {
	switch c {
	case ColumnString, ColumnInt, ColumnFloat, ColumnBool, ColumnStringList, ColumnJSON:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (c ColumnType) String() string {
	return string(c)
}

// Column describes one column of a Table.
type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}

// Table is a sequence of rows sharing a column schema.
// Rows are stored row-major; each row holds one value per column, in column order.
// The column set is defined by the workflow that writes the table.
type Table struct {
	Columns []Column
	Rows    [][]any
}

// NewTable creates an empty table with the given columns.
func NewTable(columns ...Column) *Table {
	return &Table{Columns: columns}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the named column, or -1 if absent.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// HasColumn returns true if the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// ColumnNames returns the column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Append adds a row. The number of values must match the number of columns.
func (t *Table) Append(values ...any) error {
	if len(values) != len(t.Columns) {
		return fmt.Errorf("%w: row has %d values, table has %d columns",
			ErrInvalidInput, len(values), len(t.Columns))
	}
	t.Rows = append(t.Rows, values)
	return nil
}

// Value returns the cell at row for the named column.
// Returns nil if the column does not exist.
func (t *Table) Value(row int, column string) any {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return nil
	}
	return t.Rows[row][idx]
}

// StringValue returns the cell as a string, or "" if absent or not a string.
func (t *Table) StringValue(row int, column string) string {
	s, _ := t.Value(row, column).(string)
	return s
}

// StringListValue returns the cell as a string slice, or nil if absent or not a list.
func (t *Table) StringListValue(row int, column string) []string {
	switch v := t.Value(row, column).(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// WithColumn returns a copy of the table with column set to values.
// An existing column of the same name is replaced in place; otherwise the column is appended.
func (t *Table) WithColumn(column Column, values []any) (*Table, error) {
	if len(values) != t.Len() {
		return nil, fmt.Errorf("%w: column %s has %d values, table has %d rows",
			ErrInvalidInput, column.Name, len(values), t.Len())
	}

	idx := t.ColumnIndex(column.Name)
	out := &Table{Columns: append([]Column(nil), t.Columns...)}
	if idx < 0 {
		out.Columns = append(out.Columns, column)
	} else {
		out.Columns[idx] = column
	}

	out.Rows = make([][]any, t.Len())
	for i, row := range t.Rows {
		r := append([]any(nil), row...)
		if idx < 0 {
			r = append(r, values[i])
		} else {
			r[idx] = values[i]
		}
		out.Rows[i] = r
	}
	return out, nil
}
