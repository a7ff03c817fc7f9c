package tables

import (
	"bytes"
	"io"
	"math"
	"testing"

	"github.com/pierrec/lz4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/graphidx/internal/core/domain"
)

func TestEncode_Deterministic(t *testing.T) {
	first, err := Encode(sampleTable())
	require.NoError(t, err)
	second, err := Encode(sampleTable())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEncode_ColumnarLayout(t *testing.T) {
	table := domain.NewTable(
		domain.Column{Name: "id", Type: domain.ColumnString},
		domain.Column{Name: "n", Type: domain.ColumnInt},
	)
	table.Rows = [][]any{{"a", int64(1)}, {"b", int64(2)}}

	data, err := Encode(table)
	require.NoError(t, err)

	plain, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	require.NoError(t, err)
	lines := bytes.Split(plain, []byte{'\n'})
	require.Len(t, lines, 3)
	assert.Contains(t, string(lines[0]), `"rows":2`)
	assert.Equal(t, `["a","b"]`, string(lines[1]))
	assert.Equal(t, `[1,2]`, string(lines[2]))
}

func TestDecode_Errors(t *testing.T) {
	compress := func(s string) []byte {
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		_, err := w.Write([]byte(s))
		require.NoError(t, err)
		require.NoError(t, w.Close())
		return buf.Bytes()
	}
	head := `{"format":"graphidx-columnar","version":1,"rows":1,"columns":[{"name":"n","type":"int"}]}`

	tests := []struct {
		name string
		data []byte
	}{
		{"not lz4", []byte("garbage")},
		{"bad header", compress(`{"format":"other"}`)},
		{"bad version", compress(`{"format":"graphidx-columnar","version":9,"rows":0,"columns":[]}`)},
		{"missing column line", compress(head)},
		{"column not array", compress(head + "\n{}")},
		{"row count mismatch", compress(head + "\n[1,2]")},
		{"type mismatch", compress(head + "\n[\"x\"]")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		typ     domain.ColumnType
		in      any
		want    any
		wantErr bool
	}{
		{"string", domain.ColumnString, "x", "x", false},
		{"string wrong type", domain.ColumnString, 1, nil, true},
		{"int from int", domain.ColumnInt, 3, int64(3), false},
		{"int from uint8", domain.ColumnInt, uint8(3), int64(3), false},
		{"int overflow", domain.ColumnInt, uint64(math.MaxUint64), nil, true},
		{"int from float", domain.ColumnInt, 1.5, nil, true},
		{"float from float32", domain.ColumnFloat, float32(0.5), 0.5, false},
		{"float from int", domain.ColumnFloat, 2, 2.0, false},
		{"float NaN", domain.ColumnFloat, math.NaN(), nil, true},
		{"bool", domain.ColumnBool, true, true, false},
		{"bool wrong type", domain.ColumnBool, "true", nil, true},
		{"list from []any", domain.ColumnStringList, []any{"a", "b"}, []string{"a", "b"}, false},
		{"list nil slice", domain.ColumnStringList, []string(nil), nil, false},
		{"list bad element", domain.ColumnStringList, []any{"a", 1}, nil, true},
		{"json struct", domain.ColumnJSON, struct {
			A int `json:"a"`
		}{A: 1}, map[string]any{"a": float64(1)}, false},
		{"nil", domain.ColumnInt, nil, nil, false},
		{"string invalid utf8", domain.ColumnString, "caf\xe9", nil, true},
		{"list invalid utf8", domain.ColumnStringList, []string{"ok", "caf\xe9"}, nil, true},
		{"list from []any invalid utf8", domain.ColumnStringList, []any{"caf\xe9"}, nil, true},
		{"json nested invalid utf8", domain.ColumnJSON, map[string]any{"a": []any{"caf\xe9"}}, nil, true},
		{"json invalid utf8 key", domain.ColumnJSON, map[string]any{"caf\xe9": 1}, nil, true},
		{"string multibyte", domain.ColumnString, "café", "café", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := domain.NewTable(domain.Column{Name: "c", Type: tt.typ})
			table.Rows = [][]any{{tt.in}}

			out, err := Normalize(table)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Rows[0][0])
		})
	}
}

func TestNormalize_CollectsAllErrors(t *testing.T) {
	table := domain.NewTable(
		domain.Column{Name: "a", Type: domain.ColumnInt},
		domain.Column{Name: "b", Type: domain.ColumnBool},
	)
	table.Rows = [][]any{{"x", "y"}, {1}}

	_, err := Normalize(table)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 0 column a")
	assert.Contains(t, err.Error(), "row 0 column b")
	assert.Contains(t, err.Error(), "row 1")
}

func TestNormalize_UnknownColumnType(t *testing.T) {
	table := domain.NewTable(domain.Column{Name: "a", Type: "decimal"})

	_, err := Normalize(table)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
