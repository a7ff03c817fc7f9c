package tables

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pierrec/lz4"
	"github.com/tidwall/gjson"

	"github.com/custodia-labs/graphidx/internal/core/domain"
)

// Format identifies the table encoding in the header line.
const (
	formatName    = "graphidx-columnar"
	formatVersion = 1
)

type header struct {
	Format  string          `json:"format"`
	Version int             `json:"version"`
	Rows    int             `json:"rows"`
	Columns []domain.Column `json:"columns"`
}

// Encode serializes a table to the portable columnar format.
//
// The payload is an lz4 frame containing newline-separated JSON: a header line
// with the schema and row count, followed by one JSON array per column holding that
// column's values in row order. The table is normalized first.
func Encode(table *domain.Table) ([]byte, error) {
	normalized, err := Normalize(table)
	if err != nil {
		return nil, err
	}

	var plain bytes.Buffer
	h, err := json.Marshal(header{
		Format:  formatName,
		Version: formatVersion,
		Rows:    normalized.Len(),
		Columns: normalized.Columns,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding header: %w", err)
	}
	plain.Write(h)

	column := make([]any, normalized.Len())
	for j, c := range normalized.Columns {
		for i, row := range normalized.Rows {
			column[i] = row[j]
		}
		data, err := json.Marshal(column)
		if err != nil {
			return nil, fmt.Errorf("encoding column %s: %w", c.Name, err)
		}
		plain.WriteByte('\n')
		plain.Write(data)
	}

	var out bytes.Buffer
	zw := lz4.NewWriter(&out)
	if _, err := zw.Write(plain.Bytes()); err != nil {
		return nil, fmt.Errorf("compressing table: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compressing table: %w", err)
	}
	return out.Bytes(), nil
}

// Decode parses bytes produced by Encode.
func Decode(data []byte) (*domain.Table, error) {
	plain, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("decompressing table: %w", err)
	}

	lines := bytes.Split(plain, []byte{'\n'})
	h := gjson.ParseBytes(lines[0])
	if !h.IsObject() || h.Get("format").String() != formatName {
		return nil, fmt.Errorf("unrecognised table header")
	}
	if v := h.Get("version").Int(); v != formatVersion {
		return nil, fmt.Errorf("unsupported table version %d", v)
	}

	rows := int(h.Get("rows").Int())
	var columns []domain.Column
	for _, c := range h.Get("columns").Array() {
		columns = append(columns, domain.Column{
			Name: c.Get("name").String(),
			Type: domain.ColumnType(c.Get("type").String()),
		})
	}
	if len(lines) != len(columns)+1 {
		return nil, fmt.Errorf("table has %d column lines, header declares %d", len(lines)-1, len(columns))
	}

	table := &domain.Table{Columns: columns, Rows: make([][]any, rows)}
	for i := range table.Rows {
		table.Rows[i] = make([]any, len(columns))
	}

	for j, c := range columns {
		values := gjson.ParseBytes(lines[j+1])
		if !values.IsArray() {
			return nil, fmt.Errorf("column %s: expected array", c.Name)
		}
		items := values.Array()
		if len(items) != rows {
			return nil, fmt.Errorf("column %s: has %d values, header declares %d rows", c.Name, len(items), rows)
		}
		for i, item := range items {
			v, err := decodeValue(c.Type, item)
			if err != nil {
				return nil, fmt.Errorf("row %d column %s: %w", i, c.Name, err)
			}
			table.Rows[i][j] = v
		}
	}
	return table, nil
}

// decodeValue converts one JSON value to the portable representation of typ.
func decodeValue(typ domain.ColumnType, r gjson.Result) (any, error) {
	if r.Type == gjson.Null {
		return nil, nil
	}
	switch typ {
	case domain.ColumnString:
		if r.Type != gjson.String {
			return nil, fmt.Errorf("expected string, got %s", r.Type)
		}
		return r.String(), nil
	case domain.ColumnInt:
		if r.Type != gjson.Number {
			return nil, fmt.Errorf("expected number, got %s", r.Type)
		}
		return r.Int(), nil
	case domain.ColumnFloat:
		if r.Type != gjson.Number {
			return nil, fmt.Errorf("expected number, got %s", r.Type)
		}
		return r.Float(), nil
	case domain.ColumnBool:
		if r.Type != gjson.True && r.Type != gjson.False {
			return nil, fmt.Errorf("expected bool, got %s", r.Type)
		}
		return r.Bool(), nil
	case domain.ColumnStringList:
		if !r.IsArray() {
			return nil, fmt.Errorf("expected array, got %s", r.Type)
		}
		items := r.Array()
		out := make([]string, 0, len(items))
		for _, item := range items {
			if item.Type != gjson.String {
				return nil, fmt.Errorf("expected string element, got %s", item.Type)
			}
			out = append(out, item.String())
		}
		return out, nil
	case domain.ColumnJSON:
		return r.Value(), nil
	default:
		return nil, fmt.Errorf("unsupported column type %q", typ)
	}
}
