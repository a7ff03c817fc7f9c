package tables

import (
	"encoding/json"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/hashicorp/go-multierror"

	"github.com/custodia-labs/graphidx/internal/core/domain"
)

// Normalize returns a copy of table whose cells hold only the portable value
// representation of their column type:
//
//	string       -> string
//	int          -> int64
//	float        -> float64
//	bool         -> bool
//	list<string> -> []string
//	json         -> map[string]any, []any, string, float64, bool
//
// nil is valid in every column and nil slices become nil. A table that has been
// normalized round-trips through Encode/Decode to an equal table.
// All cell errors are collected before returning.
func Normalize(table *domain.Table) (*domain.Table, error) {
	var merr *multierror.Error

	for _, c := range table.Columns {
		if !c.Type.IsValid() {
			merr = multierror.Append(merr, fmt.Errorf("column %s: unsupported type %q", c.Name, c.Type))
		}
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	out := &domain.Table{
		Columns: append([]domain.Column(nil), table.Columns...),
		Rows:    make([][]any, len(table.Rows)),
	}
	for i, row := range table.Rows {
		if len(row) != len(table.Columns) {
			merr = multierror.Append(merr, fmt.Errorf("row %d: has %d values, want %d", i, len(row), len(table.Columns)))
			continue
		}
		normalized := make([]any, len(row))
		for j, value := range row {
			v, err := normalizeValue(table.Columns[j].Type, value)
			if err != nil {
				merr = multierror.Append(merr, fmt.Errorf("row %d column %s: %w", i, table.Columns[j].Name, err))
				continue
			}
			normalized[j] = v
		}
		out.Rows[i] = normalized
	}

	if err := merr.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return out, nil
}

func normalizeValue(typ domain.ColumnType, value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	switch typ {
	case domain.ColumnString:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", value)
		}
		if !utf8.ValidString(s) {
			return nil, fmt.Errorf("string is not valid UTF-8")
		}
		return s, nil
	case domain.ColumnInt:
		return toInt64(value)
	case domain.ColumnFloat:
		return toFloat64(value)
	case domain.ColumnBool:
		b, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("expected bool, got %T", value)
		}
		return b, nil
	case domain.ColumnStringList:
		return toStringList(value)
	case domain.ColumnJSON:
		return toJSONValue(value)
	default:
		return nil, fmt.Errorf("unsupported column type %q", typ)
	}
}

func toInt64(value any) (any, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return nil, fmt.Errorf("value %d overflows int64", v)
		}
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return nil, fmt.Errorf("value %d overflows int64", v)
		}
		return int64(v), nil
	default:
		return nil, fmt.Errorf("expected integer, got %T", value)
	}
}

func toFloat64(value any) (any, error) {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case int32:
		f = float64(v)
	default:
		return nil, fmt.Errorf("expected float, got %T", value)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("non-finite float %v", f)
	}
	return f, nil
}

func toStringList(value any) (any, error) {
	switch v := value.(type) {
	case []string:
		if v == nil {
			return nil, nil
		}
		for i, item := range v {
			if !utf8.ValidString(item) {
				return nil, fmt.Errorf("element %d: string is not valid UTF-8", i)
			}
		}
		return append(make([]string, 0, len(v)), v...), nil
	case []any:
		if v == nil {
			return nil, nil
		}
		out := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("element %d: expected string, got %T", i, item)
			}
			if !utf8.ValidString(s) {
				return nil, fmt.Errorf("element %d: string is not valid UTF-8", i)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected string list, got %T", value)
	}
}

// toJSONValue converts value to the shape encoding/json produces when decoding into any.
func toJSONValue(value any) (any, error) {
	if err := checkUTF8(value); err != nil {
		return nil, err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encoding json value: %w", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decoding json value: %w", err)
	}
	return out, nil
}

// checkUTF8 walks the string-bearing shapes of a json cell. encoding/json
// would otherwise replace invalid bytes with U+FFFD without reporting it.
func checkUTF8(value any) error {
	switch v := value.(type) {
	case string:
		if !utf8.ValidString(v) {
			return fmt.Errorf("string is not valid UTF-8")
		}
	case []byte:
		// encoded as base64 by encoding/json
	case []string:
		for _, item := range v {
			if err := checkUTF8(item); err != nil {
				return err
			}
		}
	case []any:
		for _, item := range v {
			if err := checkUTF8(item); err != nil {
				return err
			}
		}
	case map[string]any:
		for k, item := range v {
			if err := checkUTF8(k); err != nil {
				return fmt.Errorf("key: %w", err)
			}
			if err := checkUTF8(item); err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
		}
	case map[string]string:
		for k, item := range v {
			if !utf8.ValidString(k) || !utf8.ValidString(item) {
				return fmt.Errorf("%s: string is not valid UTF-8", k)
			}
		}
	}
	return nil
}
