package model

import (
	"fmt"
	"strconv"
)

// Record is one row: column name to int64, string or bool.
type Record map[string]any

// ID returns the primary key, or 0 when absent.
func (r Record) ID() int64 {
	return r.Int(IDColumn)
}

// Int returns an integer column value.
func (r Record) Int(col string) int64 {
	switch v := r[col].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case float64:
		return int64(v)
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	}
	return 0
}

// String returns a string column value; non-strings yield "".
func (r Record) String(col string) string {
	if s, ok := r[col].(string); ok {
		return s
	}
	return ""
}

// Bool returns a boolean column value.
func (r Record) Bool(col string) bool {
	switch v := r[col].(type) {
	case bool:
		return v
	case int64:
		return v != 0
	}
	return false
}

// Clone returns a shallow copy; values are primitives so this is a full copy.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Merge returns a copy of r with patch applied on top.
func (r Record) Merge(patch Record) Record {
	out := r.Clone()
	if out == nil {
		out = Record{}
	}
	for k, v := range patch {
		out[k] = v
	}
	return out
}

// Format renders a column value verbatim.
func (r Record) Format(col string) string {
	switch v := r[col].(type) {
	case nil:
		return ""
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// Normalize coerces a raw driver value into the canonical Go type for kind.
// sqlite hands back booleans as integers and text as []byte.
func Normalize(kind Kind, raw any) any {
	switch kind {
	case KindInt, KindRef:
		switch v := raw.(type) {
		case int64:
			return v
		case int:
			return int64(v)
		case int32:
			return int64(v)
		case float64:
			return int64(v)
		case []byte:
			n, _ := strconv.ParseInt(string(v), 10, 64)
			return n
		case string:
			n, _ := strconv.ParseInt(v, 10, 64)
			return n
		case nil:
			return int64(0)
		}
	case KindBool:
		switch v := raw.(type) {
		case bool:
			return v
		case int64:
			return v != 0
		case int:
			return v != 0
		case []byte:
			b, _ := strconv.ParseBool(string(v))
			return b
		case string:
			b, _ := strconv.ParseBool(v)
			return b
		case nil:
			return false
		}
	default:
		switch v := raw.(type) {
		case string:
			return v
		case []byte:
			return string(v)
		case nil:
			return ""
		default:
			return fmt.Sprint(v)
		}
	}
	return raw
}
