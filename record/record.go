// Package record holds the records produced by the GeneratedStruct shape.
//
// Go cannot fabricate named struct types at run time, so a generated record
// is an ordered column→value mapping plus accessors. Each fetch synthesizes
// its own Type from the result columns; two fetches never share one, even for
// identical column lists, and each Type carries a distinct ULID.
package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"
)

// Type describes the fields of generated records: column names in the order
// the driver returned them.
type Type struct {
	id     ulid.ULID
	fields []string
	index  map[string]int
}

// NewType synthesizes a record type from result columns. Column names must be
// non-empty and unique.
func NewType(columns []string) (*Type, error) {
	t := &Type{
		id:     ulid.Make(),
		fields: make([]string, len(columns)),
		index:  make(map[string]int, len(columns)),
	}
	for i, col := range columns {
		if col == "" {
			return nil, fmt.Errorf("column %d has no name", i)
		}
		if _, dup := t.index[col]; dup {
			return nil, fmt.Errorf("duplicate column %q", col)
		}
		t.fields[i] = col
		t.index[col] = i
	}
	return t, nil
}

// ID uniquely identifies this synthesized type.
func (t *Type) ID() string { return t.id.String() }

// Fields returns the field names in column order.
func (t *Type) Fields() []string { return append([]string(nil), t.fields...) }

// NumField returns the number of fields.
func (t *Type) NumField() int { return len(t.fields) }

// FieldIndex returns the position of name, or -1.
func (t *Type) FieldIndex(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}
	return -1
}

// New builds a record of this type from one row of values.
func (t *Type) New(values []any) (Record, error) {
	if len(values) != len(t.fields) {
		return Record{}, fmt.Errorf("record type has %d fields, got %d values", len(t.fields), len(values))
	}
	return Record{typ: t, values: append([]any(nil), values...)}, nil
}

func (t *Type) String() string {
	return "record{" + strings.Join(t.fields, ", ") + "}"
}

// ErrNoField is returned by Value for an unknown field.
var ErrNoField = errors.New("no such field")

// Record is one row of a generated record type.
type Record struct {
	typ    *Type
	values []any
}

// Type returns the record's synthesized type.
func (r Record) Type() *Type { return r.typ }

// Get returns the value of the named field.
func (r Record) Get(name string) (any, bool) {
	if r.typ == nil {
		return nil, false
	}
	i, ok := r.typ.index[name]
	if !ok {
		return nil, false
	}
	return r.values[i], true
}

// Value returns the value of the named field or ErrNoField.
func (r Record) Value(name string) (any, error) {
	v, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoField, name)
	}
	return v, nil
}

// Field returns the i-th value.
func (r Record) Field(i int) any { return r.values[i] }

// Len returns the number of fields.
func (r Record) Len() int { return len(r.values) }

// Values returns the values in field order.
func (r Record) Values() []any { return append([]any(nil), r.values...) }

// Map returns the record as a field-keyed map.
func (r Record) Map() map[string]any {
	out := make(map[string]any, len(r.values))
	if r.typ == nil {
		return out
	}
	for i, name := range r.typ.fields {
		out[name] = r.values[i]
	}
	return out
}

func (r Record) String() string {
	if r.typ == nil {
		return "record{}"
	}
	var b strings.Builder
	b.WriteString("record{")
	for i, name := range r.typ.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %v", name, r.values[i])
	}
	b.WriteByte('}')
	return b.String()
}

// MarshalJSON encodes the record as an object with keys in field order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if r.typ != nil {
		for i, name := range r.typ.fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(name)
			if err != nil {
				return nil, err
			}
			val, err := json.Marshal(jsonValue(r.values[i]))
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", name, err)
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(val)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// jsonValue renders driver []byte as text rather than base64.
func jsonValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
