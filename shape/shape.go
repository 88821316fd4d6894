// Package shape describes the target representation result rows are coerced
// into. A Shape is a tagged variant over three kinds:
//
//   - Object: a caller constructor receives each row's values positionally.
//   - GeneratedStruct: a record type is synthesized from the result columns.
//   - Map: each row becomes a column-keyed map.
//
// The zero Shape means "no shape chosen" and defers to the next, less specific
// source (named query mapping, then the registry default).
package shape

import (
	"fmt"
	"strings"
)

// Kind tags the variant held by a Shape.
type Kind uint8

const (
	kindUnset Kind = iota
	KindObject
	KindGeneratedStruct
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindGeneratedStruct:
		return "struct"
	case KindMap:
		return "map"
	case kindUnset:
		return "unset"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// AnyArity marks an Object constructor that accepts any number of columns.
const AnyArity = -1

// Constructor builds one value from a row's column values, in driver order.
type Constructor func(values []any) (any, error)

// Shape is the result shape of a fetch.
type Shape struct {
	kind  Kind
	name  string
	arity int
	ctor  Constructor
}

// GeneratedStruct selects a record synthesized from the result columns.
func GeneratedStruct() Shape {
	return Shape{kind: KindGeneratedStruct, name: KindGeneratedStruct.String()}
}

// Map selects one column-keyed map per row.
func Map() Shape {
	return Shape{kind: KindMap, name: KindMap.String()}
}

// Object selects a caller constructor. arity is the number of columns ctor
// expects, or AnyArity to skip the column count check.
func Object(name string, arity int, ctor Constructor) Shape {
	if ctor == nil {
		panic("shape: nil constructor for " + name)
	}
	if arity < 0 {
		arity = AnyArity
	}
	return Shape{kind: KindObject, name: name, arity: arity, ctor: ctor}
}

// Kind returns the variant tag.
func (s Shape) Kind() Kind { return s.kind }

// IsZero reports whether no shape was chosen.
func (s Shape) IsZero() bool { return s.kind == kindUnset }

// Name identifies the shape in logs and configuration: the kind for
// GeneratedStruct and Map, the constructed type for Object.
func (s Shape) Name() string {
	if s.name == "" {
		return s.kind.String()
	}
	return s.name
}

// Arity returns the column count an Object constructor expects, or AnyArity.
func (s Shape) Arity() int {
	if s.kind != KindObject {
		return AnyArity
	}
	return s.arity
}

// Construct builds one Object value from a row.
func (s Shape) Construct(values []any) (any, error) {
	if s.kind != KindObject {
		return nil, fmt.Errorf("shape %s has no constructor", s.Name())
	}
	if s.arity != AnyArity && len(values) != s.arity {
		return nil, fmt.Errorf("%s expects %d columns, got %d", s.name, s.arity, len(values))
	}
	return s.ctor(values)
}

func (s Shape) String() string {
	if s.kind == KindObject {
		return "object:" + s.name
	}
	return s.Name()
}

// Or returns s unless it is the zero Shape, in which case it returns fallback.
func (s Shape) Or(fallback Shape) Shape {
	if s.IsZero() {
		return fallback
	}
	return s
}

// Parse maps a configuration value to a shape. "struct" (or
// "generated_struct") and "map" are built in; "object:<name>" is looked up in
// objects. The empty string yields the zero Shape.
func Parse(s string, objects map[string]Shape) (Shape, error) {
	v := strings.TrimSpace(s)
	switch strings.ToLower(v) {
	case "":
		return Shape{}, nil
	case "struct", "generated_struct", "generatedstruct":
		return GeneratedStruct(), nil
	case "map", "hash":
		return Map(), nil
	}

	if name, ok := strings.CutPrefix(v, "object:"); ok {
		obj, found := objects[name]
		if !found || obj.kind != KindObject {
			return Shape{}, fmt.Errorf("unknown object shape %q", name)
		}
		return obj, nil
	}
	return Shape{}, fmt.Errorf("unknown shape %q", s)
}
