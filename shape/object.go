package shape

import (
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"time"
)

// ObjectOf returns an Object shape for struct type T. Each row's values are
// assigned to T's exported fields in declaration order, so T must declare
// exactly one exported field per result column.
//
// Example:
//
//	type Foo struct {
//	    ID   int64
//	    Name string
//	}
//	s := shape.ObjectOf[Foo]()
func ObjectOf[T any]() Shape {
	rt := reflect.TypeFor[T]()
	if rt.Kind() != reflect.Struct {
		panic(fmt.Sprintf("shape: ObjectOf requires a struct type, got %s", rt))
	}

	var fields [][]int
	for i := 0; i < rt.NumField(); i++ {
		if sf := rt.Field(i); sf.IsExported() {
			fields = append(fields, sf.Index)
		}
	}

	return Object(rt.String(), len(fields), func(values []any) (any, error) {
		out := reflect.New(rt).Elem()
		for i, idx := range fields {
			f := out.FieldByIndex(idx)
			if err := assign(f, values[i]); err != nil {
				return nil, fmt.Errorf("field %s: %w", rt.FieldByIndex(idx).Name, err)
			}
		}
		return out.Interface(), nil
	})
}

// ObjectFunc returns an Object shape backed by a constructor function. fn
// takes one parameter per result column and returns the built value,
// optionally followed by an error.
//
// Example:
//
//	func NewFoo(id int64, name string) *Foo { ... }
//	s, err := shape.ObjectFunc(NewFoo)
func ObjectFunc(fn any) (Shape, error) {
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func || fv.IsNil() {
		return Shape{}, fmt.Errorf("object constructor must be a function, got %T", fn)
	}
	ft := fv.Type()
	if ft.IsVariadic() {
		return Shape{}, errors.New("object constructor must not be variadic")
	}

	errType := reflect.TypeFor[error]()
	switch {
	case ft.NumOut() == 1 && ft.Out(0) != errType:
	case ft.NumOut() == 2 && ft.Out(1) == errType:
	default:
		return Shape{}, fmt.Errorf("object constructor %s must return T or (T, error)", ft)
	}

	arity := ft.NumIn()
	return Object(ft.Out(0).String(), arity, func(values []any) (any, error) {
		in := make([]reflect.Value, arity)
		for i := range in {
			in[i] = reflect.New(ft.In(i)).Elem()
			if err := assign(in[i], values[i]); err != nil {
				return nil, fmt.Errorf("argument %d: %w", i, err)
			}
		}
		out := fv.Call(in)
		if len(out) == 2 && !out[1].IsNil() {
			return nil, out[1].Interface().(error)
		}
		return out[0].Interface(), nil
	}), nil
}

// MustObjectFunc is like ObjectFunc but panics on an invalid constructor.
func MustObjectFunc(fn any) Shape {
	s, err := ObjectFunc(fn)
	if err != nil {
		panic(err)
	}
	return s
}

var (
	bytesType   = reflect.TypeFor[[]byte]()
	timeType    = reflect.TypeFor[time.Time]()
	scannerType = reflect.TypeFor[sql.Scanner]()
)

// assign stores a raw driver value into dst, converting between numeric kinds
// and between []byte and string. Destinations implementing sql.Scanner scan
// the value themselves. Anything else must already be assignable.
func assign(dst reflect.Value, raw any) error {
	if raw == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}

	src := reflect.ValueOf(raw)
	dt := dst.Type()

	if src.Type().AssignableTo(dt) {
		dst.Set(src)
		return nil
	}

	if reflect.PointerTo(dt).Implements(scannerType) {
		v := reflect.New(dt)
		if err := v.Interface().(sql.Scanner).Scan(raw); err != nil {
			return err
		}
		dst.Set(v.Elem())
		return nil
	}

	// Pointer destinations take the value of the pointee.
	if dt.Kind() == reflect.Ptr {
		elem := reflect.New(dt.Elem())
		if err := assign(elem.Elem(), raw); err != nil {
			return err
		}
		dst.Set(elem)
		return nil
	}

	switch {
	case isNumeric(src.Kind()) && isNumeric(dt.Kind()):
		if overflows(dst, src) {
			return fmt.Errorf("value %v overflows %s", raw, dt)
		}
		dst.Set(src.Convert(dt))
		return nil
	case src.Type() == bytesType && dt.Kind() == reflect.String:
		dst.SetString(string(src.Bytes()))
		return nil
	case src.Kind() == reflect.String && dt == bytesType:
		dst.SetBytes([]byte(src.String()))
		return nil
	case src.Kind() == reflect.String && dt.Kind() == reflect.String:
		dst.SetString(src.String())
		return nil
	case src.Kind() == reflect.Bool && dt.Kind() == reflect.Bool:
		dst.SetBool(src.Bool())
		return nil
	case src.Kind() == reflect.Int64 && dt.Kind() == reflect.Bool:
		// SQLite and MySQL report booleans as 0/1 integers.
		dst.SetBool(src.Int() != 0)
		return nil
	case src.Type() == timeType && dt.ConvertibleTo(timeType):
		dst.Set(src.Convert(dt))
		return nil
	}

	return fmt.Errorf("cannot use %T as %s", raw, dt)
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func overflows(dst, src reflect.Value) bool {
	switch dst.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch src.Kind() {
		case reflect.Float32, reflect.Float64:
			f := src.Float()
			return f != float64(int64(f)) || dst.OverflowInt(int64(f))
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			u := src.Uint()
			return u > 1<<63-1 || dst.OverflowInt(int64(u))
		}
		return dst.OverflowInt(src.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		switch src.Kind() {
		case reflect.Float32, reflect.Float64:
			f := src.Float()
			return f < 0 || f != float64(uint64(f)) || dst.OverflowUint(uint64(f))
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			i := src.Int()
			return i < 0 || dst.OverflowUint(uint64(i))
		}
		return dst.OverflowUint(src.Uint())
	case reflect.Float32:
		switch src.Kind() {
		case reflect.Float32, reflect.Float64:
			return dst.OverflowFloat(src.Float())
		}
	}
	return false
}
