package sqlmapper

import (
	"reflect"
)

type sanitizer interface {
	Sanitize(template string, params []any) (string, error)
}

// inject substitutes params into template. Nil params leave template as is.
func inject(s sanitizer, template string, params any) (string, error) {
	list, ok := normalizeParams(params)
	if !ok {
		return template, nil
	}
	return s.Sanitize(template, list)
}

// normalizeParams turns the Params of a Request into an ordered list. It
// reports false when there are no params at all.
func normalizeParams(params any) ([]any, bool) {
	switch p := params.(type) {
	case nil:
		return nil, false
	case []any:
		return p, true
	case []byte:
		return []any{p}, true
	}

	rv := reflect.ValueOf(params)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		list := make([]any, rv.Len())
		for i := range list {
			list[i] = rv.Index(i).Interface()
		}
		return list, true
	}
	return []any{params}, true
}
