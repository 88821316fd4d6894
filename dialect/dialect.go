package dialect

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// ErrUnsupportedValue is returned when a parameter has no literal form in
// the target dialect, such as NaN on MySQL.
var ErrUnsupportedValue = errors.New("unsupported parameter value")

// Dialect renders Go values as SQL literals for a particular database.
type Dialect interface {
	Name() string
	RenderValue(v any) (string, error)
}

// BackslashEscaper is implemented by dialects whose quoted strings treat a
// backslash as an escape character. Interpolate uses it to find the end of
// string literals in a statement.
type BackslashEscaper interface {
	EscapesBackslash() bool
}

func escapesBackslash(d Dialect) bool {
	if e, ok := d.(BackslashEscaper); ok {
		return e.EscapesBackslash()
	}
	return false
}

// ForDriver returns the dialect matching a provider or driver name.
// Unknown names fall back to Postgres rendering.
func ForDriver(name string) Dialect {
	switch strings.ToLower(name) {
	case "mysql", "mariadb":
		return NewMySQLDialect()
	case "tidb":
		return NewTiDBDialect()
	case "sqlite", "sqlite3":
		return NewSQLiteDialect()
	default:
		return NewPostgresDialect()
	}
}

// literals holds the per-dialect rendering of the value kinds that differ
// between databases. Nil boolean and nonFinite use the shared defaults.
type literals struct {
	quote     func(string) string
	bytes     func([]byte) string
	boolean   func(bool) string
	nonFinite func(float64) (string, error)
}

func (l literals) renderBool(b bool) string {
	if l.boolean != nil {
		return l.boolean(b)
	}
	if b {
		return "TRUE"
	}
	return "FALSE"
}

func (l literals) renderFloat(f float64, bits int) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		if l.nonFinite != nil {
			return l.nonFinite(f)
		}
		return "", fmt.Errorf("%w: %v", ErrUnsupportedValue, f)
	}
	return strconv.FormatFloat(f, 'f', -1, bits), nil
}

// render holds the rules shared by every dialect.
func (l literals) render(v any) (string, error) {
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Ptr && rv.IsNil() {
		return "NULL", nil
	}

	switch val := v.(type) {
	case nil:
		return "NULL", nil
	case string:
		return l.quote(val), nil
	case bool:
		return l.renderBool(val), nil
	case int, int8, int16, int32, int64:
		return fmt.Sprintf("%d", val), nil
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val), nil
	case float32:
		return l.renderFloat(float64(val), 32)
	case float64:
		return l.renderFloat(val, 64)
	case time.Time:
		return l.quote(val.Format("2006-01-02 15:04:05.000000")), nil
	case []byte:
		if val == nil {
			return "NULL", nil
		}
		return l.bytes(val), nil
	case driver.Valuer:
		inner, err := val.Value()
		if err != nil {
			return "", fmt.Errorf("value of %T: %w", val, err)
		}
		return l.render(inner)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return "NULL", nil
		}
		return l.render(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() || rv.Len() == 0 {
			return "NULL", nil
		}
		parts := make([]string, rv.Len())
		for i := range parts {
			part, err := l.render(rv.Index(i).Interface())
			if err != nil {
				return "", err
			}
			parts[i] = part
		}
		return strings.Join(parts, ","), nil
	case reflect.String:
		return l.quote(rv.String()), nil
	case reflect.Bool:
		return l.renderBool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32:
		return l.renderFloat(rv.Float(), 32)
	case reflect.Float64:
		return l.renderFloat(rv.Float(), 64)
	}
	return l.quote(fmt.Sprint(v)), nil
}

// quoteStandard doubles embedded single quotes, as the SQL standard requires.
func quoteStandard(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func hexLiteral(b []byte) string {
	return fmt.Sprintf("X'%x'", b)
}
