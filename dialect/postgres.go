package dialect

import (
	"fmt"
	"math"
	"strings"
)

type Postgres struct{}

func NewPostgresDialect() Dialect {
	return &Postgres{}
}

func (Postgres) Name() string {
	return "postgres"
}

var postgresLiterals = literals{
	quote: quotePostgres,
	bytes: func(b []byte) string {
		return fmt.Sprintf(`E'\\x%x'::bytea`, b)
	},
	nonFinite: func(f float64) (string, error) {
		switch {
		case math.IsNaN(f):
			return "'NaN'::float8", nil
		case math.IsInf(f, 1):
			return "'Infinity'::float8", nil
		default:
			return "'-Infinity'::float8", nil
		}
	},
}

// RenderValue output does not depend on standard_conforming_strings: strings
// holding a backslash are written as E'' escape strings.
func (Postgres) RenderValue(v any) (string, error) {
	return postgresLiterals.render(v)
}

var postgresEscaper = strings.NewReplacer(`\`, `\\`, `'`, `''`)

func quotePostgres(s string) string {
	if !strings.Contains(s, `\`) {
		return quoteStandard(s)
	}
	return "E'" + postgresEscaper.Replace(s) + "'"
}
