package dialect

import (
	"errors"
	"fmt"
	"strings"
)

// ErrParameterCountMismatch is returned by Interpolate when the number of
// placeholders in a statement differs from the number of parameters.
var ErrParameterCountMismatch = errors.New("parameter count mismatch")

// Placeholder is the positional marker substituted by Interpolate.
const Placeholder = '?'

// Interpolate replaces every ? placeholder in template, in order, with the
// literal rendering of the matching parameter. Placeholders inside quoted
// strings, quoted identifiers and comments are left untouched.
//
// Example:
//
//	stmt, err := dialect.Interpolate(dialect.NewPostgresDialect(),
//	    "select * from foos where id = ? and name = ?", []any{1, "O'Brien"})
//	// stmt => select * from foos where id = 1 and name = 'O''Brien'
func Interpolate(d Dialect, template string, params []any) (string, error) {
	positions := placeholderPositions(template, escapesBackslash(d))
	if len(positions) != len(params) {
		return "", fmt.Errorf("%w: statement has %d placeholders, got %d parameters",
			ErrParameterCountMismatch, len(positions), len(params))
	}
	if len(positions) == 0 {
		return template, nil
	}

	var b strings.Builder
	b.Grow(len(template) + 8*len(params))
	last := 0
	for i, pos := range positions {
		lit, err := d.RenderValue(params[i])
		if err != nil {
			return "", fmt.Errorf("parameter %d: %w", i+1, err)
		}
		b.WriteString(template[last:pos])
		b.WriteString(lit)
		last = pos + 1
	}
	b.WriteString(template[last:])
	return b.String(), nil
}

// CountPlaceholders reports how many substitutable placeholders template
// holds when read with the quoting rules of d.
func CountPlaceholders(d Dialect, template string) int {
	return len(placeholderPositions(template, escapesBackslash(d)))
}

// placeholderPositions returns the byte offsets of every placeholder outside
// of quoted sections and comments. An unterminated quote or comment swallows
// the rest of the statement. With backslash set, a backslash escapes the next
// byte inside '' and "" strings; E'' strings always work that way.
func placeholderPositions(s string, backslash bool) []int {
	var out []int
	for i := 0; i < len(s); {
		switch c := s[i]; c {
		case '\'', '"', '`':
			escaped := c != '`' && (backslash || c == '\'' && escapeStringPrefix(s, i))
			i = skipQuoted(s, i+1, c, escaped)
		case '-':
			if strings.HasPrefix(s[i:], "--") {
				i = skipLineComment(s, i+2)
				continue
			}
			i++
		case '/':
			if strings.HasPrefix(s[i:], "/*") {
				i = skipBlockComment(s, i+2)
				continue
			}
			i++
		case Placeholder:
			out = append(out, i)
			i++
		default:
			i++
		}
	}
	return out
}

// escapeStringPrefix reports whether the quote at i opens a Postgres E''
// string, i.e. follows a lone E.
func escapeStringPrefix(s string, i int) bool {
	if i == 0 || (s[i-1] != 'E' && s[i-1] != 'e') {
		return false
	}
	return i == 1 || !isIdentByte(s[i-2])
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80
}

// skipQuoted returns the offset just past the closing quote, treating a
// doubled quote as an escaped one.
func skipQuoted(s string, i int, quote byte, backslash bool) int {
	for i < len(s) {
		switch {
		case backslash && s[i] == '\\':
			i += 2
			continue
		case s[i] == quote:
			if i+1 < len(s) && s[i+1] == quote {
				i += 2
				continue
			}
			return i + 1
		}
		i++
	}
	return len(s)
}

func skipLineComment(s string, i int) int {
	if j := strings.IndexByte(s[i:], '\n'); j >= 0 {
		return i + j + 1
	}
	return len(s)
}

func skipBlockComment(s string, i int) int {
	if j := strings.Index(s[i:], "*/"); j >= 0 {
		return i + j + 2
	}
	return len(s)
}
