package schema

import (
	"fmt"
	"strings"
	"unicode"

	pluralizer "github.com/gertd/go-pluralize"

	"github.com/Konsultn-Engineering/sqlmapper/cache"
)

// Naming utilities used to turn driver column names into map keys.

// pluralizeClient is a singleton instance for consistent pluralization behavior.
var pluralizeClient = pluralizer.NewClient()

// ColumnNamingStrategy defines how a result column name becomes a map key.
type ColumnNamingStrategy interface {
	// ColumnName converts a column name to its canonical key.
	// Should return consistent results for the same input.
	ColumnName(column string) string
}

// ColumnNamingType represents different column naming conventions.
type ColumnNamingType int

const (
	ColumnSnakeCase  ColumnNamingType = iota // user_id, first_name, created_at
	ColumnCamelCase                          // userId, firstName, createdAt
	ColumnPascalCase                         // UserId, FirstName, CreatedAt
	ColumnPreserve                           // exactly as the driver reported it
)

func (t ColumnNamingType) String() string {
	switch t {
	case ColumnSnakeCase:
		return "snake"
	case ColumnCamelCase:
		return "camel"
	case ColumnPascalCase:
		return "pascal"
	case ColumnPreserve:
		return "preserve"
	default:
		return fmt.Sprintf("ColumnNamingType(%d)", int(t))
	}
}

// ParseColumnNaming maps a configuration value to a naming type.
// The empty string selects snake case.
func ParseColumnNaming(s string) (ColumnNamingType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "snake", "snake_case":
		return ColumnSnakeCase, nil
	case "camel", "camelcase":
		return ColumnCamelCase, nil
	case "pascal", "pascalcase":
		return ColumnPascalCase, nil
	case "preserve", "none":
		return ColumnPreserve, nil
	}
	return 0, fmt.Errorf("unknown column naming %q", s)
}

// columnNamingStrategy implements ColumnNamingStrategy for different naming conventions.
type columnNamingStrategy struct {
	namingType ColumnNamingType
}

// NewColumnNamingStrategy creates a new column naming strategy.
func NewColumnNamingStrategy(namingType ColumnNamingType) ColumnNamingStrategy {
	return &columnNamingStrategy{namingType: namingType}
}

// ColumnName converts column names according to the configured strategy.
func (c *columnNamingStrategy) ColumnName(column string) string {
	column = unquoteIdentifier(column)
	switch c.namingType {
	case ColumnPreserve:
		return column
	case ColumnCamelCase:
		return toCamelCase(column)
	case ColumnPascalCase:
		return toPascalCase(column)
	default:
		return toSnakeCase(column)
	}
}

// cachedColumnNaming memoizes another strategy behind an LRU.
type cachedColumnNaming struct {
	names *cache.Names
}

// NewCachedColumnNaming wraps strategy so each distinct column name is only
// converted once while it stays in the cache.
func NewCachedColumnNaming(strategy ColumnNamingStrategy, size int) ColumnNamingStrategy {
	return &cachedColumnNaming{names: cache.NewNames(size, strategy.ColumnName)}
}

func (c *cachedColumnNaming) ColumnName(column string) string {
	return c.names.Get(column)
}

// DefaultColumnNaming returns the cached snake_case strategy.
func DefaultColumnNaming() ColumnNamingStrategy {
	return NewCachedColumnNaming(NewColumnNamingStrategy(ColumnSnakeCase), cache.DefaultNamesSize)
}

// Quantify renders a count with a correctly pluralized noun: "1 row", "2 rows".
func Quantify(word string, count int) string {
	return pluralizeClient.Pluralize(word, count, true)
}

// unquoteIdentifier strips one level of "", `` or [] quoting some drivers
// leave around column names.
func unquoteIdentifier(s string) string {
	if l := len(s); l >= 2 {
		switch {
		case s[0] == '"' && s[l-1] == '"',
			s[0] == '`' && s[l-1] == '`',
			s[0] == '[' && s[l-1] == ']':
			return s[1 : l-1]
		}
	}
	return s
}

var separatorReplacer = strings.NewReplacer(" ", "_", "-", "_")

// toSnakeCase converts any naming convention to snake_case.
// Handles acronyms and digits: UserID -> user_id, HTTPServer -> http_server.
func toSnakeCase(name string) string {
	if name == "" {
		return ""
	}

	// If already snake_case (no uppercase), only separators change
	if !hasUpperCase(name) {
		return separatorReplacer.Replace(name)
	}

	var result strings.Builder
	result.Grow(len(name) + 10)

	runes := []rune(name)

	for i, r := range runes {
		if r == ' ' || r == '-' {
			r = '_'
		}
		needsUnderscore := false

		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]

			// 1. Previous char is lowercase or digit: aB -> a_b, a1B -> a1_b
			// 2. Previous char is uppercase, but next char is lowercase: ABc -> a_bc
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				needsUnderscore = true
			} else if unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
				needsUnderscore = true
			}
		}

		if needsUnderscore {
			result.WriteByte('_')
		}

		result.WriteRune(unicode.ToLower(r))
	}

	return result.String()
}

// toCamelCase converts any naming convention to camelCase.
func toCamelCase(name string) string {
	pascal := toPascalCase(name)
	if pascal == "" {
		return ""
	}
	runes := []rune(pascal)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// toPascalCase converts any naming convention to PascalCase.
func toPascalCase(name string) string {
	if name == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(name))

	for _, part := range strings.Split(toSnakeCase(name), "_") {
		if part == "" {
			continue
		}
		runes := []rune(part)
		runes[0] = unicode.ToUpper(runes[0])
		result.WriteString(string(runes))
	}

	return result.String()
}

// hasUpperCase returns true if the string contains any uppercase letters.
func hasUpperCase(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}
