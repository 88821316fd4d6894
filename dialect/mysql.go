package dialect

import "strings"

type MySQL struct{}

func NewMySQLDialect() Dialect {
	return &MySQL{}
}

func (MySQL) Name() string {
	return "mysql"
}

var mysqlLiterals = literals{quote: quoteMySQL, bytes: hexLiteral}

func (MySQL) RenderValue(v any) (string, error) {
	return mysqlLiterals.render(v)
}

// EscapesBackslash reports that 'it\'s' is a single string literal, as it is
// unless the server runs with NO_BACKSLASH_ESCAPES.
func (MySQL) EscapesBackslash() bool {
	return true
}

// mysqlEscaper covers the characters MySQL treats specially inside a quoted
// literal when NO_BACKSLASH_ESCAPES is off.
var mysqlEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `''`,
	"\x00", `\0`,
	"\n", `\n`,
	"\r", `\r`,
	"\x1a", `\Z`,
)

func quoteMySQL(s string) string {
	return "'" + mysqlEscaper.Replace(s) + "'"
}
