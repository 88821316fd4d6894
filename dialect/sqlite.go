package dialect

type SQLite struct{}

func NewSQLiteDialect() Dialect {
	return &SQLite{}
}

func (SQLite) Name() string {
	return "sqlite"
}

var sqliteLiterals = literals{
	quote: quoteStandard,
	bytes: hexLiteral,
	// TRUE/FALSE keywords only exist from 3.23 onwards.
	boolean: func(b bool) string {
		if b {
			return "1"
		}
		return "0"
	},
}

func (SQLite) RenderValue(v any) (string, error) {
	return sqliteLiterals.render(v)
}
