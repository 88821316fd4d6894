package dialect

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type status int

// brokenValuer fails to produce a driver value.
type brokenValuer struct{ name string }

func (b brokenValuer) Value() (driver.Value, error) {
	return nil, errors.New("cannot encode " + b.name)
}

func TestRenderValue(t *testing.T) {
	name := "foo"
	var nilName *string
	yes := true
	ts := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

	tests := []struct {
		name     string
		dialect  Dialect
		input    any
		expected string
	}{
		{"NilPostgres", NewPostgresDialect(), nil, "NULL"},
		{"String", NewPostgresDialect(), "foo_0", "'foo_0'"},
		{"EmbeddedQuote", NewPostgresDialect(), "O'Brien", "'O''Brien'"},
		{"InjectionAttempt", NewPostgresDialect(), "x'; drop table foos; --", "'x''; drop table foos; --'"},
		{"Int", NewPostgresDialect(), 42, "42"},
		{"NegativeInt64", NewPostgresDialect(), int64(-7), "-7"},
		{"Uint", NewPostgresDialect(), uint32(7), "7"},
		{"Float", NewPostgresDialect(), 1.5, "1.5"},
		{"Float32", NewPostgresDialect(), float32(0.25), "0.25"},
		{"BoolTrue", NewPostgresDialect(), true, "TRUE"},
		{"BoolFalseMySQL", NewMySQLDialect(), false, "FALSE"},
		{"BoolSQLite", NewSQLiteDialect(), true, "1"},
		{"Time", NewPostgresDialect(), ts, "'2024-03-09 14:05:07.000000'"},
		{"BytesPostgres", NewPostgresDialect(), []byte{0xde, 0xad}, `E'\\xdead'::bytea`},
		{"BytesMySQL", NewMySQLDialect(), []byte{0xbe, 0xef}, "X'beef'"},
		{"BytesSQLite", NewSQLiteDialect(), []byte{0x01}, "X'01'"},
		{"Pointer", NewPostgresDialect(), &name, "'foo'"},
		{"NilPointer", NewPostgresDialect(), nilName, "NULL"},
		{"Slice", NewPostgresDialect(), []int{1, 2, 3}, "1,2,3"},
		{"StringSlice", NewPostgresDialect(), []string{"a", "b'c"}, "'a','b''c'"},
		{"EmptySlice", NewPostgresDialect(), []int{}, "NULL"},
		{"NamedInt", NewPostgresDialect(), status(3), "3"},
		{"ValuerValid", NewPostgresDialect(), sql.NullString{String: "x", Valid: true}, "'x'"},
		{"ValuerNull", NewPostgresDialect(), sql.NullInt64{}, "NULL"},
		{"MySQLBackslash", NewMySQLDialect(), `a\'b`, `'a\\''b'`},
		{"MySQLNewline", NewMySQLDialect(), "a\nb", `'a\nb'`},
		{"TiDBInheritsMySQL", NewTiDBDialect(), `c:\dir`, `'c:\\dir'`},
		{"PostgresBackslash", NewPostgresDialect(), `\' OR 1=1 --`, `E'\\'' OR 1=1 --'`},
		{"PostgresNaN", NewPostgresDialect(), math.NaN(), "'NaN'::float8"},
		{"PostgresInf", NewPostgresDialect(), math.Inf(1), "'Infinity'::float8"},
		{"PostgresNegInf", NewPostgresDialect(), float32(math.Inf(-1)), "'-Infinity'::float8"},
		{"SQLiteBoolPointer", NewSQLiteDialect(), &yes, "1"},
		{"SQLiteBoolSlice", NewSQLiteDialect(), []bool{true, false}, "1,0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.dialect.RenderValue(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRenderValue_Errors(t *testing.T) {
	t.Run("ValuerError", func(t *testing.T) {
		_, err := NewPostgresDialect().RenderValue(brokenValuer{"x"})
		assert.ErrorContains(t, err, "cannot encode x")
	})

	t.Run("ValuerErrorInList", func(t *testing.T) {
		_, err := NewMySQLDialect().RenderValue([]any{1, brokenValuer{"y"}})
		assert.ErrorContains(t, err, "cannot encode y")
	})

	t.Run("NonFiniteWithoutLiteral", func(t *testing.T) {
		_, err := NewMySQLDialect().RenderValue(math.NaN())
		assert.ErrorIs(t, err, ErrUnsupportedValue)

		_, err = NewSQLiteDialect().RenderValue([]float64{1, math.Inf(1)})
		assert.ErrorIs(t, err, ErrUnsupportedValue)
	})
}

func TestForDriver(t *testing.T) {
	assert.Equal(t, "postgres", ForDriver("postgres").Name())
	assert.Equal(t, "postgres", ForDriver("pgx").Name())
	assert.Equal(t, "mysql", ForDriver("MySQL").Name())
	assert.Equal(t, "tidb", ForDriver("tidb").Name())
	assert.Equal(t, "sqlite", ForDriver("sqlite3").Name())
}

func TestInterpolate(t *testing.T) {
	pg := NewPostgresDialect()

	t.Run("NoPlaceholders", func(t *testing.T) {
		stmt, err := Interpolate(pg, "select * from foos order by id", nil)
		require.NoError(t, err)
		assert.Equal(t, "select * from foos order by id", stmt)
	})

	t.Run("SingleParam", func(t *testing.T) {
		stmt, err := Interpolate(pg, "select * from foos where id = ?", []any{1})
		require.NoError(t, err)
		assert.Equal(t, "select * from foos where id = 1", stmt)
	})

	t.Run("ParamsInOrder", func(t *testing.T) {
		stmt, err := Interpolate(pg, "select * from foos where id = ? and name = ?", []any{0, "foo_0"})
		require.NoError(t, err)
		assert.Equal(t, "select * from foos where id = 0 and name = 'foo_0'", stmt)
	})

	t.Run("EscapesQuotes", func(t *testing.T) {
		stmt, err := Interpolate(pg, "select * from foos where name = ?", []any{"' or '1'='1"})
		require.NoError(t, err)
		assert.Equal(t, "select * from foos where name = ''' or ''1''=''1'", stmt)
		assert.Equal(t, 0, CountPlaceholders(pg, stmt))
	})

	t.Run("ListExpansion", func(t *testing.T) {
		stmt, err := Interpolate(pg, "select * from foos where id in (?)", []any{[]int64{1, 2}})
		require.NoError(t, err)
		assert.Equal(t, "select * from foos where id in (1,2)", stmt)
	})

	t.Run("SkipsQuotedAndComments", func(t *testing.T) {
		tmpl := "select '?' as q, \"w?\" from foos -- trailing ?\n where id = ? /* ? */"
		stmt, err := Interpolate(pg, tmpl, []any{5})
		require.NoError(t, err)
		assert.Equal(t, "select '?' as q, \"w?\" from foos -- trailing ?\n where id = 5 /* ? */", stmt)
	})

	t.Run("DoubledQuoteInsideLiteral", func(t *testing.T) {
		stmt, err := Interpolate(pg, "select 'it''s ?' where id = ?", []any{1})
		require.NoError(t, err)
		assert.Equal(t, "select 'it''s ?' where id = 1", stmt)
	})

	t.Run("TooFewParams", func(t *testing.T) {
		_, err := Interpolate(pg, "select * from foos where id = ? and name = ?", []any{1})
		require.ErrorIs(t, err, ErrParameterCountMismatch)
	})

	t.Run("TooManyParams", func(t *testing.T) {
		_, err := Interpolate(pg, "select * from foos", []any{1})
		require.ErrorIs(t, err, ErrParameterCountMismatch)
	})

	t.Run("NilParamRendersNull", func(t *testing.T) {
		stmt, err := Interpolate(pg, "select ? is null", []any{nil})
		require.NoError(t, err)
		assert.Equal(t, "select NULL is null", stmt)
	})

	t.Run("RenderErrorIsReturned", func(t *testing.T) {
		stmt, err := Interpolate(pg, "select * from foos where name = ?", []any{brokenValuer{"x"}})
		require.ErrorContains(t, err, "parameter 1")
		assert.ErrorContains(t, err, "cannot encode x")
		assert.Empty(t, stmt)
	})

	t.Run("MySQLBackslashEscapedQuote", func(t *testing.T) {
		stmt, err := Interpolate(NewMySQLDialect(), `select * from foos where note = 'it\'s ?' and id = ?`, []any{7})
		require.NoError(t, err)
		assert.Equal(t, `select * from foos where note = 'it\'s ?' and id = 7`, stmt)
	})

	t.Run("TiDBBackslashEscapedQuote", func(t *testing.T) {
		stmt, err := Interpolate(NewTiDBDialect(), `select "a\"?" , ?`, []any{"b"})
		require.NoError(t, err)
		assert.Equal(t, `select "a\"?" , 'b'`, stmt)
	})

	t.Run("PostgresEscapeString", func(t *testing.T) {
		stmt, err := Interpolate(pg, `select E'it\'s ?', ? from foos`, []any{1})
		require.NoError(t, err)
		assert.Equal(t, `select E'it\'s ?', 1 from foos`, stmt)
	})

	t.Run("PostgresPlainStringKeepsBackslash", func(t *testing.T) {
		stmt, err := Interpolate(pg, `select 'c:\' , ?`, []any{1})
		require.NoError(t, err)
		assert.Equal(t, `select 'c:\' , 1`, stmt)
	})
}

func TestCountPlaceholders(t *testing.T) {
	pg := NewPostgresDialect()
	assert.Equal(t, 0, CountPlaceholders(pg, ""))
	assert.Equal(t, 2, CountPlaceholders(pg, "? ?"))
	assert.Equal(t, 1, CountPlaceholders(pg, "select '??' , ?"))
	assert.Equal(t, 0, CountPlaceholders(pg, "select 'unterminated ?"))
	assert.Equal(t, 1, CountPlaceholders(pg, `select e'\'?' , ?`))
	assert.Equal(t, 2, CountPlaceholders(pg, `select name'\' , ? , ?`))
	assert.Equal(t, 1, CountPlaceholders(NewMySQLDialect(), `select '\\' , ?`))
}
