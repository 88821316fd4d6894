package database

import (
	"context"
)

// Database is the driver boundary: anything able to run a statement and hand
// back rows. SqlDatabase and PgxDatabase adapt database/sql and pgxpool.
type Database interface {
	QueryContext(ctx context.Context, query string, args ...any) (Rows, error)
	PingContext(ctx context.Context) error
	Close() error
}

// Rows iterates a statement result, handing back each row as the values the
// driver produced.
type Rows interface {
	Next() bool
	Values() ([]any, error)
	Columns() ([]string, error)
	Err() error
	Close() error
}

// ResultSet is a fully drained statement result: column names in driver
// order and one positional value slice per row.
type ResultSet struct {
	Columns []string
	Rows    [][]any
}

// Len returns the number of rows.
func (r *ResultSet) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

// Record is a single row keyed by column name.
type Record map[string]any
