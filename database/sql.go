package database

import (
	"context"
	"database/sql"
)

// SqlDatabase implements Database for *sql.DB.
type SqlDatabase struct {
	db *sql.DB
}

// NewSqlDatabase creates a new SqlDatabase.
func NewSqlDatabase(db *sql.DB) *SqlDatabase {
	return &SqlDatabase{db: db}
}

// QueryContext executes a query with a context.
func (s *SqlDatabase) QueryContext(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return &SqlRows{rows: rows}, nil
}

// PingContext verifies the connection to the database is alive.
func (s *SqlDatabase) PingContext(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database.
func (s *SqlDatabase) Close() error { return s.db.Close() }

// DB returns the wrapped *sql.DB.
func (s *SqlDatabase) DB() *sql.DB { return s.db }

// SqlRows implements Rows for *sql.Rows.
type SqlRows struct {
	rows *sql.Rows
	cols []string
}

// Next prepares the next result row for reading.
func (s *SqlRows) Next() bool { return s.rows.Next() }

// Close closes the rows iterator.
func (s *SqlRows) Close() error { return s.rows.Close() }

// Err returns the error, if any, that was encountered during iteration.
func (s *SqlRows) Err() error { return s.rows.Err() }

// Columns returns the column names.
func (s *SqlRows) Columns() ([]string, error) {
	if s.cols == nil {
		cols, err := s.rows.Columns()
		if err != nil {
			return nil, err
		}
		s.cols = cols
	}
	return s.cols, nil
}

// Values returns the values for the current row as the driver produced them.
// database/sql has no direct accessor, so every column is scanned into an any.
func (s *SqlRows) Values() ([]any, error) {
	cols, err := s.Columns()
	if err != nil {
		return nil, err
	}
	values := make([]any, len(cols))
	dests := make([]any, len(cols))
	for i := range values {
		dests[i] = &values[i]
	}
	if err := s.rows.Scan(dests...); err != nil {
		return nil, err
	}
	return values, nil
}

// Assert that SqlDatabase implements the Database interface.
var _ Database = (*SqlDatabase)(nil)
