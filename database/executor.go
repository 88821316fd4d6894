package database

import (
	"context"
	"errors"

	"github.com/Konsultn-Engineering/sqlmapper/dialect"
)

// Executor runs fully rendered statements against a Database and drains the
// rows it gets back. It is the connection the mapper talks to.
type Executor struct {
	db      Database
	dialect dialect.Dialect
}

// NewExecutor pairs a database with the dialect used to sanitize parameters.
// A nil dialect falls back to Postgres literal rendering.
func NewExecutor(db Database, d dialect.Dialect) *Executor {
	if d == nil {
		d = dialect.NewPostgresDialect()
	}
	return &Executor{db: db, dialect: d}
}

// Dialect returns the dialect used by Sanitize.
func (e *Executor) Dialect() dialect.Dialect { return e.dialect }

// ExecuteQuery runs statement and returns its columns and positional rows.
func (e *Executor) ExecuteQuery(ctx context.Context, statement string) (rs *ResultSet, err error) {
	rows, err := e.db.QueryContext(ctx, statement)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = errors.Join(err, rows.Close())
		if err != nil {
			rs = nil
		}
	}()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	rs = &ResultSet{Columns: append([]string(nil), cols...)}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		rs.Rows = append(rs.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rs, nil
}

// ExecuteRecords runs statement and returns each row keyed by column name.
// When a column name repeats, the rightmost value wins.
func (e *Executor) ExecuteRecords(ctx context.Context, statement string) ([]Record, error) {
	rs, err := e.ExecuteQuery(ctx, statement)
	if err != nil {
		return nil, err
	}
	records := make([]Record, len(rs.Rows))
	for i, row := range rs.Rows {
		rec := make(Record, len(rs.Columns))
		for j, col := range rs.Columns {
			rec[col] = row[j]
		}
		records[i] = rec
	}
	return records, nil
}

// Sanitize substitutes params into the ? placeholders of template using the
// executor's dialect.
func (e *Executor) Sanitize(template string, params []any) (string, error) {
	return dialect.Interpolate(e.dialect, template, params)
}

// Ping checks the underlying database is reachable.
func (e *Executor) Ping(ctx context.Context) error {
	return e.db.PingContext(ctx)
}
