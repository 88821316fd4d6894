// Package coerce turns the rows of an executed statement into values of a
// result shape. There is one Strategy per shape.Kind.
package coerce

import (
	"context"
	"fmt"

	"github.com/Konsultn-Engineering/sqlmapper/database"
	"github.com/Konsultn-Engineering/sqlmapper/record"
	"github.com/Konsultn-Engineering/sqlmapper/schema"
	"github.com/Konsultn-Engineering/sqlmapper/shape"
)

// Conn is the part of a connection the strategies execute against.
type Conn interface {
	ExecuteQuery(ctx context.Context, statement string) (*database.ResultSet, error)
	ExecuteRecords(ctx context.Context, statement string) ([]database.Record, error)
}

// Strategy executes a statement and coerces every row, in driver order.
type Strategy interface {
	Execute(ctx context.Context, conn Conn, statement string) ([]any, error)
}

// Options tune the strategies.
type Options struct {
	// Keys normalizes Map keys. Nil selects schema.DefaultColumnNaming.
	Keys schema.ColumnNamingStrategy
}

// For returns the strategy for s.
func For(s shape.Shape, opts Options) (Strategy, error) {
	switch s.Kind() {
	case shape.KindObject:
		return objectStrategy{shape: s}, nil
	case shape.KindGeneratedStruct:
		return generatedStrategy{}, nil
	case shape.KindMap:
		keys := opts.Keys
		if keys == nil {
			keys = schema.DefaultColumnNaming()
		}
		return mapStrategy{keys: keys}, nil
	default:
		return nil, fmt.Errorf("no coercion strategy for shape %s", s.Kind())
	}
}

type objectStrategy struct {
	shape shape.Shape
}

func (o objectStrategy) Execute(ctx context.Context, conn Conn, statement string) ([]any, error) {
	rs, err := conn.ExecuteQuery(ctx, statement)
	if err != nil {
		return nil, &ExecutionError{Statement: statement, Err: err}
	}

	out := make([]any, 0, rs.Len())
	for i, row := range rs.Rows {
		v, err := o.shape.Construct(row)
		if err != nil {
			return nil, &ShapeConstructionError{Shape: o.shape.String(), Row: i, Err: err}
		}
		out = append(out, v)
	}
	return out, nil
}

type generatedStrategy struct{}

func (generatedStrategy) Execute(ctx context.Context, conn Conn, statement string) ([]any, error) {
	rs, err := conn.ExecuteQuery(ctx, statement)
	if err != nil {
		return nil, &ExecutionError{Statement: statement, Err: err}
	}

	// One type per call, built even for empty results so bad column lists
	// fail consistently.
	typ, err := record.NewType(rs.Columns)
	if err != nil {
		return nil, &ShapeConstructionError{Shape: shape.KindGeneratedStruct.String(), Row: -1, Err: err}
	}

	out := make([]any, 0, rs.Len())
	for i, row := range rs.Rows {
		rec, err := typ.New(row)
		if err != nil {
			return nil, &ShapeConstructionError{Shape: typ.String(), Row: i, Err: err}
		}
		out = append(out, rec)
	}
	return out, nil
}

type mapStrategy struct {
	keys schema.ColumnNamingStrategy
}

func (m mapStrategy) Execute(ctx context.Context, conn Conn, statement string) ([]any, error) {
	records, err := conn.ExecuteRecords(ctx, statement)
	if err != nil {
		return nil, &ExecutionError{Statement: statement, Err: err}
	}

	out := make([]any, 0, len(records))
	for _, rec := range records {
		row := make(map[string]any, len(rec))
		for col, v := range rec {
			row[m.keys.ColumnName(col)] = v
		}
		out = append(out, row)
	}
	return out, nil
}
