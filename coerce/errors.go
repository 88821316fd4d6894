package coerce

import "fmt"

// ExecutionError wraps a driver failure while running Statement.
type ExecutionError struct {
	Statement string
	Err       error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("execute %q: %v", e.Statement, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// ShapeConstructionError reports a row that could not be built into Shape.
// Row is the zero-based row index, or -1 when the failure is not tied to a
// single row (for example an invalid column list).
type ShapeConstructionError struct {
	Shape string
	Row   int
	Err   error
}

func (e *ShapeConstructionError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("construct %s: %v", e.Shape, e.Err)
	}
	return fmt.Sprintf("construct %s from row %d: %v", e.Shape, e.Row, e.Err)
}

func (e *ShapeConstructionError) Unwrap() error { return e.Err }
