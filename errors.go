package sqlmapper

import (
	"errors"

	"github.com/Konsultn-Engineering/sqlmapper/coerce"
	"github.com/Konsultn-Engineering/sqlmapper/dialect"
	"github.com/Konsultn-Engineering/sqlmapper/registry"
)

var (
	// ErrMissingQuery is returned when a Request names no statement.
	ErrMissingQuery = errors.New("request has neither statement text nor query name")

	ErrUnknownQuery           = registry.ErrUnknownQuery
	ErrParameterCountMismatch = dialect.ErrParameterCountMismatch
)

type (
	ExecutionError         = coerce.ExecutionError
	ShapeConstructionError = coerce.ShapeConstructionError
)
