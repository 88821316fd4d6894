package sqlmapper

import (
	"github.com/Konsultn-Engineering/sqlmapper/registry"
	"github.com/Konsultn-Engineering/sqlmapper/shape"
)

// resolved is a Request turned into something executable.
type resolved struct {
	name      string
	statement string
	shape     shape.Shape
}

// label names the statement in logs.
func (r resolved) label() string {
	if r.name == "" {
		return "inline"
	}
	return r.name
}

// resolve finds the statement and effective shape of req and substitutes its
// parameters. Shape precedence: request, then mapping, then registry default.
func resolve(reg *registry.Registry, s sanitizer, req Request) (resolved, error) {
	if req.Query.IsZero() {
		return resolved{}, ErrMissingQuery
	}

	var r resolved
	if req.Query.IsNamed() {
		m, err := reg.Lookup(req.Query.name)
		if err != nil {
			return resolved{}, err
		}
		r = resolved{
			name:      m.Name,
			statement: m.Statement,
			shape:     req.Shape.Or(m.Shape).Or(reg.DefaultShape()),
		}
	} else {
		r = resolved{
			statement: req.Query.text,
			shape:     req.Shape.Or(reg.DefaultShape()),
		}
	}

	stmt, err := inject(s, r.statement, req.Params)
	if err != nil {
		return resolved{}, err
	}
	r.statement = stmt
	return r, nil
}
