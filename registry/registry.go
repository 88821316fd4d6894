// Package registry stores named SQL statements and the shape their results
// are coerced into.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/Konsultn-Engineering/sqlmapper/shape"
)

// ErrUnknownQuery is returned when a name was never registered.
var ErrUnknownQuery = errors.New("unknown query")

// Mapping is one registered statement.
type Mapping struct {
	Name      string
	Statement string
	// Shape is the zero Shape when the registration named none.
	Shape shape.Shape
}

// Registration is the input to Configure.
type Registration struct {
	Name      string
	Statement string
	Shape     shape.Shape
}

// Registry maps names to statements. It is safe for concurrent use.
type Registry struct {
	mappings     map[string]Mapping
	defaultShape shape.Shape
	mu           sync.RWMutex
}

// New returns an empty registry whose default shape is GeneratedStruct.
func New() *Registry {
	return &Registry{
		mappings:     make(map[string]Mapping),
		defaultShape: shape.GeneratedStruct(),
	}
}

// Register stores statement under name, replacing any earlier registration.
// The statement is not validated.
func (r *Registry) Register(name, statement string, s shape.Shape) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mappings[name] = Mapping{Name: name, Statement: statement, Shape: s}
}

// Configure registers each entry in order; later entries win on name clashes.
func (r *Registry) Configure(regs ...Registration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, reg := range regs {
		r.mappings[reg.Name] = Mapping(reg)
	}
}

// Lookup returns the mapping registered under name.
func (r *Registry) Lookup(name string) (Mapping, error) {
	r.mu.RLock()
	m, ok := r.mappings[name]
	r.mu.RUnlock()
	if !ok {
		return Mapping{}, fmt.Errorf("%w: %q", ErrUnknownQuery, name)
	}
	return m, nil
}

// SetDefaultShape changes the shape used when neither the request nor the
// mapping names one. The zero Shape is ignored.
func (r *Registry) SetDefaultShape(s shape.Shape) {
	if s.IsZero() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaultShape = s
}

func (r *Registry) DefaultShape() shape.Shape {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaultShape
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.mappings))
	for name := range r.mappings {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.mappings)
}
