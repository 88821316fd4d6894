package sqlmapper

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/Konsultn-Engineering/sqlmapper/coerce"
	"github.com/Konsultn-Engineering/sqlmapper/logger"
	"github.com/Konsultn-Engineering/sqlmapper/registry"
	"github.com/Konsultn-Engineering/sqlmapper/schema"
)

// Connection is what a Mapper needs from the database layer.
// *database.Executor satisfies it.
type Connection interface {
	coerce.Conn
	sanitizer
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithLogger sets the logger fetches are reported to.
func WithLogger(l logger.Logger) Option {
	return func(m *Mapper) { m.log = l }
}

// WithKeyNaming sets how Map shape keys are derived from column names.
func WithKeyNaming(keys schema.ColumnNamingStrategy) Option {
	return func(m *Mapper) { m.opts.Keys = keys }
}

// Mapper executes requests against a connection and coerces the results.
type Mapper struct {
	conn     Connection
	registry *registry.Registry
	opts     coerce.Options
	log      logger.Logger
}

// New returns a Mapper over conn. A nil reg gets a fresh registry.
func New(conn Connection, reg *registry.Registry, opts ...Option) *Mapper {
	if reg == nil {
		reg = registry.New()
	}
	m := &Mapper{
		conn:     conn,
		registry: reg,
		log:      logger.Log,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.opts.Keys == nil {
		m.opts.Keys = schema.DefaultColumnNaming()
	}
	return m
}

// Registry returns the registry named requests are resolved against.
func (m *Mapper) Registry() *registry.Registry { return m.registry }

// Configure registers statements in bulk; see registry.Registry.Configure.
func (m *Mapper) Configure(regs ...registry.Registration) {
	m.registry.Configure(regs...)
}

// Fetch runs req and returns every row coerced into the effective shape, in
// the order the driver returned them. Zero rows yield an empty slice.
func (m *Mapper) Fetch(ctx context.Context, req Request) ([]any, error) {
	start := time.Now()
	log := m.log.AddContext(logger.Ctx{"fetch_id": uuid.NewString()})

	r, err := resolve(m.registry, m.conn, req)
	if err != nil {
		log.Debug("Failed resolving request", logger.Ctx{"query": req.Query.String(), "err": err})
		return nil, err
	}
	log = log.AddContext(logger.Ctx{"query": r.label(), "shape": r.shape.String()})

	strategy, err := coerce.For(r.shape, m.opts)
	if err != nil {
		return nil, err
	}

	out, err := strategy.Execute(ctx, m.conn, r.statement)
	if err != nil {
		log.Debug("Failed fetch", logger.Ctx{"err": err, "duration": time.Since(start)})
		return nil, err
	}

	log.Debug("Fetched "+schema.Quantify("row", len(out)), logger.Ctx{"duration": time.Since(start)})
	return out, nil
}

// FetchOne runs req and returns the first result. ok is false when the
// statement produced no rows. The statement is not limited to one row.
func (m *Mapper) FetchOne(ctx context.Context, req Request) (any, bool, error) {
	out, err := m.Fetch(ctx, req)
	if err != nil || len(out) == 0 {
		return nil, false, err
	}
	return out[0], true, nil
}

// FetchAs is Fetch with every result asserted to T.
func FetchAs[T any](ctx context.Context, m *Mapper, req Request) ([]T, error) {
	out, err := m.Fetch(ctx, req)
	if err != nil {
		return nil, err
	}

	typed := make([]T, len(out))
	for i, v := range out {
		t, ok := v.(T)
		if !ok {
			return nil, &ShapeConstructionError{
				Shape: reflect.TypeFor[T]().String(),
				Row:   i,
				Err:   fmt.Errorf("result is %T", v),
			}
		}
		typed[i] = t
	}
	return typed, nil
}

// FetchOneAs is FetchOne with the result asserted to T.
func FetchOneAs[T any](ctx context.Context, m *Mapper, req Request) (T, bool, error) {
	var zero T
	out, err := FetchAs[T](ctx, m, req)
	if err != nil || len(out) == 0 {
		return zero, false, err
	}
	return out[0], true, nil
}
