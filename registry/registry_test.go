package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Konsultn-Engineering/sqlmapper/shape"
)

func TestRegisterLookup(t *testing.T) {
	r := New()
	r.Register("foos", "SELECT * FROM foos", shape.Map())

	m, err := r.Lookup("foos")
	require.NoError(t, err)
	assert.Equal(t, "foos", m.Name)
	assert.Equal(t, "SELECT * FROM foos", m.Statement)
	assert.Equal(t, shape.KindMap, m.Shape.Kind())

	// No shape given.
	r.Register("bare", "SELECT 1", shape.Shape{})
	m, err = r.Lookup("bare")
	require.NoError(t, err)
	assert.True(t, m.Shape.IsZero())
}

func TestRegisterOverwrites(t *testing.T) {
	r := New()
	r.Register("q", "SELECT 1", shape.Map())
	r.Register("q", "SELECT 2", shape.Shape{})

	m, err := r.Lookup("q")
	require.NoError(t, err)
	assert.Equal(t, "SELECT 2", m.Statement)
	assert.True(t, m.Shape.IsZero())
	assert.Equal(t, 1, r.Len())
}

func TestLookupUnknown(t *testing.T) {
	_, err := New().Lookup("nope")
	assert.ErrorIs(t, err, ErrUnknownQuery)
	assert.ErrorContains(t, err, `"nope"`)
}

func TestConfigure(t *testing.T) {
	r := New()
	r.Configure(
		Registration{Name: "a", Statement: "SELECT 1"},
		Registration{Name: "b", Statement: "SELECT 2", Shape: shape.Map()},
		Registration{Name: "a", Statement: "SELECT 3"},
	)

	m, err := r.Lookup("a")
	require.NoError(t, err)
	assert.Equal(t, "SELECT 3", m.Statement)
	assert.Equal(t, []string{"a", "b"}, r.Names())

	// Configuring again with the same input is idempotent.
	r.Configure(Registration{Name: "a", Statement: "SELECT 3"})
	m2, err := r.Lookup("a")
	require.NoError(t, err)
	assert.Equal(t, m.Statement, m2.Statement)
	assert.Equal(t, 2, r.Len())
}

func TestDefaultShape(t *testing.T) {
	r := New()
	assert.Equal(t, shape.KindGeneratedStruct, r.DefaultShape().Kind())

	r.SetDefaultShape(shape.Map())
	assert.Equal(t, shape.KindMap, r.DefaultShape().Kind())

	r.SetDefaultShape(shape.Shape{})
	assert.Equal(t, shape.KindMap, r.DefaultShape().Kind())
}

func TestConcurrentAccess(t *testing.T) {
	r := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			r.Register(fmt.Sprintf("q%d", i), "SELECT 1", shape.Shape{})
		}(i)
		go func(i int) {
			defer wg.Done()
			_, _ = r.Lookup(fmt.Sprintf("q%d", i))
			_ = r.Names()
			_ = r.DefaultShape()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, r.Len())
}
