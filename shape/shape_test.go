package shape

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type foo struct {
	ID   int64
	Name string
	note string
}

type fooPtr struct {
	ID   *int
	Name *string
}

func newFoo(id int, name string) *foo {
	return &foo{ID: int64(id), Name: name}
}

func TestKinds(t *testing.T) {
	assert.True(t, Shape{}.IsZero())
	assert.Equal(t, "unset", Shape{}.Kind().String())
	assert.Equal(t, KindGeneratedStruct, GeneratedStruct().Kind())
	assert.Equal(t, KindMap, Map().Kind())
	assert.Equal(t, "struct", GeneratedStruct().String())
	assert.Equal(t, "map", Map().Name())
	assert.Equal(t, AnyArity, Map().Arity())

	obj := ObjectOf[foo]()
	assert.Equal(t, KindObject, obj.Kind())
	assert.Equal(t, "shape.foo", obj.Name())
	assert.Equal(t, "object:shape.foo", obj.String())
	assert.Equal(t, 2, obj.Arity())
}

func TestOr(t *testing.T) {
	assert.Equal(t, KindMap, Shape{}.Or(Map()).Kind())
	assert.Equal(t, KindGeneratedStruct, GeneratedStruct().Or(Map()).Kind())
}

func TestObjectOf(t *testing.T) {
	s := ObjectOf[foo]()

	v, err := s.Construct([]any{int64(0), "foo_0"})
	require.NoError(t, err)
	assert.Equal(t, foo{ID: 0, Name: "foo_0"}, v)

	t.Run("ConvertsNumericAndBytes", func(t *testing.T) {
		v, err := s.Construct([]any{int32(7), []byte("foo_7")})
		require.NoError(t, err)
		assert.Equal(t, foo{ID: 7, Name: "foo_7"}, v)
	})

	t.Run("NilBecomesZero", func(t *testing.T) {
		v, err := s.Construct([]any{nil, nil})
		require.NoError(t, err)
		assert.Equal(t, foo{}, v)
	})

	t.Run("ArityMismatch", func(t *testing.T) {
		_, err := s.Construct([]any{int64(1)})
		assert.ErrorContains(t, err, "expects 2 columns, got 1")
	})

	t.Run("TypeMismatch", func(t *testing.T) {
		_, err := s.Construct([]any{"not a number", "x"})
		assert.ErrorContains(t, err, "field ID")
	})

	t.Run("IntNotRenderedAsString", func(t *testing.T) {
		_, err := s.Construct([]any{int64(1), int64(65)})
		assert.Error(t, err)
	})

	t.Run("PointerFields", func(t *testing.T) {
		v, err := ObjectOf[fooPtr]().Construct([]any{int64(3), "x"})
		require.NoError(t, err)
		got := v.(fooPtr)
		require.NotNil(t, got.ID)
		assert.Equal(t, 3, *got.ID)
		assert.Equal(t, "x", *got.Name)

		v, err = ObjectOf[fooPtr]().Construct([]any{nil, nil})
		require.NoError(t, err)
		assert.Nil(t, v.(fooPtr).ID)
	})

	t.Run("Overflow", func(t *testing.T) {
		type small struct{ N int8 }
		_, err := ObjectOf[small]().Construct([]any{int64(300)})
		assert.ErrorContains(t, err, "overflows")
	})

	t.Run("ScannerFields", func(t *testing.T) {
		type nullable struct {
			ID      sql.NullInt64
			Name    sql.NullString
			Deleted *sql.NullTime
		}
		at := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
		v, err := ObjectOf[nullable]().Construct([]any{int64(5), []byte("foo_5"), at})
		require.NoError(t, err)
		got := v.(nullable)
		assert.Equal(t, sql.NullInt64{Int64: 5, Valid: true}, got.ID)
		assert.Equal(t, sql.NullString{String: "foo_5", Valid: true}, got.Name)
		require.NotNil(t, got.Deleted)
		assert.Equal(t, sql.NullTime{Time: at, Valid: true}, *got.Deleted)

		v, err = ObjectOf[nullable]().Construct([]any{nil, nil, nil})
		require.NoError(t, err)
		assert.Equal(t, nullable{}, v)

		_, err = ObjectOf[nullable]().Construct([]any{"five", nil, nil})
		assert.ErrorContains(t, err, "field ID")
	})

	assert.Panics(t, func() { ObjectOf[int]() })
}

func TestObjectFunc(t *testing.T) {
	s, err := ObjectFunc(newFoo)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Arity())
	assert.Equal(t, "*shape.foo", s.Name())

	v, err := s.Construct([]any{int64(1), "foo_1"})
	require.NoError(t, err)
	assert.Equal(t, &foo{ID: 1, Name: "foo_1"}, v)

	t.Run("ErrorReturn", func(t *testing.T) {
		boom := errors.New("rejected")
		s := MustObjectFunc(func(id int64) (*foo, error) {
			if id < 0 {
				return nil, boom
			}
			return &foo{ID: id}, nil
		})
		_, err := s.Construct([]any{int64(-1)})
		assert.ErrorIs(t, err, boom)

		v, err := s.Construct([]any{int64(2)})
		require.NoError(t, err)
		assert.Equal(t, int64(2), v.(*foo).ID)
	})

	t.Run("ScannerArgument", func(t *testing.T) {
		s := MustObjectFunc(func(name sql.NullString) string {
			if !name.Valid {
				return "anonymous"
			}
			return name.String
		})
		v, err := s.Construct([]any{"foo_1"})
		require.NoError(t, err)
		assert.Equal(t, "foo_1", v)

		v, err = s.Construct([]any{nil})
		require.NoError(t, err)
		assert.Equal(t, "anonymous", v)
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, fn := range []any{nil, 42, func() {}, func(...int) int { return 0 }, func() (int, int) { return 0, 0 }, func() error { return nil }} {
			_, err := ObjectFunc(fn)
			assert.Error(t, err, "%T", fn)
		}
		assert.Panics(t, func() { MustObjectFunc(42) })
	})
}

func TestObjectAnyArity(t *testing.T) {
	s := Object("row", -5, func(values []any) (any, error) { return len(values), nil })
	assert.Equal(t, AnyArity, s.Arity())
	v, err := s.Construct([]any{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	_, err = Map().Construct(nil)
	assert.Error(t, err)
	assert.Panics(t, func() { Object("nil", 0, nil) })
}

func TestParse(t *testing.T) {
	objects := map[string]Shape{"foo": ObjectOf[foo]()}

	s, err := Parse("", objects)
	require.NoError(t, err)
	assert.True(t, s.IsZero())

	s, err = Parse("struct", objects)
	require.NoError(t, err)
	assert.Equal(t, KindGeneratedStruct, s.Kind())

	s, err = Parse("Map", objects)
	require.NoError(t, err)
	assert.Equal(t, KindMap, s.Kind())

	s, err = Parse("object:foo", objects)
	require.NoError(t, err)
	assert.Equal(t, KindObject, s.Kind())

	_, err = Parse("object:bar", objects)
	assert.ErrorContains(t, err, "unknown object shape")

	_, err = Parse("json", objects)
	assert.ErrorContains(t, err, "unknown shape")
}
