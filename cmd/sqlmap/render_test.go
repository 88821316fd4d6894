package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Konsultn-Engineering/sqlmapper/record"
)

func fooRecords(t *testing.T) []any {
	t.Helper()
	typ, err := record.NewType([]string{"name", "id"})
	require.NoError(t, err)

	var rows []any
	for i, name := range []string{"foo_0", "foo_1"} {
		rec, err := typ.New([]any{name, int64(i)})
		require.NoError(t, err)
		rows = append(rows, rec)
	}
	return rows
}

func TestRenderRows_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderRows(&buf, "csv", fooRecords(t)))
	assert.Equal(t, "name,id\nfoo_0,0\nfoo_1,1\n", buf.String())

	buf.Reset()
	rows := []any{map[string]any{"name": "foo_0", "id": int64(0), "note": nil}}
	require.NoError(t, renderRows(&buf, "csv,noheader", rows))
	assert.Equal(t, "0,foo_0,NULL\n", buf.String())
}

func TestRenderRows_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderRows(&buf, "json", fooRecords(t)))
	assert.JSONEq(t, `[{"name":"foo_0","id":0},{"name":"foo_1","id":1}]`, buf.String())
	assert.Less(t, bytes.Index(buf.Bytes(), []byte(`"name"`)), bytes.Index(buf.Bytes(), []byte(`"id"`)))
}

func TestRenderRows_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderRows(&buf, "table", []any{[]any{int64(1), []byte("x")}}))
	out := buf.String()
	assert.Contains(t, out, "#1")
	assert.Contains(t, out, "#2")
	assert.Contains(t, out, "x")
}

func TestRenderRows_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderRows(&buf, "yaml", fooRecords(t)[:1]))
	assert.Contains(t, buf.String(), "- id: 0\n")
	assert.Contains(t, buf.String(), "name: foo_0\n")
}

func TestRenderRows_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderRows(&buf, "json", []any{}))
	assert.Equal(t, "[]\n", buf.String())
}

func TestValidateFormat(t *testing.T) {
	assert.NoError(t, validateFormat("table"))
	assert.NoError(t, validateFormat("csv,noheader"))
	assert.Error(t, validateFormat("xml"))
}

func TestParseParams(t *testing.T) {
	got := parseParams([]string{"10", "-3", "1.5", "foo", "0x10", "NaN", "1e3", ""})
	assert.Equal(t, []any{int64(10), int64(-3), 1.5, "foo", "0x10", "NaN", 1000.0, ""}, got)
}
