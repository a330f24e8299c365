package formats

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fastjson"

	"github.com/datafreelab/datalite/columnar"
	"github.com/datafreelab/datalite/schema"
	"github.com/datafreelab/datalite/types"
)

func testRows() (schema.Schema, [][]columnar.ScalarRefImpl) {
	s := schema.NewSchema(
		schema.Field{Name: "id", Type: types.Int32},
		schema.Field{Name: "name", Type: types.Varchar},
		schema.Field{Name: "tags", Type: types.List(types.Varchar)},
	)
	tags := columnar.NewList(columnar.StringArrayOf("a", "b"))
	empty := columnar.NewList(columnar.StringArrayOf())
	return s, [][]columnar.ScalarRefImpl{
		{columnar.Int32(1), columnar.StringRef("ann, jr"), tags.AsRef()},
		{columnar.Int32(2), columnar.StringRef("bob"), empty.AsRef()},
	}
}

func render(t *testing.T, f func(w *bytes.Buffer) Format) string {
	var buf bytes.Buffer
	format := f(&buf)
	s, rows := testRows()
	format.SetSchema(s)
	for _, row := range rows {
		require.NoError(t, format.Write(row))
	}
	require.NoError(t, format.Close())
	return buf.String()
}

func TestCSVFormatter(t *testing.T) {
	out := render(t, func(w *bytes.Buffer) Format { return NewCSVFormatter(w) })
	assert.Equal(t, "id,name,tags\n1,\"ann, jr\",\"[\"\"a\"\", \"\"b\"\"]\"\n2,bob,[]\n", out)
}

func TestJSONFormatter(t *testing.T) {
	out := render(t, func(w *bytes.Buffer) Format { return NewJSONFormatter(w) })
	assert.Equal(t, `{"id":1,"name":"ann, jr","tags":["a","b"]}`+"\n"+`{"id":2,"name":"bob","tags":[]}`+"\n", out)
}

func TestTableFormatter(t *testing.T) {
	out := render(t, func(w *bytes.Buffer) Format { return NewTableFormatter(w) })
	var rows [][]string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "|") {
			rows = append(rows, strings.Fields(strings.ReplaceAll(line, "|", " ")))
		}
	}
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"id", "name", "tags"}, rows[0])
	assert.Equal(t, "2", rows[2][0])
	assert.Contains(t, out, "ann, jr")
	assert.Contains(t, out, `["a", "b"]`)
}

func TestConstructors(t *testing.T) {
	for _, name := range []string{"table", "csv", "json"} {
		assert.Contains(t, Constructors, name)
	}
}

func TestValueToJson(t *testing.T) {
	m, err := columnar.NewMap(columnar.PrimitiveArrayOf[columnar.Int32](2, 1), columnar.StringArrayOf("two", "one"))
	require.NoError(t, err)
	ts := columnar.NewTimestamp(1500)
	dec, err := columnar.ParseDecimal("1.05")
	require.NoError(t, err)

	tests := []struct {
		name  string
		value columnar.ScalarRefImpl
		want  string
	}{
		{"bool", columnar.Bool(false), `false`},
		{"uint64", columnar.UInt64(math.MaxUint64), `18446744073709551615`},
		{"float", columnar.Float64(0.25), `0.25`},
		{"nan", columnar.Float64(math.NaN()), `"NaN"`},
		{"decimal", dec, `1.05`},
		{"timestamp", ts, `"1970-01-01T00:00:01.5Z"`},
		{"bytes", columnar.BytesRef("hi"), `"aGk="`},
		{"jsonb", columnar.MustParseJsonb(`{"a": [1, null]}`).AsRef(), `{"a":[1,null]}`},
		{"map", m.AsRef(), `{"1":"one","2":"two"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var arena fastjson.Arena
			v, err := ValueToJson(&arena, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(v.MarshalTo(nil)))
		})
	}
}
