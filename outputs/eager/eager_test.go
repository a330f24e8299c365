package eager

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datafreelab/datalite/columnar"
	"github.com/datafreelab/datalite/outputs/formats"
	"github.com/datafreelab/datalite/schema"
	"github.com/datafreelab/datalite/types"
)

func TestOutputPrinter(t *testing.T) {
	s := schema.NewSchema(
		schema.Field{Name: "k", Type: types.Varchar},
		schema.Field{Name: "v", Type: types.Float64},
	)
	first, err := schema.NewChunk(s, columnar.StringArrayOf("a", "b"), columnar.PrimitiveArrayOf[columnar.Float64](1, 2.5))
	require.NoError(t, err)
	second, err := schema.NewChunk(s, columnar.StringArrayOf("c"), columnar.PrimitiveArrayOf[columnar.Float64](-1))
	require.NoError(t, err)

	var buf bytes.Buffer
	printer := NewOutputPrinter(s, formats.Constructors["csv"])
	require.NoError(t, printer.Run(&buf, first, second))
	assert.Equal(t, "k,v\na,1\nb,2.5\nc,-1\n", buf.String())
}

func TestOutputPrinterColumnCount(t *testing.T) {
	s := schema.NewSchema(schema.Field{Name: "k", Type: types.Varchar})
	other, err := schema.NewChunk(schema.NewSchema())
	require.NoError(t, err)

	printer := NewOutputPrinter(s, formats.Constructors["json"])
	assert.Error(t, printer.Run(&bytes.Buffer{}, other))
}
