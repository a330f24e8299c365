package eager

import (
	"bufio"
	"io"

	"github.com/pkg/errors"

	"github.com/datafreelab/datalite/outputs/formats"
	"github.com/datafreelab/datalite/schema"
)

// OutputPrinter writes whole chunks sharing one schema through a format.
type OutputPrinter struct {
	schema schema.Schema
	format func(io.Writer) formats.Format
}

func NewOutputPrinter(s schema.Schema, format func(io.Writer) formats.Format) *OutputPrinter {
	return &OutputPrinter{
		schema: s,
		format: format,
	}
}

func (o *OutputPrinter) Run(out io.Writer, chunks ...*schema.Chunk) error {
	w := bufio.NewWriterSize(out, 64*1024)
	format := o.format(w)
	format.SetSchema(o.schema)

	for _, chunk := range chunks {
		if chunk.NumColumns() != len(o.schema.Fields) {
			return errors.Errorf("chunk has %d columns, printer schema has %d", chunk.NumColumns(), len(o.schema.Fields))
		}
		for i := 0; i < chunk.Len(); i++ {
			row, _ := chunk.Row(i)
			if err := format.Write(row); err != nil {
				return errors.Wrapf(err, "couldn't write row %d", i)
			}
		}
	}
	if err := format.Close(); err != nil {
		return errors.Wrap(err, "couldn't close output format")
	}

	return w.Flush()
}
