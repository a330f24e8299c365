package arrowconv

import (
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/pkg/errors"

	"github.com/datafreelab/datalite/columnar"
	"github.com/datafreelab/datalite/schema"
	"github.com/datafreelab/datalite/status"
)

// ChunkToRecord converts every column of c. The caller owns the returned record.
func ChunkToRecord(mem memory.Allocator, c *schema.Chunk) (arrow.Record, error) {
	s := c.Schema()
	sc, err := SchemaToArrow(s)
	if err != nil {
		return nil, err
	}

	columns := make([]arrow.Array, 0, c.NumColumns())
	defer func() {
		for _, column := range columns {
			column.Release()
		}
	}()
	for i, field := range s.Fields {
		column, err := ToArrow(mem, field.Type, c.ColumnAt(i).AsArrayImpl())
		if err != nil {
			return nil, errors.Wrapf(err, "couldn't convert column '%s'", field.Name)
		}
		columns = append(columns, column)
	}
	return array.NewRecord(sc, columns, int64(c.Len())), nil
}

// RecordToChunk reads rec as a chunk of schema s, matching columns by position.
func RecordToChunk(rec arrow.Record, s schema.Schema) (*schema.Chunk, error) {
	if int(rec.NumCols()) != len(s.Fields) {
		return nil, status.Errorf(status.InvalidArgument, "record has %d columns, schema has %d fields", rec.NumCols(), len(s.Fields))
	}
	columns := make([]columnar.ArrayImpl, len(s.Fields))
	for i, field := range s.Fields {
		column, err := FromArrow(rec.Column(i), field.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "couldn't convert column '%s'", field.Name)
		}
		columns[i] = column
	}
	return schema.NewChunk(s, columns...)
}

// WriteIPC writes chunks of schema s as an Arrow IPC stream.
func WriteIPC(w io.Writer, mem memory.Allocator, s schema.Schema, chunks ...*schema.Chunk) error {
	sc, err := SchemaToArrow(s)
	if err != nil {
		return err
	}
	writer := ipc.NewWriter(w, ipc.WithSchema(sc), ipc.WithAllocator(mem))
	for i, chunk := range chunks {
		rec, err := ChunkToRecord(mem, chunk)
		if err != nil {
			writer.Close()
			return errors.Wrapf(err, "couldn't convert chunk %d", i)
		}
		err = writer.Write(rec)
		rec.Release()
		if err != nil {
			writer.Close()
			return errors.Wrap(err, "couldn't write record")
		}
	}
	return errors.Wrap(writer.Close(), "couldn't close ipc writer")
}

// ReadIPC reads an Arrow IPC stream back into chunks of schema s.
func ReadIPC(r io.Reader, mem memory.Allocator, s schema.Schema) ([]*schema.Chunk, error) {
	reader, err := ipc.NewReader(r, ipc.WithAllocator(mem))
	if err != nil {
		return nil, errors.Wrap(err, "couldn't open ipc stream")
	}
	defer reader.Release()

	var out []*schema.Chunk
	for reader.Next() {
		chunk, err := RecordToChunk(reader.Record(), s)
		if err != nil {
			return nil, err
		}
		out = append(out, chunk)
	}
	if err := reader.Err(); err != nil {
		return nil, errors.Wrap(err, "couldn't read record")
	}
	return out, nil
}
