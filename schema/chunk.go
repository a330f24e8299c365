package schema

import (
	"github.com/datafreelab/datalite/columnar"
	"github.com/datafreelab/datalite/status"
)

// Chunk is a batch of rows stored column by column. Every column holds
// values of its field's type and all columns have the same length.
type Chunk struct {
	schema  Schema
	columns []*columnar.BoxedArray
	rows    int
}

// NewChunk binds columns to the fields of s, in order.
func NewChunk(s Schema, columns ...columnar.ArrayImpl) (*Chunk, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if len(columns) != len(s.Fields) {
		return nil, status.Errorf(status.InvalidArgument, "schema has %d fields, got %d columns", len(s.Fields), len(columns))
	}

	out := &Chunk{
		schema:  s,
		columns: make([]*columnar.BoxedArray, len(columns)),
	}
	for i, column := range columns {
		field := s.Fields[i]
		want, _ := field.Type.TypeID()
		if column.TypeID() != want {
			return nil, status.Errorf(status.TypeMismatch, "column '%s' of type %s holds %s values", field.Name, field.Type, column.TypeID())
		}
		if i == 0 {
			out.rows = column.Len()
		} else if column.Len() != out.rows {
			return nil, status.Errorf(status.InvalidArgument, "column '%s' has %d rows, want %d", field.Name, column.Len(), out.rows)
		}
		out.columns[i] = columnar.Box(column)
	}
	return out, nil
}

func (c *Chunk) Schema() Schema {
	return c.schema
}

// Len returns the number of rows.
func (c *Chunk) Len() int {
	return c.rows
}

func (c *Chunk) NumColumns() int {
	return len(c.columns)
}

func (c *Chunk) ColumnAt(i int) *columnar.BoxedArray {
	return c.columns[i]
}

func (c *Chunk) Column(name string) (*columnar.BoxedArray, bool) {
	i, ok := c.schema.FieldIndex(name)
	if !ok {
		return nil, false
	}
	return c.columns[i], true
}

// Row returns views of the values of row i in field order.
func (c *Chunk) Row(i int) ([]columnar.ScalarRefImpl, bool) {
	if i < 0 || i >= c.rows {
		return nil, false
	}
	out := make([]columnar.ScalarRefImpl, len(c.columns))
	for j, column := range c.columns {
		out[j], _ = column.Get(i)
	}
	return out, true
}
