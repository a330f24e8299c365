package formats

import (
	"encoding/csv"
	"io"

	"github.com/datafreelab/datalite/columnar"
	"github.com/datafreelab/datalite/schema"
)

type CSVFormatter struct {
	writer *csv.Writer
}

func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{
		writer: csv.NewWriter(w),
	}
}

func (t *CSVFormatter) SetSchema(s schema.Schema) {
	header := make([]string, len(s.Fields))
	for i := range s.Fields {
		header[i] = s.Fields[i].Name
	}
	t.writer.Write(header)
}

func (t *CSVFormatter) Write(values []columnar.ScalarRefImpl) error {
	row := make([]string, len(values))
	for i := range values {
		row[i] = rawText(values[i])
	}
	return t.writer.Write(row)
}

func (t *CSVFormatter) Close() error {
	t.writer.Flush()
	return t.writer.Error()
}
