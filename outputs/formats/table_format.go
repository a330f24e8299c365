package formats

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/datafreelab/datalite/columnar"
	"github.com/datafreelab/datalite/schema"
)

type TableFormatter struct {
	table *tablewriter.Table
}

func NewTableFormatter(w io.Writer) *TableFormatter {
	table := tablewriter.NewWriter(w)
	table.SetColWidth(24)
	table.SetRowLine(false)

	return &TableFormatter{
		table: table,
	}
}

func (t *TableFormatter) SetSchema(s schema.Schema) {
	header := make([]string, len(s.Fields))
	for i := range s.Fields {
		header[i] = s.Fields[i].Name
	}
	t.table.SetHeader(header)
	t.table.SetAutoFormatHeaders(false)
}

func (t *TableFormatter) Write(values []columnar.ScalarRefImpl) error {
	row := make([]string, len(values))
	for i := range values {
		row[i] = rawText(values[i])
	}
	t.table.Append(row)
	return nil
}

func (t *TableFormatter) Close() error {
	t.table.Render()
	return nil
}
