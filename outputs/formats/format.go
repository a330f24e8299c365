package formats

import (
	"io"

	"github.com/datafreelab/datalite/columnar"
	"github.com/datafreelab/datalite/schema"
)

// Format renders rows of a single schema. Close must be called to flush.
type Format interface {
	SetSchema(schema.Schema)
	Write(values []columnar.ScalarRefImpl) error
	Close() error
}

var Constructors = map[string]func(io.Writer) Format{
	"table": func(w io.Writer) Format { return NewTableFormatter(w) },
	"csv":   func(w io.Writer) Format { return NewCSVFormatter(w) },
	"json":  func(w io.Writer) Format { return NewJSONFormatter(w) },
}

// rawText is the unquoted text of a value, used where the surrounding
// format already delimits cells.
func rawText(value columnar.ScalarRefImpl) string {
	switch value := value.(type) {
	case columnar.StringRef:
		return string(value)
	default:
		return value.String()
	}
}
