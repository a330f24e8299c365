package schema

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/datafreelab/datalite/status"
	"github.com/datafreelab/datalite/types"
)

type Field struct {
	Name string
	Type types.DataType
}

func (f Field) String() string {
	return f.Name + " " + f.Type.String()
}

type Schema struct {
	Fields []Field
}

func NewSchema(fields ...Field) Schema {
	return Schema{Fields: fields}
}

// Validate checks that field names are non-empty and unique and that every
// field type is storable in an array.
func (s Schema) Validate() error {
	seen := make(map[string]bool, len(s.Fields))
	for i, field := range s.Fields {
		if field.Name == "" {
			return status.Errorf(status.InvalidArgument, "field %d has no name", i)
		}
		if seen[field.Name] {
			return status.Errorf(status.InvalidArgument, "duplicate field '%s'", field.Name)
		}
		seen[field.Name] = true

		if err := field.Type.Validate(); err != nil {
			return errors.Wrapf(err, "invalid type of field '%s'", field.Name)
		}
		if _, ok := field.Type.TypeID(); !ok {
			return status.Errorf(status.InvalidArgument, "field '%s' has type %s, which can't hold values", field.Name, field.Type)
		}
	}
	return nil
}

// FieldIndex returns the position of the named field.
func (s Schema) FieldIndex(name string) (int, bool) {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return i, true
		}
	}
	return -1, false
}

func (s Schema) String() string {
	parts := make([]string, len(s.Fields))
	for i := range s.Fields {
		parts[i] = s.Fields[i].String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
