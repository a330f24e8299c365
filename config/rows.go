package config

import (
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/datafreelab/datalite/columnar"
	"github.com/datafreelab/datalite/schema"
	"github.com/datafreelab/datalite/status"
	"github.com/datafreelab/datalite/types"
)

// Chunk decodes the inline rows of the table into columns of its schema.
func (table *Table) Chunk() (*schema.Chunk, error) {
	s, err := table.Schema()
	if err != nil {
		return nil, err
	}

	builders := make([]columnar.ArrayBuilderImpl, len(s.Fields))
	for i, field := range s.Fields {
		if builders[i], err = columnar.NewBuilder(field.Type, len(table.Rows)); err != nil {
			return nil, errors.Wrapf(err, "couldn't create builder for column '%s'", field.Name)
		}
	}

	for i := range table.Rows {
		row := &table.Rows[i]
		if row.Kind != yaml.SequenceNode || len(row.Content) != len(s.Fields) {
			return nil, status.Errorf(status.InvalidArgument, "row %d of table '%s' must be a list of %d values", i, table.Name, len(s.Fields))
		}
		for j, field := range s.Fields {
			v, err := decodeValue(field.Type, row.Content[j])
			if err != nil {
				return nil, errors.Wrapf(err, "row %d, column '%s'", i, field.Name)
			}
			if err := builders[j].PushRef(v.AsScalarRef()); err != nil {
				return nil, errors.Wrapf(err, "row %d, column '%s'", i, field.Name)
			}
		}
	}

	columns := make([]columnar.ArrayImpl, len(builders))
	for i := range builders {
		columns[i] = builders[i].FinishArray()
	}
	return schema.NewChunk(s, columns...)
}

func decodeValue(dt types.DataType, node *yaml.Node) (columnar.ScalarImpl, error) {
	for dt.Kind == types.KindNullable {
		dt = *dt.Nullable.Inner
	}
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil, status.Errorf(status.InvalidArgument, "null values aren't supported, line %d", node.Line)
	}

	switch dt.Kind {
	case types.KindBoolean:
		return scalar(node, func(v bool) columnar.Bool { return columnar.Bool(v) })
	case types.KindInt8:
		return scalar(node, func(v int8) columnar.Int8 { return columnar.Int8(v) })
	case types.KindInt16:
		return scalar(node, func(v int16) columnar.Int16 { return columnar.Int16(v) })
	case types.KindInt32:
		return scalar(node, func(v int32) columnar.Int32 { return columnar.Int32(v) })
	case types.KindInt64:
		return scalar(node, func(v int64) columnar.Int64 { return columnar.Int64(v) })
	case types.KindUInt8:
		return scalar(node, func(v uint8) columnar.UInt8 { return columnar.UInt8(v) })
	case types.KindUInt16:
		return scalar(node, func(v uint16) columnar.UInt16 { return columnar.UInt16(v) })
	case types.KindUInt32:
		return scalar(node, func(v uint32) columnar.UInt32 { return columnar.UInt32(v) })
	case types.KindUInt64:
		return scalar(node, func(v uint64) columnar.UInt64 { return columnar.UInt64(v) })
	case types.KindFloat32:
		return scalar(node, func(v float32) columnar.Float32 { return columnar.Float32(v) })
	case types.KindFloat64:
		return scalar(node, func(v float64) columnar.Float64 { return columnar.Float64(v) })
	case types.KindChar, types.KindVarchar:
		return scalar(node, func(v string) columnar.String { return columnar.String(v) })
	case types.KindBytea:
		// !!binary values arrive base64-decoded.
		return scalar(node, func(v string) columnar.Bytes { return columnar.Bytes(v) })

	case types.KindDecimal:
		if err := expectScalar(node); err != nil {
			return nil, err
		}
		return parsed(node, columnar.ParseDecimal)
	case types.KindDate:
		if err := expectScalar(node); err != nil {
			return nil, err
		}
		return parsed(node, columnar.ParseDate)
	case types.KindJsonb:
		if err := expectScalar(node); err != nil {
			return nil, err
		}
		return parsed(node, columnar.ParseJsonb)
	case types.KindTimestamp:
		return scalar(node, func(v time.Time) columnar.Timestamp {
			return columnar.TimestampOf(v, columnar.Millisecond)
		})

	case types.KindList:
		if node.Kind != yaml.SequenceNode {
			return nil, status.Errorf(status.InvalidArgument, "expected a list, line %d", node.Line)
		}
		items, err := columnar.NewBuilder(*dt.List.Item, len(node.Content))
		if err != nil {
			return nil, err
		}
		for _, child := range node.Content {
			v, err := decodeValue(*dt.List.Item, child)
			if err != nil {
				return nil, err
			}
			if err := items.PushRef(v.AsScalarRef()); err != nil {
				return nil, err
			}
		}
		return columnar.NewList(items.FinishArray()), nil

	case types.KindMap:
		if node.Kind != yaml.MappingNode {
			return nil, status.Errorf(status.InvalidArgument, "expected a mapping, line %d", node.Line)
		}
		keys, err := columnar.NewBuilder(*dt.Map.Key, len(node.Content)/2)
		if err != nil {
			return nil, err
		}
		values, err := columnar.NewBuilder(*dt.Map.Value, len(node.Content)/2)
		if err != nil {
			return nil, err
		}
		for i := 0; i+1 < len(node.Content); i += 2 {
			k, err := decodeValue(*dt.Map.Key, node.Content[i])
			if err != nil {
				return nil, err
			}
			v, err := decodeValue(*dt.Map.Value, node.Content[i+1])
			if err != nil {
				return nil, err
			}
			if err := keys.PushRef(k.AsScalarRef()); err != nil {
				return nil, err
			}
			if err := values.PushRef(v.AsScalarRef()); err != nil {
				return nil, err
			}
		}
		m, err := columnar.NewMap(keys.FinishArray(), values.FinishArray())
		if err != nil {
			return nil, err
		}
		return m, nil
	}

	return nil, status.Errorf(status.InvalidArgument, "values of type %s can't be written inline", dt)
}

func expectScalar(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return status.Errorf(status.InvalidArgument, "expected a single value, line %d", node.Line)
	}
	return nil
}

func scalar[G any, S columnar.ScalarImpl](node *yaml.Node, convert func(G) S) (columnar.ScalarImpl, error) {
	if err := expectScalar(node); err != nil {
		return nil, err
	}
	var v G
	if err := node.Decode(&v); err != nil {
		return nil, status.Errorf(status.InvalidArgument, "line %d: %s", node.Line, err)
	}
	return convert(v), nil
}

func parsed[S columnar.ScalarImpl](node *yaml.Node, parse func(string) (S, error)) (columnar.ScalarImpl, error) {
	v, err := parse(node.Value)
	if err != nil {
		return nil, status.Errorf(status.InvalidArgument, "line %d: %s", node.Line, err)
	}
	return v, nil
}
