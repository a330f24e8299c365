package arrowconv

import (
	"github.com/apache/arrow-go/v18/arrow"

	"github.com/datafreelab/datalite/schema"
	"github.com/datafreelab/datalite/status"
	"github.com/datafreelab/datalite/types"
)

const maxDecimalPrecision = 38

// DataTypeToArrow returns the Arrow type used to store values of dt.
// Char, varchar and jsonb all travel as utf8, timestamps as nanoseconds.
func DataTypeToArrow(dt types.DataType) (arrow.DataType, error) {
	switch dt.Kind {
	case types.KindBoolean:
		return arrow.FixedWidthTypes.Boolean, nil
	case types.KindInt8:
		return arrow.PrimitiveTypes.Int8, nil
	case types.KindInt16:
		return arrow.PrimitiveTypes.Int16, nil
	case types.KindInt32:
		return arrow.PrimitiveTypes.Int32, nil
	case types.KindInt64:
		return arrow.PrimitiveTypes.Int64, nil
	case types.KindUInt8:
		return arrow.PrimitiveTypes.Uint8, nil
	case types.KindUInt16:
		return arrow.PrimitiveTypes.Uint16, nil
	case types.KindUInt32:
		return arrow.PrimitiveTypes.Uint32, nil
	case types.KindUInt64:
		return arrow.PrimitiveTypes.Uint64, nil
	case types.KindFloat32:
		return arrow.PrimitiveTypes.Float32, nil
	case types.KindFloat64:
		return arrow.PrimitiveTypes.Float64, nil
	case types.KindDecimal:
		precision := int32(dt.Decimal.Precision)
		if precision == 0 || precision > maxDecimalPrecision {
			precision = maxDecimalPrecision
		}
		if int32(dt.Decimal.Scale) > precision {
			return nil, status.Errorf(status.InvalidArgument, "decimal scale %d exceeds precision %d", dt.Decimal.Scale, precision)
		}
		return &arrow.Decimal128Type{Precision: precision, Scale: int32(dt.Decimal.Scale)}, nil
	case types.KindChar, types.KindVarchar, types.KindJsonb:
		return arrow.BinaryTypes.String, nil
	case types.KindBytea:
		return arrow.BinaryTypes.Binary, nil
	case types.KindDate:
		return arrow.FixedWidthTypes.Date32, nil
	case types.KindTimestamp:
		return arrow.FixedWidthTypes.Timestamp_ns, nil
	case types.KindList:
		item, err := DataTypeToArrow(*dt.List.Item)
		if err != nil {
			return nil, err
		}
		return arrow.ListOf(item), nil
	case types.KindMap:
		if err := dt.Validate(); err != nil {
			return nil, err
		}
		key, err := DataTypeToArrow(*dt.Map.Key)
		if err != nil {
			return nil, err
		}
		value, err := DataTypeToArrow(*dt.Map.Value)
		if err != nil {
			return nil, err
		}
		return arrow.MapOf(key, value), nil
	case types.KindNullable:
		return DataTypeToArrow(*dt.Nullable.Inner)
	}
	return nil, status.Errorf(status.InvalidArgument, "type %s has no arrow counterpart", dt)
}

// SchemaToArrow maps every field, nullable types become nullable fields.
func SchemaToArrow(s schema.Schema) (*arrow.Schema, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	fields := make([]arrow.Field, len(s.Fields))
	for i, field := range s.Fields {
		dt, err := DataTypeToArrow(field.Type)
		if err != nil {
			return nil, err
		}
		fields[i] = arrow.Field{
			Name:     field.Name,
			Type:     dt,
			Nullable: field.Type.Kind == types.KindNullable,
		}
	}
	return arrow.NewSchema(fields, nil), nil
}
