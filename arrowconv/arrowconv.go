// Package arrowconv moves columns between the columnar package and Apache
// Arrow. Arrow nulls are rejected on import since columnar arrays have no
// validity bitmap.
package arrowconv

import (
	"math/big"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/decimal128"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/datafreelab/datalite/columnar"
	"github.com/datafreelab/datalite/status"
	"github.com/datafreelab/datalite/types"
)

// ToArrow copies arr, whose values must be of type dt, into a new Arrow array.
func ToArrow(mem memory.Allocator, dt types.DataType, arr columnar.ArrayImpl) (arrow.Array, error) {
	want, ok := dt.TypeID()
	if !ok {
		return nil, status.Errorf(status.InvalidArgument, "type %s can't hold values", dt)
	}
	if arr.TypeID() != want {
		return nil, errors.WithStack(&columnar.TypeMismatchError{Expect: want, Get: arr.TypeID()})
	}
	at, err := DataTypeToArrow(dt)
	if err != nil {
		return nil, err
	}

	b := array.NewBuilder(mem, at)
	defer b.Release()
	b.Reserve(arr.Len())

	values := columnar.Box(arr)
	for i := 0; i < values.Len(); i++ {
		v, _ := values.Get(i)
		if err := appendValue(b, dt, v); err != nil {
			return nil, errors.Wrapf(err, "couldn't convert value %d", i)
		}
	}
	return b.NewArray(), nil
}

type appender[T any] interface {
	array.Builder
	Append(T)
}

func appendAs[R columnar.ScalarRefImpl, B appender[T], T any](b array.Builder, v columnar.ScalarRefImpl, convert func(R) T) error {
	x, err := columnar.RefAs[R](v)
	if err != nil {
		return err
	}
	b.(B).Append(convert(x))
	return nil
}

func appendValue(b array.Builder, dt types.DataType, v columnar.ScalarRefImpl) error {
	for dt.Kind == types.KindNullable {
		dt = *dt.Nullable.Inner
	}

	switch dt.Kind {
	case types.KindBoolean:
		return appendAs[columnar.Bool, *array.BooleanBuilder](b, v, func(x columnar.Bool) bool { return bool(x) })
	case types.KindInt8:
		return appendAs[columnar.Int8, *array.Int8Builder](b, v, func(x columnar.Int8) int8 { return int8(x) })
	case types.KindInt16:
		return appendAs[columnar.Int16, *array.Int16Builder](b, v, func(x columnar.Int16) int16 { return int16(x) })
	case types.KindInt32:
		return appendAs[columnar.Int32, *array.Int32Builder](b, v, func(x columnar.Int32) int32 { return int32(x) })
	case types.KindInt64:
		return appendAs[columnar.Int64, *array.Int64Builder](b, v, func(x columnar.Int64) int64 { return int64(x) })
	case types.KindUInt8:
		return appendAs[columnar.UInt8, *array.Uint8Builder](b, v, func(x columnar.UInt8) uint8 { return uint8(x) })
	case types.KindUInt16:
		return appendAs[columnar.UInt16, *array.Uint16Builder](b, v, func(x columnar.UInt16) uint16 { return uint16(x) })
	case types.KindUInt32:
		return appendAs[columnar.UInt32, *array.Uint32Builder](b, v, func(x columnar.UInt32) uint32 { return uint32(x) })
	case types.KindUInt64:
		return appendAs[columnar.UInt64, *array.Uint64Builder](b, v, func(x columnar.UInt64) uint64 { return uint64(x) })
	case types.KindFloat32:
		return appendAs[columnar.Float32, *array.Float32Builder](b, v, func(x columnar.Float32) float32 { return float32(x) })
	case types.KindFloat64:
		return appendAs[columnar.Float64, *array.Float64Builder](b, v, func(x columnar.Float64) float64 { return float64(x) })
	case types.KindChar, types.KindVarchar:
		return appendAs[columnar.StringRef, *array.StringBuilder](b, v, func(x columnar.StringRef) string { return string(x) })
	case types.KindJsonb:
		return appendAs[columnar.JsonbRef, *array.StringBuilder](b, v, func(x columnar.JsonbRef) string { return string(x.Bytes()) })
	case types.KindBytea:
		return appendAs[columnar.BytesRef, *array.BinaryBuilder](b, v, func(x columnar.BytesRef) []byte { return x })
	case types.KindDate:
		return appendAs[columnar.Date, *array.Date32Builder](b, v, func(x columnar.Date) arrow.Date32 { return arrow.Date32(x) })
	case types.KindTimestamp:
		x, err := columnar.RefAs[columnar.Timestamp](v)
		if err != nil {
			return err
		}
		nanos, ok := x.NanosOK()
		if !ok {
			return status.Errorf(status.InvalidArgument, "timestamp %s doesn't fit in nanoseconds", x)
		}
		b.(*array.TimestampBuilder).Append(arrow.Timestamp(nanos))
		return nil

	case types.KindDecimal:
		x, err := columnar.RefAs[columnar.Decimal](v)
		if err != nil {
			return err
		}
		at, err := DataTypeToArrow(dt)
		if err != nil {
			return err
		}
		num, err := decimalToArrow(x.Decimal, at.(*arrow.Decimal128Type))
		if err != nil {
			return err
		}
		b.(*array.Decimal128Builder).Append(num)
		return nil

	case types.KindList:
		x, err := columnar.RefAs[columnar.ListRef](v)
		if err != nil {
			return err
		}
		lb := b.(*array.ListBuilder)
		lb.Append(true)
		vb := lb.ValueBuilder()
		for i := 0; i < x.Len(); i++ {
			item, _ := x.Get(i)
			if err := appendValue(vb, *dt.List.Item, item); err != nil {
				return err
			}
		}
		return nil

	case types.KindMap:
		x, err := columnar.RefAs[columnar.MapRef](v)
		if err != nil {
			return err
		}
		mb := b.(*array.MapBuilder)
		mb.Append(true)
		kb, ib := mb.KeyBuilder(), mb.ItemBuilder()
		for i := 0; i < x.Len(); i++ {
			key, value, _ := x.Entry(i)
			if err := appendValue(kb, *dt.Map.Key, key); err != nil {
				return err
			}
			if err := appendValue(ib, *dt.Map.Value, value); err != nil {
				return err
			}
		}
		return nil
	}
	return status.Errorf(status.InvalidArgument, "type %s has no arrow counterpart", dt)
}

func decimalToArrow(d decimal.Decimal, dt *arrow.Decimal128Type) (decimal128.Num, error) {
	coefficient := d.Round(dt.Scale).Shift(dt.Scale).BigInt()
	if digits := len(new(big.Int).Abs(coefficient).String()); digits > int(dt.Precision) {
		return decimal128.Num{}, status.Errorf(status.InvalidArgument, "decimal %s doesn't fit in %s", d, dt)
	}
	return decimal128.FromBigInt(coefficient), nil
}

// FromArrow copies an Arrow array holding values of type dt into a columnar array.
// Jsonb values are validated again on the way in.
func FromArrow(arr arrow.Array, dt types.DataType) (columnar.ArrayImpl, error) {
	want, err := DataTypeToArrow(dt)
	if err != nil {
		return nil, err
	}
	if arr.DataType().ID() != want.ID() {
		return nil, status.Errorf(status.TypeMismatch, "arrow array of type %s can't hold %s values", arr.DataType(), dt)
	}
	if arr.NullN() > 0 {
		return nil, status.Errorf(status.InvalidArgument, "arrow array has %d nulls, which aren't supported", arr.NullN())
	}

	b, err := columnar.NewBuilder(dt, arr.Len())
	if err != nil {
		return nil, err
	}
	for i := 0; i < arr.Len(); i++ {
		v, err := valueAt(arr, dt, i)
		if err != nil {
			return nil, errors.Wrapf(err, "couldn't convert value %d", i)
		}
		if err := b.PushRef(v); err != nil {
			return nil, err
		}
	}
	return b.FinishArray(), nil
}

func valueAt(arr arrow.Array, dt types.DataType, i int) (columnar.ScalarRefImpl, error) {
	for dt.Kind == types.KindNullable {
		dt = *dt.Nullable.Inner
	}

	switch dt.Kind {
	case types.KindBoolean:
		return columnar.Bool(arr.(*array.Boolean).Value(i)), nil
	case types.KindInt8:
		return columnar.Int8(arr.(*array.Int8).Value(i)), nil
	case types.KindInt16:
		return columnar.Int16(arr.(*array.Int16).Value(i)), nil
	case types.KindInt32:
		return columnar.Int32(arr.(*array.Int32).Value(i)), nil
	case types.KindInt64:
		return columnar.Int64(arr.(*array.Int64).Value(i)), nil
	case types.KindUInt8:
		return columnar.UInt8(arr.(*array.Uint8).Value(i)), nil
	case types.KindUInt16:
		return columnar.UInt16(arr.(*array.Uint16).Value(i)), nil
	case types.KindUInt32:
		return columnar.UInt32(arr.(*array.Uint32).Value(i)), nil
	case types.KindUInt64:
		return columnar.UInt64(arr.(*array.Uint64).Value(i)), nil
	case types.KindFloat32:
		return columnar.Float32(arr.(*array.Float32).Value(i)), nil
	case types.KindFloat64:
		return columnar.Float64(arr.(*array.Float64).Value(i)), nil
	case types.KindChar, types.KindVarchar:
		return columnar.StringRef(arr.(*array.String).Value(i)), nil
	case types.KindBytea:
		return columnar.BytesRef(arr.(*array.Binary).Value(i)), nil
	case types.KindDate:
		return columnar.Date(arr.(*array.Date32).Value(i)), nil

	case types.KindJsonb:
		doc, err := columnar.ParseJsonb(arr.(*array.String).Value(i))
		if err != nil {
			return nil, status.Errorf(status.InvalidArgument, "%s", err)
		}
		return doc.AsRef(), nil

	case types.KindDecimal:
		a := arr.(*array.Decimal128)
		scale := a.DataType().(*arrow.Decimal128Type).Scale
		return columnar.NewDecimal(decimal.NewFromBigInt(a.Value(i).BigInt(), -scale)), nil

	case types.KindTimestamp:
		a := arr.(*array.Timestamp)
		unit, err := timeUnit(a.DataType().(*arrow.TimestampType).Unit)
		if err != nil {
			return nil, err
		}
		return columnar.Timestamp{Value: int64(a.Value(i)), Unit: unit}, nil

	case types.KindList:
		a := arr.(*array.List)
		start, end := a.ValueOffsets(i)
		items, err := sliced(a.ListValues(), start, end, *dt.List.Item)
		if err != nil {
			return nil, err
		}
		return columnar.NewList(items).AsRef(), nil

	case types.KindMap:
		a := arr.(*array.Map)
		start, end := a.ValueOffsets(i)
		keys, err := sliced(a.Keys(), start, end, *dt.Map.Key)
		if err != nil {
			return nil, err
		}
		values, err := sliced(a.Items(), start, end, *dt.Map.Value)
		if err != nil {
			return nil, err
		}
		m, err := columnar.NewMap(keys, values)
		if err != nil {
			return nil, err
		}
		return m.AsRef(), nil
	}
	return nil, status.Errorf(status.InvalidArgument, "type %s has no arrow counterpart", dt)
}

func sliced(arr arrow.Array, start, end int64, dt types.DataType) (columnar.ArrayImpl, error) {
	part := array.NewSlice(arr, start, end)
	defer part.Release()
	return FromArrow(part, dt)
}

func timeUnit(unit arrow.TimeUnit) (columnar.TimeUnit, error) {
	switch unit {
	case arrow.Second:
		return columnar.Second, nil
	case arrow.Millisecond:
		return columnar.Millisecond, nil
	case arrow.Microsecond:
		return columnar.Microsecond, nil
	case arrow.Nanosecond:
		return columnar.Nanosecond, nil
	}
	return 0, status.Errorf(status.InvalidArgument, "unknown arrow time unit %s", unit)
}
