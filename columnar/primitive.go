package columnar

import (
	"math"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/datafreelab/datalite/types"
)

// Fixed-width kinds are their own borrowed form: a value and a view of it
// are the same thing.

type Bool bool

func (Bool) TypeID() types.TypeID         { return types.TypeIDBool }
func (v Bool) String() string             { return strconv.FormatBool(bool(v)) }
func (v Bool) AsRef() Bool                { return v }
func (v Bool) ToOwned() Bool              { return v }
func (v Bool) AsScalarRef() ScalarRefImpl { return v }
func (v Bool) ToScalar() ScalarImpl       { return v }
func (Bool) scalarImpl()                  {}
func (Bool) scalarRefImpl()               {}

type Int8 int8

func (Int8) TypeID() types.TypeID         { return types.TypeIDInt8 }
func (v Int8) String() string             { return strconv.FormatInt(int64(v), 10) }
func (v Int8) AsRef() Int8                { return v }
func (v Int8) ToOwned() Int8              { return v }
func (v Int8) AsScalarRef() ScalarRefImpl { return v }
func (v Int8) ToScalar() ScalarImpl       { return v }
func (Int8) scalarImpl()                  {}
func (Int8) scalarRefImpl()               {}

type Int16 int16

func (Int16) TypeID() types.TypeID         { return types.TypeIDInt16 }
func (v Int16) String() string             { return strconv.FormatInt(int64(v), 10) }
func (v Int16) AsRef() Int16               { return v }
func (v Int16) ToOwned() Int16             { return v }
func (v Int16) AsScalarRef() ScalarRefImpl { return v }
func (v Int16) ToScalar() ScalarImpl       { return v }
func (Int16) scalarImpl()                  {}
func (Int16) scalarRefImpl()               {}

type Int32 int32

func (Int32) TypeID() types.TypeID         { return types.TypeIDInt32 }
func (v Int32) String() string             { return strconv.FormatInt(int64(v), 10) }
func (v Int32) AsRef() Int32               { return v }
func (v Int32) ToOwned() Int32             { return v }
func (v Int32) AsScalarRef() ScalarRefImpl { return v }
func (v Int32) ToScalar() ScalarImpl       { return v }
func (Int32) scalarImpl()                  {}
func (Int32) scalarRefImpl()               {}

type Int64 int64

func (Int64) TypeID() types.TypeID         { return types.TypeIDInt64 }
func (v Int64) String() string             { return strconv.FormatInt(int64(v), 10) }
func (v Int64) AsRef() Int64               { return v }
func (v Int64) ToOwned() Int64             { return v }
func (v Int64) AsScalarRef() ScalarRefImpl { return v }
func (v Int64) ToScalar() ScalarImpl       { return v }
func (Int64) scalarImpl()                  {}
func (Int64) scalarRefImpl()               {}

type UInt8 uint8

func (UInt8) TypeID() types.TypeID         { return types.TypeIDUInt8 }
func (v UInt8) String() string             { return strconv.FormatUint(uint64(v), 10) }
func (v UInt8) AsRef() UInt8               { return v }
func (v UInt8) ToOwned() UInt8             { return v }
func (v UInt8) AsScalarRef() ScalarRefImpl { return v }
func (v UInt8) ToScalar() ScalarImpl       { return v }
func (UInt8) scalarImpl()                  {}
func (UInt8) scalarRefImpl()               {}

type UInt16 uint16

func (UInt16) TypeID() types.TypeID         { return types.TypeIDUInt16 }
func (v UInt16) String() string             { return strconv.FormatUint(uint64(v), 10) }
func (v UInt16) AsRef() UInt16              { return v }
func (v UInt16) ToOwned() UInt16            { return v }
func (v UInt16) AsScalarRef() ScalarRefImpl { return v }
func (v UInt16) ToScalar() ScalarImpl       { return v }
func (UInt16) scalarImpl()                  {}
func (UInt16) scalarRefImpl()               {}

type UInt32 uint32

func (UInt32) TypeID() types.TypeID         { return types.TypeIDUInt32 }
func (v UInt32) String() string             { return strconv.FormatUint(uint64(v), 10) }
func (v UInt32) AsRef() UInt32              { return v }
func (v UInt32) ToOwned() UInt32            { return v }
func (v UInt32) AsScalarRef() ScalarRefImpl { return v }
func (v UInt32) ToScalar() ScalarImpl       { return v }
func (UInt32) scalarImpl()                  {}
func (UInt32) scalarRefImpl()               {}

type UInt64 uint64

func (UInt64) TypeID() types.TypeID         { return types.TypeIDUInt64 }
func (v UInt64) String() string             { return strconv.FormatUint(uint64(v), 10) }
func (v UInt64) AsRef() UInt64              { return v }
func (v UInt64) ToOwned() UInt64            { return v }
func (v UInt64) AsScalarRef() ScalarRefImpl { return v }
func (v UInt64) ToScalar() ScalarImpl       { return v }
func (UInt64) scalarImpl()                  {}
func (UInt64) scalarRefImpl()               {}

type Float32 float32

func (Float32) TypeID() types.TypeID         { return types.TypeIDFloat32 }
func (v Float32) String() string             { return strconv.FormatFloat(float64(v), 'g', -1, 32) }
func (v Float32) AsRef() Float32             { return v }
func (v Float32) ToOwned() Float32           { return v }
func (v Float32) AsScalarRef() ScalarRefImpl { return v }
func (v Float32) ToScalar() ScalarImpl       { return v }
func (Float32) scalarImpl()                  {}
func (Float32) scalarRefImpl()               {}

type Float64 float64

func (Float64) TypeID() types.TypeID         { return types.TypeIDFloat64 }
func (v Float64) String() string             { return strconv.FormatFloat(float64(v), 'g', -1, 64) }
func (v Float64) AsRef() Float64             { return v }
func (v Float64) ToOwned() Float64           { return v }
func (v Float64) AsScalarRef() ScalarRefImpl { return v }
func (v Float64) ToScalar() ScalarImpl       { return v }
func (Float64) scalarImpl()                  {}
func (Float64) scalarRefImpl()               {}

// Decimal is an arbitrary precision decimal number.
type Decimal struct {
	decimal.Decimal
}

func NewDecimal(d decimal.Decimal) Decimal {
	return Decimal{Decimal: d}
}

func ParseDecimal(text string) (Decimal, error) {
	d, err := decimal.NewFromString(text)
	if err != nil {
		return Decimal{}, errors.Wrapf(err, "couldn't parse decimal '%s'", text)
	}
	return Decimal{Decimal: d}, nil
}

func (Decimal) TypeID() types.TypeID         { return types.TypeIDDecimal }
func (v Decimal) AsRef() Decimal             { return v }
func (v Decimal) ToOwned() Decimal           { return v }
func (v Decimal) AsScalarRef() ScalarRefImpl { return v }
func (v Decimal) ToScalar() ScalarImpl       { return v }
func (Decimal) scalarImpl()                  {}
func (Decimal) scalarRefImpl()               {}

// Date is a calendar date stored as days since 1970-01-01.
type Date int32

const dateLayout = "2006-01-02"

func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return Date(midnight.Unix() / 86400)
}

func ParseDate(text string) (Date, error) {
	t, err := time.Parse(dateLayout, text)
	if err != nil {
		return 0, errors.Wrapf(err, "couldn't parse date '%s'", text)
	}
	return DateOf(t), nil
}

// Time returns midnight UTC of the date.
func (v Date) Time() time.Time {
	return time.Unix(int64(v)*86400, 0).UTC()
}

func (Date) TypeID() types.TypeID         { return types.TypeIDDate }
func (v Date) String() string             { return v.Time().Format(dateLayout) }
func (v Date) AsRef() Date                { return v }
func (v Date) ToOwned() Date              { return v }
func (v Date) AsScalarRef() ScalarRefImpl { return v }
func (v Date) ToScalar() ScalarImpl       { return v }
func (Date) scalarImpl()                  {}
func (Date) scalarRefImpl()               {}

type TimeUnit int8

const (
	Second TimeUnit = iota
	Millisecond
	Microsecond
	Nanosecond
)

func (u TimeUnit) String() string {
	switch u {
	case Second:
		return "s"
	case Millisecond:
		return "ms"
	case Microsecond:
		return "us"
	case Nanosecond:
		return "ns"
	}
	return "TimeUnit(" + strconv.Itoa(int(u)) + ")"
}

// Duration returns the length of one tick of the unit.
func (u TimeUnit) Duration() time.Duration {
	switch u {
	case Second:
		return time.Second
	case Millisecond:
		return time.Millisecond
	case Microsecond:
		return time.Microsecond
	default:
		return time.Nanosecond
	}
}

// Timestamp is an instant counted in Unit ticks since the Unix epoch.
type Timestamp struct {
	Value int64
	Unit  TimeUnit
}

// NewTimestamp returns a timestamp counted in milliseconds, the default unit.
func NewTimestamp(millis int64) Timestamp {
	return Timestamp{Value: millis, Unit: Millisecond}
}

func TimestampOf(t time.Time, unit TimeUnit) Timestamp {
	switch unit {
	case Second:
		return Timestamp{Value: t.Unix(), Unit: unit}
	case Millisecond:
		return Timestamp{Value: t.UnixMilli(), Unit: unit}
	case Microsecond:
		return Timestamp{Value: t.UnixMicro(), Unit: unit}
	default:
		return Timestamp{Value: t.UnixNano(), Unit: Nanosecond}
	}
}

// Nanos returns the instant in nanoseconds. It overflows for instants
// outside of roughly 1678-2262.
func (v Timestamp) Nanos() int64 {
	return v.Value * int64(v.Unit.Duration())
}

// NanosOK is Nanos that reports false instead of overflowing.
func (v Timestamp) NanosOK() (int64, bool) {
	per := int64(v.Unit.Duration())
	if v.Value > math.MaxInt64/per || v.Value < math.MinInt64/per {
		return 0, false
	}
	return v.Value * per, true
}

func (v Timestamp) Time() time.Time {
	switch v.Unit {
	case Second:
		return time.Unix(v.Value, 0).UTC()
	case Millisecond:
		return time.UnixMilli(v.Value).UTC()
	case Microsecond:
		return time.UnixMicro(v.Value).UTC()
	default:
		return time.Unix(0, v.Value).UTC()
	}
}

func (Timestamp) TypeID() types.TypeID         { return types.TypeIDTimestamp }
func (v Timestamp) String() string             { return v.Time().Format(time.RFC3339Nano) }
func (v Timestamp) AsRef() Timestamp           { return v }
func (v Timestamp) ToOwned() Timestamp         { return v }
func (v Timestamp) AsScalarRef() ScalarRefImpl { return v }
func (v Timestamp) ToScalar() ScalarImpl       { return v }
func (Timestamp) scalarImpl()                  {}
func (Timestamp) scalarRefImpl()               {}
