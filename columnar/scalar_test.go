package columnar

import (
	"math"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datafreelab/datalite/status"
	"github.com/datafreelab/datalite/types"
)

func assertRoundTrip[S Scalar[R], R ScalarRef[S]](t *testing.T, v S) {
	t.Helper()
	ref := v.AsRef()
	assert.Equal(t, v.TypeID(), ref.TypeID())
	back := ref.ToOwned()
	assert.True(t, EqualScalars(v, back), "%s != %s", v, back)
	assert.Equal(t, v.String(), back.String())
}

func TestScalarRoundTrip(t *testing.T) {
	assertRoundTrip[Bool, Bool](t, true)
	assertRoundTrip[Int8, Int8](t, math.MinInt8)
	assertRoundTrip[Int16, Int16](t, 300)
	assertRoundTrip[Int32, Int32](t, -7)
	assertRoundTrip[Int64, Int64](t, math.MaxInt64)
	assertRoundTrip[UInt8, UInt8](t, 255)
	assertRoundTrip[UInt16, UInt16](t, 65535)
	assertRoundTrip[UInt32, UInt32](t, 1)
	assertRoundTrip[UInt64, UInt64](t, math.MaxUint64)
	assertRoundTrip[Float32, Float32](t, 0.25)
	assertRoundTrip[Float64, Float64](t, Float64(math.Inf(-1)))
	assertRoundTrip[Decimal, Decimal](t, mustDecimal(t, "-12.345"))
	assertRoundTrip[Date, Date](t, 19000)
	assertRoundTrip[Timestamp, Timestamp](t, NewTimestamp(1700000000123))
	assertRoundTrip[String, StringRef](t, "héllo")
	assertRoundTrip[String, StringRef](t, "")
	assertRoundTrip[Bytes, BytesRef](t, Bytes{0, 1, 2, 255})
	assertRoundTrip[Jsonb, JsonbRef](t, MustParseJsonb(`{"a": [1, 2, {"b": null}]}`))
	assertRoundTrip[List, ListRef](t, NewList(PrimitiveArrayOf[Int32](1, 2, 3)))
	assertRoundTrip[List, ListRef](t, NewList(StringArrayOf()))
	assertRoundTrip[Map, MapRef](t, mustMap(t, StringArrayOf("k"), PrimitiveArrayOf[Float64](1.5)))
}

func TestErasedRoundTrip(t *testing.T) {
	values := []ScalarImpl{
		Bool(false),
		Int64(-1),
		mustDecimal(t, "3.14"),
		Timestamp{Value: 5, Unit: Nanosecond},
		String("x"),
		Bytes("y"),
		MustParseJsonb(`[true]`),
		NewList(BytesArrayOf([]byte("z"))),
		mustMap(t, PrimitiveArrayOf[Date](1, 2), StringArrayOf("a", "b")),
	}
	for _, v := range values {
		t.Run(v.TypeID().String(), func(t *testing.T) {
			ref := v.AsScalarRef()
			assert.Equal(t, v.TypeID(), ref.TypeID())
			back := ref.ToScalar()
			assert.True(t, EqualScalars(v, back))
			assert.Equal(t, v.String(), ref.String())
		})
	}
}

func TestScalarAs(t *testing.T) {
	got, err := ScalarAs[Int32](Int32(3))
	require.NoError(t, err)
	assert.Equal(t, Int32(3), got)

	_, err = ScalarAs[Int32](String("x"))
	var mismatchErr *TypeMismatchError
	require.True(t, errors.As(err, &mismatchErr))
	assert.Equal(t, types.TypeIDInt32, mismatchErr.Expect)
	assert.Equal(t, types.TypeIDString, mismatchErr.Get)
	assert.Equal(t, status.TypeMismatch, status.Of(err))
	assert.Equal(t, "type mismatch: expect int32, get string", mismatchErr.Error())

	_, err = ScalarAs[List](nil)
	require.True(t, errors.As(err, &mismatchErr))
	assert.Equal(t, types.TypeIDList, mismatchErr.Expect)
	assert.Equal(t, types.TypeIDInvalid, mismatchErr.Get)
}

func TestRefAs(t *testing.T) {
	ref, err := RefAs[StringRef](String("abc").AsScalarRef())
	require.NoError(t, err)
	assert.Equal(t, "abc", string(ref))

	_, err = RefAs[StringRef](Int64(1))
	var mismatchErr *TypeMismatchError
	require.True(t, errors.As(err, &mismatchErr))
	assert.Equal(t, types.TypeIDString, mismatchErr.Expect)
	assert.Equal(t, types.TypeIDInt64, mismatchErr.Get)

	_, err = RefAs[Int64](Int32(1))
	assert.Equal(t, status.TypeMismatch, status.Of(err))
}

func TestScalarString(t *testing.T) {
	tests := []struct {
		name  string
		value ScalarImpl
		want  string
	}{
		{name: "bool", value: Bool(true), want: "true"},
		{name: "int8", value: Int8(-3), want: "-3"},
		{name: "uint64", value: UInt64(math.MaxUint64), want: "18446744073709551615"},
		{name: "float32", value: Float32(0.1), want: "0.1"},
		{name: "float64", value: Float64(1.5), want: "1.5"},
		{name: "decimal", value: mustDecimal(t, "12.34"), want: "12.34"},
		{name: "date", value: mustDate(t, "2024-02-29"), want: "2024-02-29"},
		{name: "timestamp", value: NewTimestamp(1500), want: "1970-01-01T00:00:01.5Z"},
		{name: "string", value: String("it's"), want: `"it's"`},
		{name: "bytes", value: Bytes{0xde, 0xad}, want: `\xdead`},
		{name: "jsonb", value: MustParseJsonb(`{ "a" : [1, 2] }`), want: `{"a":[1,2]}`},
		{name: "list", value: NewList(PrimitiveArrayOf[Int32](1, 2)), want: "[1, 2]"},
		{name: "map", value: mustMap(t, StringArrayOf("b", "a"), PrimitiveArrayOf[Int32](2, 1)), want: `{"a": 1, "b": 2}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.String())
		})
	}
}

func TestDate(t *testing.T) {
	assert.Equal(t, Date(0), DateOf(time.Unix(0, 0).UTC()))
	assert.Equal(t, Date(-1), DateOf(time.Date(1969, 12, 31, 23, 59, 0, 0, time.UTC)))

	d := mustDate(t, "2000-01-01")
	assert.Equal(t, Date(10957), d)
	assert.True(t, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC).Equal(d.Time()))

	_, err := ParseDate("2000-13-01")
	assert.Error(t, err)
}

func TestTimestamp(t *testing.T) {
	instant := time.Date(2023, 5, 6, 7, 8, 9, 123456789, time.UTC)
	tests := []struct {
		unit TimeUnit
		want time.Time
	}{
		{unit: Second, want: instant.Truncate(time.Second)},
		{unit: Millisecond, want: instant.Truncate(time.Millisecond)},
		{unit: Microsecond, want: instant.Truncate(time.Microsecond)},
		{unit: Nanosecond, want: instant},
	}
	for _, tt := range tests {
		t.Run(tt.unit.String(), func(t *testing.T) {
			ts := TimestampOf(instant, tt.unit)
			assert.Equal(t, tt.unit, ts.Unit)
			assert.True(t, tt.want.Equal(ts.Time()))
			assert.Equal(t, tt.want.UnixNano(), ts.Nanos())
		})
	}
	assert.Equal(t, Millisecond, NewTimestamp(0).Unit)

	nanos, ok := TimestampOf(instant, Millisecond).NanosOK()
	require.True(t, ok)
	assert.Equal(t, instant.Truncate(time.Millisecond).UnixNano(), nanos)

	_, ok = NewTimestamp(32503680000000).NanosOK()
	assert.False(t, ok, "3000-01-01 is past the nanosecond range")
	_, ok = Timestamp{Value: math.MinInt64, Unit: Second}.NanosOK()
	assert.False(t, ok)
	_, ok = Timestamp{Value: math.MinInt64, Unit: Nanosecond}.NanosOK()
	assert.True(t, ok)
}

func TestJsonb(t *testing.T) {
	_, err := ParseJsonb(`{"a":`)
	assert.Error(t, err)

	doc := MustParseJsonb(`{"a": [1, 2], "b": "x"}`)
	v, err := doc.AsRef().Value()
	require.NoError(t, err)
	assert.Len(t, v.GetArray("a"), 2)
	assert.Equal(t, "x", string(v.GetStringBytes("b")))
	assert.Equal(t, `{"a":[1,2],"b":"x"}`, string(doc.AsRef().Bytes()))
}

func TestDecimal(t *testing.T) {
	_, err := ParseDecimal("1.2.3")
	assert.Error(t, err)

	a, b := mustDecimal(t, "1.50"), mustDecimal(t, "1.5")
	assert.True(t, EqualScalars(a, b))
}

func mustDecimal(t *testing.T, text string) Decimal {
	t.Helper()
	d, err := ParseDecimal(text)
	require.NoError(t, err)
	return d
}

func mustDate(t *testing.T, text string) Date {
	t.Helper()
	d, err := ParseDate(text)
	require.NoError(t, err)
	return d
}

func mustMap(t *testing.T, keys, values ArrayImpl) Map {
	t.Helper()
	m, err := NewMap(keys, values)
	require.NoError(t, err)
	return m
}
