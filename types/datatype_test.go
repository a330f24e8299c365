package types

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datafreelab/datalite/status"
)

func TestParse(t *testing.T) {
	tests := []struct {
		text string
		want DataType
	}{
		{text: "null", want: Null},
		{text: "NOTHING", want: Nothing},
		{text: "bool", want: Boolean},
		{text: "Boolean", want: Boolean},
		{text: "INT", want: Int32},
		{text: "int", want: Int32},
		{text: "Int", want: Int32},
		{text: "integer", want: Int32},
		{text: "int4", want: Int32},
		{text: "int1", want: Int8},
		{text: "TINYINT", want: Int8},
		{text: "tinyint unsigned", want: UInt8},
		{text: "INT1 UNSIGNED", want: UInt8},
		{text: "smallint", want: Int16},
		{text: "int2 unsigned", want: UInt16},
		{text: "int unsigned", want: UInt32},
		{text: "INTEGER   UNSIGNED", want: UInt32},
		{text: "bigint", want: Int64},
		{text: "int8", want: Int64},
		{text: "bigint unsigned", want: UInt64},
		{text: "float", want: Float32},
		{text: "FLOAT4", want: Float32},
		{text: "double", want: Float64},
		{text: "float8", want: Float64},
		{text: "varchar", want: Varchar},
		{text: "String", want: Varchar},
		{text: "date", want: Date},
		{text: "timestamp", want: Timestamp},
		{text: "bytea", want: Bytea},
		{text: "JSONB", want: Jsonb},
		{text: "char(5)", want: Char(5)},
		{text: "CHAR( 12 )", want: Char(12)},
		{text: "decimal(5,10)", want: Decimal(5, 10)},
		{text: "decimal(5, 10)", want: Decimal(5, 10)},
		{text: "list<int>", want: List(Int32)},
		{text: "list<list<varchar>>", want: List(List(Varchar))},
		{text: "map<int,string>", want: Map(Int32, Varchar)},
		{text: " map < bigint unsigned , list<jsonb> > ", want: Map(UInt64, List(Jsonb))},
		{text: "nullable<date>", want: Nullable(Date)},
		{text: "map<char(3),nullable<decimal(2,8)>>", want: Map(Char(3), Nullable(Decimal(2, 8)))},
		{text: "map<nullable<int>,int>", want: Map(Nullable(Int32), Int32)},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := Parse(tt.text)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s, want %s", got, tt.want)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		text string
	}{
		{text: "not_a_type"},
		{text: ""},
		{text: "list<int"},
		{text: "list<>"},
		{text: "map<int>"},
		{text: "map<int,>"},
		{text: "char"},
		{text: "char(x)"},
		{text: "char(70000)"},
		{text: "char(-1)"},
		{text: "decimal(5)"},
		{text: "int int"},
		{text: "unsigned"},
		{text: "list<int>>"},
		{text: "int$"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			_, err := Parse(tt.text)
			require.Error(t, err)
			var parseErr *ParseDataTypeError
			require.True(t, errors.As(err, &parseErr), "unexpected error type %T", err)
			assert.Equal(t, tt.text, parseErr.From)
			assert.Equal(t, status.ParseDataType, status.Of(err))
		})
	}
}

func TestParseNotAType(t *testing.T) {
	_, err := Parse("not_a_type")
	var parseErr *ParseDataTypeError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "not_a_type", parseErr.From)
	assert.Contains(t, err.Error(), "not_a_type")
}

func TestParseInvalidMapKey(t *testing.T) {
	tests := []struct {
		text string
	}{
		{text: "map<list<int>,string>"},
		{text: "map<null,string>"},
		{text: "map<jsonb,int>"},
		{text: "map<map<int,int>,int>"},
		{text: "list<map<list<int>,int>>"},
		{text: "map<int,map<jsonb,int>>"},
		{text: "nullable<map<NULL,int>>"},
		{text: "map<nullable<list<int>>,int>"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			_, err := Parse(tt.text)
			var keyErr *InvalidMapKeyError
			require.True(t, errors.As(err, &keyErr), "unexpected error %v", err)
			assert.Equal(t, tt.text, keyErr.From)
			assert.Equal(t, status.InvalidMapKey, status.Of(err))
			assert.False(t, status.Of(err).IsRetryable())
		})
	}

	got, err := Parse("map<int,string>")
	require.NoError(t, err)
	assert.Equal(t, Map(Int32, Varchar), got)
}

func representativeTypes() []DataType {
	return []DataType{
		Null, Nothing, Boolean,
		Int8, Int16, Int32, Int64,
		UInt8, UInt16, UInt32, UInt64,
		Float32, Float64,
		Decimal(0, 38), Decimal(5, 10),
		Char(1), Char(255),
		Varchar, Date, Timestamp, Bytea, Jsonb,
		List(Int32), List(List(Bytea)),
		Map(Varchar, Jsonb), Map(Int64, Map(Char(2), List(Nullable(Date)))),
		Nullable(Float64), Nullable(List(Boolean)),
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, dt := range representativeTypes() {
		t.Run(dt.String(), func(t *testing.T) {
			parsed, err := Parse(dt.String())
			require.NoError(t, err)
			assert.True(t, dt.Equal(parsed))
			assert.Equal(t, dt.String(), parsed.String())
			assert.Equal(t, dt.Hash(), parsed.Hash())
		})
	}
}

func TestTextNormalization(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{text: "INTEGER", want: "int"},
		{text: "Boolean", want: "bool"},
		{text: "string", want: "varchar"},
		{text: "int8 unsigned", want: "bigint unsigned"},
		{text: "Map< Int , List<FLOAT8> >", want: "map<int,list<double>>"},
		{text: "decimal( 3 ,  9 )", want: "decimal(3,9)"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			first := MustParse(tt.text).String()
			assert.Equal(t, tt.want, first)
			assert.Equal(t, first, MustParse(first).String())
		})
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, List(Int32).Equal(List(Int32)))
	assert.False(t, List(Int32).Equal(List(Int64)))
	assert.False(t, Char(3).Equal(Char(4)))
	assert.False(t, Decimal(1, 2).Equal(Decimal(2, 1)))
	assert.False(t, Map(Int32, Varchar).Equal(Map(Varchar, Int32)))
	assert.False(t, Nullable(Int32).Equal(Int32))
	assert.NotEqual(t, Map(Int32, Varchar).Hash(), Map(Varchar, Int32).Hash())
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Map(Int32, List(Int32)).Validate())
	err := Map(List(Int32), Int32).Validate()
	var keyErr *InvalidMapKeyError
	require.True(t, errors.As(err, &keyErr))
	assert.Equal(t, "map<list<int>,int>", keyErr.From)
	assert.Error(t, List(Map(Jsonb, Int32)).Validate())
}

func TestTypeID(t *testing.T) {
	tests := []struct {
		dt   DataType
		want TypeID
		ok   bool
	}{
		{dt: Null, want: TypeIDInvalid, ok: false},
		{dt: Nothing, want: TypeIDInvalid, ok: false},
		{dt: Boolean, want: TypeIDBool, ok: true},
		{dt: UInt16, want: TypeIDUInt16, ok: true},
		{dt: Decimal(2, 10), want: TypeIDDecimal, ok: true},
		{dt: Char(3), want: TypeIDString, ok: true},
		{dt: Varchar, want: TypeIDString, ok: true},
		{dt: Bytea, want: TypeIDBytes, ok: true},
		{dt: Nullable(Timestamp), want: TypeIDTimestamp, ok: true},
		{dt: List(Int8), want: TypeIDList, ok: true},
		{dt: Map(Int8, Int8), want: TypeIDMap, ok: true},
		{dt: Nullable(Null), want: TypeIDInvalid, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.dt.String(), func(t *testing.T) {
			got, ok := tt.dt.TypeID()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTextMarshaling(t *testing.T) {
	type column struct {
		Name string   `json:"name"`
		Type DataType `json:"type"`
	}
	data, err := json.Marshal(column{Name: "tags", Type: Map(Varchar, List(Int64))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"tags","type":"map<varchar,list<bigint>>"}`, string(data))

	var out column
	require.NoError(t, json.Unmarshal([]byte(`{"name":"x","type":"LIST<CHAR(4)>"}`), &out))
	assert.Equal(t, List(Char(4)), out.Type)

	assert.Error(t, json.Unmarshal([]byte(`{"name":"x","type":"map<jsonb,int>"}`), &out))
}

func TestTypeIDNames(t *testing.T) {
	ids := AllTypeIDs()
	require.Len(t, ids, NumTypeIDs)
	seen := map[string]bool{}
	for _, id := range ids {
		assert.True(t, id.Valid())
		assert.False(t, seen[id.String()], "duplicate name %s", id)
		seen[id.String()] = true
	}
	assert.False(t, TypeIDInvalid.Valid())
	assert.Equal(t, "int32", TypeIDInt32.String())
	assert.Equal(t, "TypeID(99)", TypeID(99).String())
}
