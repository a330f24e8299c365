package columnar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datafreelab/datalite/status"
	"github.com/datafreelab/datalite/types"
)

func TestVariants(t *testing.T) {
	all := Variants()
	require.Len(t, all, types.NumTypeIDs)

	arrayNames := map[string]bool{}
	for i, v := range all {
		assert.Equal(t, types.TypeID(i+1), v.ID)
		assert.Equal(t, v.ID.String(), v.String())
		assert.False(t, arrayNames[v.ArrayName], "duplicate array name %s", v.ArrayName)
		arrayNames[v.ArrayName] = true

		got, ok := LookupVariant(v.ID)
		require.True(t, ok)
		assert.Equal(t, v.ArrayName, got.ArrayName)
	}

	_, ok := LookupVariant(types.TypeIDInvalid)
	assert.False(t, ok)
	_, ok = LookupVariant(types.TypeID(100))
	assert.False(t, ok)

	str, ok := LookupVariant(types.TypeIDString)
	require.True(t, ok)
	assert.Equal(t, "String", str.ScalarName)
	assert.Equal(t, "StringRef", str.RefName)
	assert.Equal(t, "StringArray", str.ArrayName)
	assert.Equal(t, "StringArrayBuilder", str.BuilderName)

	i32, ok := LookupVariant(types.TypeIDInt32)
	require.True(t, ok)
	assert.Equal(t, "Int32", i32.RefName)
	assert.Equal(t, "Int32Array", i32.ArrayName)
}

func TestNewBuilder(t *testing.T) {
	tests := []struct {
		dt   types.DataType
		want types.TypeID
	}{
		{dt: types.Boolean, want: types.TypeIDBool},
		{dt: types.UInt16, want: types.TypeIDUInt16},
		{dt: types.Decimal(2, 10), want: types.TypeIDDecimal},
		{dt: types.Char(3), want: types.TypeIDString},
		{dt: types.Varchar, want: types.TypeIDString},
		{dt: types.Bytea, want: types.TypeIDBytes},
		{dt: types.Jsonb, want: types.TypeIDJsonb},
		{dt: types.Nullable(types.Int64), want: types.TypeIDInt64},
		{dt: types.List(types.Nullable(types.Varchar)), want: types.TypeIDList},
		{dt: types.Nullable(types.List(types.Date)), want: types.TypeIDList},
		{dt: types.Map(types.Int32, types.List(types.Jsonb)), want: types.TypeIDMap},
		{dt: types.Nullable(types.Map(types.Timestamp, types.Float32)), want: types.TypeIDMap},
	}
	for _, tt := range tests {
		t.Run(tt.dt.String(), func(t *testing.T) {
			b, err := NewBuilder(tt.dt, 4)
			require.NoError(t, err)
			assert.Equal(t, tt.want, b.TypeID())
			assert.Equal(t, 0, b.Len())
			arr := b.FinishArray()
			assert.Equal(t, tt.want, arr.TypeID())
			assert.True(t, arr.IsEmpty())
		})
	}
}

func TestNewBuilderErrors(t *testing.T) {
	tests := []struct {
		dt   types.DataType
		want status.Status
	}{
		{dt: types.Null, want: status.InvalidArgument},
		{dt: types.Nothing, want: status.InvalidArgument},
		{dt: types.List(types.Null), want: status.InvalidArgument},
		{dt: types.Map(types.Int32, types.Nothing), want: status.InvalidArgument},
		{dt: types.Map(types.List(types.Int32), types.Int32), want: status.InvalidMapKey},
		{dt: types.List(types.Map(types.Jsonb, types.Int32)), want: status.InvalidMapKey},
	}
	for _, tt := range tests {
		t.Run(tt.dt.String(), func(t *testing.T) {
			_, err := NewBuilder(tt.dt, 0)
			require.Error(t, err)
			assert.Equal(t, tt.want, status.Of(err))
		})
	}
}

func TestRegisterRejectsBadTables(t *testing.T) {
	assert.Error(t, register(nil))

	all := Variants()
	swapped := append([]Variant(nil), all...)
	swapped[0], swapped[1] = swapped[1], swapped[0]
	assert.Error(t, register(swapped))

	assert.Error(t, register(all[:len(all)-1]))

	require.NoError(t, register(all))
	assert.Len(t, Variants(), types.NumTypeIDs)
}
