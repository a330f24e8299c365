package columnar

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/datafreelab/datalite/status"
	"github.com/datafreelab/datalite/types"
)

// Variant describes one registered kind: its tag and the Go types standing
// for its owned value, borrowed value, array and builder.
type Variant struct {
	ID          types.TypeID
	ScalarName  string
	RefName     string
	ArrayName   string
	BuilderName string

	newBuilder func(dt types.DataType, capacity int) (ArrayBuilderImpl, error)
	unbox      func(d DynArray) ArrayImpl
}

func (v Variant) String() string {
	return v.ID.String()
}

func variant[R ScalarRefImpl, A erasable[R, A, B], B ArrayBuilder[R, A]](
	names [4]string,
	newBuilder func(dt types.DataType, capacity int) (B, error),
) Variant {
	var zero R
	return Variant{
		ID:          zero.TypeID(),
		ScalarName:  names[0],
		RefName:     names[1],
		ArrayName:   names[2],
		BuilderName: names[3],
		newBuilder: func(dt types.DataType, capacity int) (ArrayBuilderImpl, error) {
			b, err := newBuilder(dt, capacity)
			if err != nil {
				return nil, err
			}
			return b, nil
		},
		unbox: func(d DynArray) ArrayImpl {
			typed, ok := d.(dynArray[R, A, B])
			if !ok {
				panic(fmt.Sprintf("failed to downcast %s array %T to %s", d.TypeID(), d, names[2]))
			}
			return typed.arr
		},
	}
}

func primitiveVariant[T primitive](name string) Variant {
	return variant[T, *PrimitiveArray[T], *PrimitiveArrayBuilder[T]](
		[4]string{name, name, name + "Array", name + "ArrayBuilder"},
		func(_ types.DataType, capacity int) (*PrimitiveArrayBuilder[T], error) {
			return NewPrimitiveArrayBuilder[T](capacity), nil
		},
	)
}

// variants is indexed by TypeID. It's filled in init, as the list and map
// builder constructors recurse into NewBuilder.
var variants [types.NumTypeIDs + 1]Variant

func init() {
	registered := []Variant{
		primitiveVariant[Bool]("Bool"),
		primitiveVariant[Int8]("Int8"),
		primitiveVariant[Int16]("Int16"),
		primitiveVariant[Int32]("Int32"),
		primitiveVariant[Int64]("Int64"),
		primitiveVariant[UInt8]("UInt8"),
		primitiveVariant[UInt16]("UInt16"),
		primitiveVariant[UInt32]("UInt32"),
		primitiveVariant[UInt64]("UInt64"),
		primitiveVariant[Float32]("Float32"),
		primitiveVariant[Float64]("Float64"),
		primitiveVariant[Decimal]("Decimal"),
		primitiveVariant[Date]("Date"),
		primitiveVariant[Timestamp]("Timestamp"),
		variant[StringRef, *StringArray, *StringArrayBuilder](
			[4]string{"String", "StringRef", "StringArray", "StringArrayBuilder"},
			func(_ types.DataType, capacity int) (*StringArrayBuilder, error) {
				return NewStringArrayBuilder(capacity), nil
			},
		),
		variant[BytesRef, *BytesArray, *BytesArrayBuilder](
			[4]string{"Bytes", "BytesRef", "BytesArray", "BytesArrayBuilder"},
			func(_ types.DataType, capacity int) (*BytesArrayBuilder, error) {
				return NewBytesArrayBuilder(capacity), nil
			},
		),
		variant[JsonbRef, *JsonbArray, *JsonbArrayBuilder](
			[4]string{"Jsonb", "JsonbRef", "JsonbArray", "JsonbArrayBuilder"},
			func(_ types.DataType, capacity int) (*JsonbArrayBuilder, error) {
				return NewJsonbArrayBuilder(capacity), nil
			},
		),
		variant[ListRef, *ListArray, *ListArrayBuilder](
			[4]string{"List", "ListRef", "ListArray", "ListArrayBuilder"},
			newListArrayBuilderFor,
		),
		variant[MapRef, *MapArray, *MapArrayBuilder](
			[4]string{"Map", "MapRef", "MapArray", "MapArrayBuilder"},
			newMapArrayBuilderFor,
		),
	}
	if err := register(registered); err != nil {
		panic(err)
	}
}

// register checks that there is exactly one variant per kind tag and that
// each sits at its own tag's index.
func register(registered []Variant) error {
	if len(registered) != types.NumTypeIDs {
		return errors.Errorf("registry has %d variants, want %d", len(registered), types.NumTypeIDs)
	}
	var table [types.NumTypeIDs + 1]Variant
	for i, v := range registered {
		want := types.TypeID(i + 1)
		if v.ID != want {
			return errors.Errorf("variant %s (%s) registered at position of %s", v.ID, v.ArrayName, want)
		}
		table[v.ID] = v
	}
	variants = table
	for _, v := range registered {
		if err := selfCheck(v); err != nil {
			return err
		}
	}
	return nil
}

// probeTypes holds one data type per kind, used to exercise each variant.
var probeTypes = map[types.TypeID]types.DataType{
	types.TypeIDBool:      types.Boolean,
	types.TypeIDInt8:      types.Int8,
	types.TypeIDInt16:     types.Int16,
	types.TypeIDInt32:     types.Int32,
	types.TypeIDInt64:     types.Int64,
	types.TypeIDUInt8:     types.UInt8,
	types.TypeIDUInt16:    types.UInt16,
	types.TypeIDUInt32:    types.UInt32,
	types.TypeIDUInt64:    types.UInt64,
	types.TypeIDFloat32:   types.Float32,
	types.TypeIDFloat64:   types.Float64,
	types.TypeIDDecimal:   types.Decimal(0, 38),
	types.TypeIDDate:      types.Date,
	types.TypeIDTimestamp: types.Timestamp,
	types.TypeIDString:    types.Varchar,
	types.TypeIDBytes:     types.Bytea,
	types.TypeIDJsonb:     types.Jsonb,
	types.TypeIDList:      types.List(types.Int32),
	types.TypeIDMap:       types.Map(types.Varchar, types.Int32),
}

// selfCheck seals an empty builder of the variant and checks that the tag
// agrees at every step of the erase/downcast round trip.
func selfCheck(v Variant) error {
	dt, ok := probeTypes[v.ID]
	if !ok {
		return errors.Errorf("no probe type for %s", v.ID)
	}
	b, err := v.newBuilder(dt, 0)
	if err != nil {
		return errors.Wrapf(err, "couldn't create %s", v.BuilderName)
	}
	if b.TypeID() != v.ID {
		return errors.Errorf("%s reports tag %s, want %s", v.BuilderName, b.TypeID(), v.ID)
	}
	arr := b.FinishArray()
	if arr.TypeID() != v.ID || !arr.IsEmpty() {
		return errors.Errorf("%s sealed into %s array of length %d", v.BuilderName, arr.TypeID(), arr.Len())
	}
	if back := v.unbox(arr.erase()); back.TypeID() != v.ID {
		return errors.Errorf("%s downcast into %s", v.ArrayName, back.TypeID())
	}
	return nil
}

// Variants lists every registered kind in tag order.
func Variants() []Variant {
	out := make([]Variant, 0, types.NumTypeIDs)
	for _, id := range types.AllTypeIDs() {
		out = append(out, variants[id])
	}
	return out
}

// LookupVariant returns the variant registered for id.
func LookupVariant(id types.TypeID) (Variant, bool) {
	if !id.Valid() {
		return Variant{}, false
	}
	return variants[id], true
}

func mustLookup(id types.TypeID) Variant {
	v, ok := LookupVariant(id)
	if !ok {
		panic(fmt.Sprintf("no variant registered for %s", id))
	}
	return v
}

// NewBuilder returns an empty builder for arrays storing values of dt.
// Composite types get builders for their children recursively.
func NewBuilder(dt types.DataType, capacity int) (ArrayBuilderImpl, error) {
	id, ok := dt.TypeID()
	if !ok {
		return nil, status.Errorf(status.InvalidArgument, "data type %s has no array representation", dt)
	}
	return mustLookup(id).newBuilder(dt, capacity)
}

func newListArrayBuilderFor(dt types.DataType, capacity int) (*ListArrayBuilder, error) {
	dt = unwrapNullable(dt)
	items, err := NewBuilder(*dt.List.Item, 0)
	if err != nil {
		return nil, err
	}
	return NewListArrayBuilder(items, capacity), nil
}

func newMapArrayBuilderFor(dt types.DataType, capacity int) (*MapArrayBuilder, error) {
	dt = unwrapNullable(dt)
	if err := dt.Validate(); err != nil {
		return nil, err
	}
	keys, err := NewBuilder(*dt.Map.Key, 0)
	if err != nil {
		return nil, err
	}
	values, err := NewBuilder(*dt.Map.Value, 0)
	if err != nil {
		return nil, err
	}
	return NewMapArrayBuilder(keys, values, capacity)
}

func unwrapNullable(dt types.DataType) types.DataType {
	for dt.Kind == types.KindNullable {
		dt = *dt.Nullable.Inner
	}
	return dt
}
