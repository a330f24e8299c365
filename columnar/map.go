package columnar

import (
	"sort"
	"strings"

	"github.com/tidwall/btree"

	"github.com/datafreelab/datalite/status"
	"github.com/datafreelab/datalite/types"
)

// Map is an owned set of key-value entries sorted by key with unique keys.
type Map struct {
	keys, values DynArray
}

// ValidMapKey reports whether values of kind id may be used as map keys.
func ValidMapKey(id types.TypeID) bool {
	switch id {
	case types.TypeIDList, types.TypeIDMap, types.TypeIDJsonb, types.TypeIDInvalid:
		return false
	}
	return true
}

type mapEntry struct {
	key   ScalarRefImpl
	index int
}

// NewMap pairs keys[i] with values[i]. Entries are sorted by key and,
// when a key repeats, the last entry wins. It doesn't take ownership of
// the arguments.
func NewMap(keys, values ArrayImpl) (Map, error) {
	if !ValidMapKey(keys.TypeID()) {
		return Map{}, status.Errorf(status.InvalidMapKey, "map key can't be %s", keys.TypeID())
	}
	if keys.Len() != values.Len() {
		return Map{}, status.Errorf(status.InvalidArgument, "map has %d keys and %d values", keys.Len(), values.Len())
	}
	dk, dv := keys.erase(), values.erase()

	entries := btree.NewGenericOptions(func(a, b mapEntry) bool {
		return CompareRefs(a.key, b.key) < 0
	}, btree.Options{NoLocks: true})
	for i := 0; i < dk.Len(); i++ {
		k, _ := dk.Get(i)
		entries.Set(mapEntry{key: k, index: i})
	}

	kb, vb := dk.NewBuilder(entries.Len()), dv.NewBuilder(entries.Len())
	entries.Scan(func(e mapEntry) bool {
		v, _ := dv.Get(e.index)
		mustPush(kb, e.key)
		mustPush(vb, v)
		return true
	})
	return Map{keys: kb.FinishArray().erase(), values: vb.FinishArray().erase()}, nil
}

func (v Map) Len() int {
	if v.keys == nil {
		return 0
	}
	return v.keys.Len()
}

// Keys returns the keys in order, or nil for a zero Map.
func (v Map) Keys() ArrayImpl {
	if v.keys == nil {
		return nil
	}
	return unbox(v.keys)
}

func (v Map) Values() ArrayImpl {
	if v.values == nil {
		return nil
	}
	return unbox(v.values)
}

func (Map) TypeID() types.TypeID { return types.TypeIDMap }
func (v Map) String() string     { return v.AsRef().String() }

func (v Map) AsRef() MapRef {
	return MapRef{keys: v.keys, values: v.values, start: 0, end: v.Len()}
}

func (v Map) AsScalarRef() ScalarRefImpl { return v.AsRef() }
func (Map) scalarImpl()                  {}

// MapRef is a view of one map stored in a MapArray.
type MapRef struct {
	keys, values DynArray
	start, end   int
}

func (MapRef) TypeID() types.TypeID { return types.TypeIDMap }

func (v MapRef) KeyTypeID() types.TypeID {
	if v.keys == nil {
		return types.TypeIDInvalid
	}
	return v.keys.TypeID()
}

func (v MapRef) ValueTypeID() types.TypeID {
	if v.values == nil {
		return types.TypeIDInvalid
	}
	return v.values.TypeID()
}

func (v MapRef) Len() int {
	return v.end - v.start
}

// Entry returns the i-th entry in key order.
func (v MapRef) Entry(i int) (key, value ScalarRefImpl, ok bool) {
	if i < 0 || i >= v.Len() {
		return nil, nil, false
	}
	key, _ = v.keys.Get(v.start + i)
	value, _ = v.values.Get(v.start + i)
	return key, value, true
}

// Lookup finds the value stored under key.
func (v MapRef) Lookup(key ScalarRefImpl) (ScalarRefImpl, bool) {
	i := sort.Search(v.Len(), func(i int) bool {
		k, _ := v.keys.Get(v.start + i)
		return CompareRefs(k, key) >= 0
	})
	if i == v.Len() {
		return nil, false
	}
	k, value, _ := v.Entry(i)
	if CompareRefs(k, key) != 0 {
		return nil, false
	}
	return value, true
}

func (v MapRef) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i := 0; i < v.Len(); i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		key, value, _ := v.Entry(i)
		sb.WriteString(key.String())
		sb.WriteString(": ")
		sb.WriteString(value.String())
	}
	sb.WriteString("}")
	return sb.String()
}

// ToOwned copies the entries into new arrays.
func (v MapRef) ToOwned() Map {
	if v.keys == nil || v.values == nil {
		return Map{}
	}
	kb, vb := v.keys.NewBuilder(v.Len()), v.values.NewBuilder(v.Len())
	for i := 0; i < v.Len(); i++ {
		key, value, _ := v.Entry(i)
		mustPush(kb, key)
		mustPush(vb, value)
	}
	return Map{keys: kb.FinishArray().erase(), values: vb.FinishArray().erase()}
}

func (v MapRef) ToScalar() ScalarImpl { return v.ToOwned() }
func (MapRef) scalarRefImpl()         {}

// MapArray is a column of maps. Entries of all maps are stored in two
// parallel child arrays, map i spans entries offsets[i] to offsets[i+1].
type MapArray struct {
	offsets      []int
	keys, values DynArray
}

func (*MapArray) TypeID() types.TypeID { return types.TypeIDMap }

func (a *MapArray) Len() int {
	return spans(a.offsets)
}

func (a *MapArray) IsEmpty() bool {
	return a.Len() == 0
}

func (a *MapArray) Get(i int) (MapRef, bool) {
	if i < 0 || i >= a.Len() {
		return MapRef{}, false
	}
	return MapRef{keys: a.keys, values: a.values, start: a.offsets[i], end: a.offsets[i+1]}, true
}

// Offsets exposes map boundaries. It must not be modified.
func (a *MapArray) Offsets() []int {
	return a.offsets
}

func (a *MapArray) Keys() ArrayImpl {
	return unbox(a.keys)
}

func (a *MapArray) Values() ArrayImpl {
	return unbox(a.values)
}

func (a *MapArray) Builder(capacity int) *MapArrayBuilder {
	b, err := NewMapArrayBuilder(a.keys.NewBuilder(0), a.values.NewBuilder(0), capacity)
	if err != nil {
		panic(err)
	}
	return b
}

func (a *MapArray) Clone() *MapArray {
	offsets := make([]int, len(a.offsets))
	copy(offsets, a.offsets)
	return &MapArray{offsets: offsets, keys: a.keys.Clone(), values: a.values.Clone()}
}

func (a *MapArray) String() string {
	return formatArray[MapRef](a)
}

func (a *MapArray) erase() DynArray {
	return dynArray[MapRef, *MapArray, *MapArrayBuilder]{arr: a}
}

type MapArrayBuilder struct {
	offsets      []int
	keys, values ArrayBuilderImpl
	sealed
}

// NewMapArrayBuilder returns a builder whose entries go into keys and values.
// Both must be empty and are owned by the new builder.
func NewMapArrayBuilder(keys, values ArrayBuilderImpl, capacity int) (*MapArrayBuilder, error) {
	if !ValidMapKey(keys.TypeID()) {
		return nil, status.Errorf(status.InvalidMapKey, "map key can't be %s", keys.TypeID())
	}
	offsets := make([]int, 1, capacity+1)
	return &MapArrayBuilder{offsets: offsets, keys: keys, values: values}, nil
}

func (*MapArrayBuilder) TypeID() types.TypeID { return types.TypeIDMap }

func (b *MapArrayBuilder) Len() int {
	return spans(b.offsets)
}

// Push appends a map. It panics if the entry kinds differ from the
// builder's, use PushRef to get an error instead.
func (b *MapArrayBuilder) Push(v MapRef) {
	if err := b.pushMap(v); err != nil {
		panic(err)
	}
}

func (b *MapArrayBuilder) PushRef(v ScalarRefImpl) error {
	typed, err := RefAs[MapRef](v)
	if err != nil {
		return err
	}
	return b.pushMap(typed)
}

func (b *MapArrayBuilder) pushMap(v MapRef) error {
	b.check()
	if err := fitsArray(b.keys, v.keys); err != nil {
		return err
	}
	if err := fitsArray(b.values, v.values); err != nil {
		return err
	}
	for i := 0; i < v.Len(); i++ {
		key, value, _ := v.Entry(i)
		if err := b.keys.PushRef(key); err != nil {
			return err
		}
		if err := b.values.PushRef(value); err != nil {
			return err
		}
	}
	b.offsets = append(b.offsets, b.keys.Len())
	return nil
}

func (b *MapArrayBuilder) Finish() *MapArray {
	b.seal()
	out := &MapArray{
		offsets: b.offsets,
		keys:    b.keys.FinishArray().erase(),
		values:  b.values.FinishArray().erase(),
	}
	b.offsets, b.keys, b.values = nil, nil, nil
	return out
}

func (b *MapArrayBuilder) FinishArray() ArrayImpl {
	return b.Finish()
}

func (b *MapArrayBuilder) builderImpl() {}
