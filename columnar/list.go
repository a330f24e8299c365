package columnar

import (
	"strings"

	"github.com/datafreelab/datalite/types"
)

// List is an owned sequence of values of one kind.
type List struct {
	items DynArray
}

// NewList takes ownership of items.
func NewList(items ArrayImpl) List {
	return List{items: items.erase()}
}

// Items returns the elements as a concrete array, or nil for a zero List.
func (v List) Items() ArrayImpl {
	if v.items == nil {
		return nil
	}
	return unbox(v.items)
}

func (v List) Len() int {
	if v.items == nil {
		return 0
	}
	return v.items.Len()
}

func (List) TypeID() types.TypeID { return types.TypeIDList }
func (v List) String() string     { return v.AsRef().String() }

func (v List) AsRef() ListRef {
	return ListRef{items: v.items, start: 0, end: v.Len()}
}

func (v List) AsScalarRef() ScalarRefImpl { return v.AsRef() }
func (List) scalarImpl()                  {}

// ListRef is a view of one list stored in a ListArray.
type ListRef struct {
	items      DynArray
	start, end int
}

func (ListRef) TypeID() types.TypeID { return types.TypeIDList }

// ItemTypeID returns the kind of the elements.
func (v ListRef) ItemTypeID() types.TypeID {
	if v.items == nil {
		return types.TypeIDInvalid
	}
	return v.items.TypeID()
}

func (v ListRef) Len() int {
	return v.end - v.start
}

func (v ListRef) Get(i int) (ScalarRefImpl, bool) {
	if i < 0 || i >= v.Len() {
		return nil, false
	}
	return v.items.Get(v.start + i)
}

func (v ListRef) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i := 0; i < v.Len(); i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		item, _ := v.Get(i)
		sb.WriteString(item.String())
	}
	sb.WriteString("]")
	return sb.String()
}

// ToOwned copies the elements into a new array.
func (v ListRef) ToOwned() List {
	if v.items == nil {
		return List{}
	}
	b := v.items.NewBuilder(v.Len())
	for i := 0; i < v.Len(); i++ {
		item, _ := v.Get(i)
		mustPush(b, item)
	}
	return List{items: b.FinishArray().erase()}
}

func (v ListRef) ToScalar() ScalarImpl { return v.ToOwned() }
func (ListRef) scalarRefImpl()         {}

// fitsRef checks that v can be pushed into b. Nested lists and maps are
// checked down to their leaf kinds, so once it passes the push can't fail
// halfway and leave child builders ahead of the parent's offsets.
func fitsRef(b ArrayBuilderImpl, v ScalarRefImpl) error {
	if got := typeIDOf(v); got != b.TypeID() {
		return mismatch(b.TypeID(), got)
	}
	switch v := v.(type) {
	case ListRef:
		if lb, ok := b.(*ListArrayBuilder); ok {
			return fitsArray(lb.items, v.items)
		}
	case MapRef:
		if mb, ok := b.(*MapArrayBuilder); ok {
			if err := fitsArray(mb.keys, v.keys); err != nil {
				return err
			}
			return fitsArray(mb.values, v.values)
		}
	}
	return nil
}

// fitsArray is fitsRef for every value stored in d.
func fitsArray(b ArrayBuilderImpl, d DynArray) error {
	if d == nil {
		return mismatch(b.TypeID(), types.TypeIDInvalid)
	}
	if d.TypeID() != b.TypeID() {
		return mismatch(b.TypeID(), d.TypeID())
	}
	switch b := b.(type) {
	case *ListArrayBuilder:
		if items, ok := unbox(d).(*ListArray); ok {
			return fitsArray(b.items, items.items)
		}
	case *MapArrayBuilder:
		if entries, ok := unbox(d).(*MapArray); ok {
			if err := fitsArray(b.keys, entries.keys); err != nil {
				return err
			}
			return fitsArray(b.values, entries.values)
		}
	}
	return nil
}

// mustPush appends a value whose kind already matches the builder.
func mustPush(b ArrayBuilderImpl, v ScalarRefImpl) {
	if err := b.PushRef(v); err != nil {
		panic(err)
	}
}

// ListArray is a column of lists. The elements of every list are stored in
// one child array, list i spans items[offsets[i]:offsets[i+1]].
type ListArray struct {
	offsets []int
	items   DynArray
}

func (*ListArray) TypeID() types.TypeID { return types.TypeIDList }

func (a *ListArray) Len() int {
	return spans(a.offsets)
}

func (a *ListArray) IsEmpty() bool {
	return a.Len() == 0
}

func (a *ListArray) Get(i int) (ListRef, bool) {
	if i < 0 || i >= a.Len() {
		return ListRef{}, false
	}
	return ListRef{items: a.items, start: a.offsets[i], end: a.offsets[i+1]}, true
}

// Offsets exposes list boundaries. It must not be modified.
func (a *ListArray) Offsets() []int {
	return a.offsets
}

// Items returns the flattened elements of all lists.
func (a *ListArray) Items() ArrayImpl {
	return unbox(a.items)
}

func (a *ListArray) Builder(capacity int) *ListArrayBuilder {
	return NewListArrayBuilder(a.items.NewBuilder(0), capacity)
}

func (a *ListArray) Clone() *ListArray {
	offsets := make([]int, len(a.offsets))
	copy(offsets, a.offsets)
	return &ListArray{offsets: offsets, items: a.items.Clone()}
}

func (a *ListArray) String() string {
	return formatArray[ListRef](a)
}

func (a *ListArray) erase() DynArray {
	return dynArray[ListRef, *ListArray, *ListArrayBuilder]{arr: a}
}

type ListArrayBuilder struct {
	offsets []int
	items   ArrayBuilderImpl
	sealed
}

// NewListArrayBuilder returns a builder whose elements go into items.
// items must be empty and is owned by the new builder.
func NewListArrayBuilder(items ArrayBuilderImpl, capacity int) *ListArrayBuilder {
	offsets := make([]int, 1, capacity+1)
	return &ListArrayBuilder{offsets: offsets, items: items}
}

func (*ListArrayBuilder) TypeID() types.TypeID { return types.TypeIDList }

func (b *ListArrayBuilder) Len() int {
	return spans(b.offsets)
}

// ItemTypeID returns the kind of elements the builder accepts.
func (b *ListArrayBuilder) ItemTypeID() types.TypeID {
	return b.items.TypeID()
}

// Push appends a list. It panics if the element kinds differ from the
// builder's, use PushRef to get an error instead.
func (b *ListArrayBuilder) Push(v ListRef) {
	if err := b.pushList(v); err != nil {
		panic(err)
	}
}

func (b *ListArrayBuilder) PushRef(v ScalarRefImpl) error {
	typed, err := RefAs[ListRef](v)
	if err != nil {
		return err
	}
	return b.pushList(typed)
}

func (b *ListArrayBuilder) pushList(v ListRef) error {
	b.check()
	if err := fitsArray(b.items, v.items); err != nil {
		return err
	}
	for i := 0; i < v.Len(); i++ {
		item, _ := v.Get(i)
		if err := b.items.PushRef(item); err != nil {
			return err
		}
	}
	b.offsets = append(b.offsets, b.items.Len())
	return nil
}

// PushValues appends a list built from already typed items, all of which
// must match the builder's element kind. Nothing is appended on error.
func (b *ListArrayBuilder) PushValues(items ...ScalarRefImpl) error {
	b.check()
	for _, item := range items {
		if err := fitsRef(b.items, item); err != nil {
			return err
		}
	}
	for _, item := range items {
		if err := b.items.PushRef(item); err != nil {
			return err
		}
	}
	b.offsets = append(b.offsets, b.items.Len())
	return nil
}

func (b *ListArrayBuilder) Finish() *ListArray {
	b.seal()
	out := &ListArray{offsets: b.offsets, items: b.items.FinishArray().erase()}
	b.offsets, b.items = nil, nil
	return out
}

func (b *ListArrayBuilder) FinishArray() ArrayImpl {
	return b.Finish()
}

func (b *ListArrayBuilder) builderImpl() {}
