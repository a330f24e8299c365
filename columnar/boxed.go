package columnar

import (
	"github.com/datafreelab/datalite/types"
)

// DynArray is the kind-erased face of an array. Every array kind is erased
// by wrapping it in the same generic adapter, so code holding a DynArray can
// read, copy and extend arrays without knowing their concrete type.
type DynArray interface {
	TypeID() types.TypeID
	Len() int
	IsEmpty() bool
	Get(i int) (ScalarRefImpl, bool)
	// NewBuilder returns an empty builder producing arrays of the same kind.
	NewBuilder(capacity int) ArrayBuilderImpl
	// Clone deep-copies the array.
	Clone() DynArray
	String() string
}

// erasable is what the adapter needs from a concrete array type.
type erasable[R ScalarRefImpl, A any, B ArrayBuilderImpl] interface {
	Array[R]
	Builder(capacity int) B
	Clone() A
}

type dynArray[R ScalarRefImpl, A erasable[R, A, B], B ArrayBuilder[R, A]] struct {
	arr A
}

func (d dynArray[R, A, B]) TypeID() types.TypeID { return d.arr.TypeID() }
func (d dynArray[R, A, B]) Len() int             { return d.arr.Len() }
func (d dynArray[R, A, B]) IsEmpty() bool        { return d.arr.IsEmpty() }
func (d dynArray[R, A, B]) String() string       { return d.arr.String() }

func (d dynArray[R, A, B]) Get(i int) (ScalarRefImpl, bool) {
	v, ok := d.arr.Get(i)
	if !ok {
		return nil, false
	}
	return v, true
}

func (d dynArray[R, A, B]) NewBuilder(capacity int) ArrayBuilderImpl {
	return d.arr.Builder(capacity)
}

func (d dynArray[R, A, B]) Clone() DynArray {
	return dynArray[R, A, B]{arr: d.arr.Clone()}
}

// BoxedArray is an owned handle to an array of any kind.
type BoxedArray struct {
	dyn DynArray
}

// Box erases the concrete type of a.
func Box(a ArrayImpl) *BoxedArray {
	return &BoxedArray{dyn: a.erase()}
}

func (b *BoxedArray) live() DynArray {
	if b.dyn == nil {
		panic("use of a consumed BoxedArray")
	}
	return b.dyn
}

func (b *BoxedArray) TypeID() types.TypeID { return b.live().TypeID() }
func (b *BoxedArray) Len() int             { return b.live().Len() }
func (b *BoxedArray) IsEmpty() bool        { return b.live().IsEmpty() }
func (b *BoxedArray) String() string       { return b.live().String() }

func (b *BoxedArray) Get(i int) (ScalarRefImpl, bool) {
	return b.live().Get(i)
}

func (b *BoxedArray) NewBuilder(capacity int) ArrayBuilderImpl {
	return b.live().NewBuilder(capacity)
}

// Clone deep-copies the array into a new handle.
func (b *BoxedArray) Clone() *BoxedArray {
	return &BoxedArray{dyn: b.live().Clone()}
}

// Dyn returns the erased array.
func (b *BoxedArray) Dyn() DynArray {
	return b.live()
}

// AsArrayImpl recovers the concrete array while keeping the handle usable.
func (b *BoxedArray) AsArrayImpl() ArrayImpl {
	return unbox(b.live())
}

// IntoArrayImpl recovers the concrete array and consumes the handle.
func (b *BoxedArray) IntoArrayImpl() ArrayImpl {
	out := unbox(b.live())
	b.dyn = nil
	return out
}

// unbox dispatches on the kind tag to the registered downcast.
// A failed downcast means the registry is inconsistent and panics.
func unbox(d DynArray) ArrayImpl {
	return mustLookup(d.TypeID()).unbox(d)
}
