package columnar

import (
	"github.com/datafreelab/datalite/types"
)

type primitive interface {
	Bool | Int8 | Int16 | Int32 | Int64 |
		UInt8 | UInt16 | UInt32 | UInt64 |
		Float32 | Float64 | Decimal | Date | Timestamp
	ScalarImpl
	ScalarRefImpl
}

// PrimitiveArray is a column of fixed-width values stored contiguously.
type PrimitiveArray[T primitive] struct {
	data []T
}

type (
	BoolArray      = PrimitiveArray[Bool]
	Int8Array      = PrimitiveArray[Int8]
	Int16Array     = PrimitiveArray[Int16]
	Int32Array     = PrimitiveArray[Int32]
	Int64Array     = PrimitiveArray[Int64]
	UInt8Array     = PrimitiveArray[UInt8]
	UInt16Array    = PrimitiveArray[UInt16]
	UInt32Array    = PrimitiveArray[UInt32]
	UInt64Array    = PrimitiveArray[UInt64]
	Float32Array   = PrimitiveArray[Float32]
	Float64Array   = PrimitiveArray[Float64]
	DecimalArray   = PrimitiveArray[Decimal]
	DateArray      = PrimitiveArray[Date]
	TimestampArray = PrimitiveArray[Timestamp]

	BoolArrayBuilder      = PrimitiveArrayBuilder[Bool]
	Int8ArrayBuilder      = PrimitiveArrayBuilder[Int8]
	Int16ArrayBuilder     = PrimitiveArrayBuilder[Int16]
	Int32ArrayBuilder     = PrimitiveArrayBuilder[Int32]
	Int64ArrayBuilder     = PrimitiveArrayBuilder[Int64]
	UInt8ArrayBuilder     = PrimitiveArrayBuilder[UInt8]
	UInt16ArrayBuilder    = PrimitiveArrayBuilder[UInt16]
	UInt32ArrayBuilder    = PrimitiveArrayBuilder[UInt32]
	UInt64ArrayBuilder    = PrimitiveArrayBuilder[UInt64]
	Float32ArrayBuilder   = PrimitiveArrayBuilder[Float32]
	Float64ArrayBuilder   = PrimitiveArrayBuilder[Float64]
	DecimalArrayBuilder   = PrimitiveArrayBuilder[Decimal]
	DateArrayBuilder      = PrimitiveArrayBuilder[Date]
	TimestampArrayBuilder = PrimitiveArrayBuilder[Timestamp]
)

// PrimitiveArrayOf builds an array holding the given values.
func PrimitiveArrayOf[T primitive](values ...T) *PrimitiveArray[T] {
	b := NewPrimitiveArrayBuilder[T](len(values))
	for _, v := range values {
		b.Push(v)
	}
	return b.Finish()
}

func (a *PrimitiveArray[T]) TypeID() types.TypeID {
	var zero T
	return zero.TypeID()
}

func (a *PrimitiveArray[T]) Len() int {
	return len(a.data)
}

func (a *PrimitiveArray[T]) IsEmpty() bool {
	return len(a.data) == 0
}

func (a *PrimitiveArray[T]) Get(i int) (T, bool) {
	if i < 0 || i >= len(a.data) {
		var zero T
		return zero, false
	}
	return a.data[i], true
}

// Values exposes the backing storage. It must not be modified.
func (a *PrimitiveArray[T]) Values() []T {
	return a.data
}

// Builder returns an empty builder of the same kind.
func (a *PrimitiveArray[T]) Builder(capacity int) *PrimitiveArrayBuilder[T] {
	return NewPrimitiveArrayBuilder[T](capacity)
}

func (a *PrimitiveArray[T]) Clone() *PrimitiveArray[T] {
	data := make([]T, len(a.data))
	copy(data, a.data)
	return &PrimitiveArray[T]{data: data}
}

func (a *PrimitiveArray[T]) String() string {
	return formatArray[T](a)
}

func (a *PrimitiveArray[T]) erase() DynArray {
	return dynArray[T, *PrimitiveArray[T], *PrimitiveArrayBuilder[T]]{arr: a}
}

type PrimitiveArrayBuilder[T primitive] struct {
	data []T
	sealed
}

func NewPrimitiveArrayBuilder[T primitive](capacity int) *PrimitiveArrayBuilder[T] {
	return &PrimitiveArrayBuilder[T]{data: make([]T, 0, capacity)}
}

func (b *PrimitiveArrayBuilder[T]) TypeID() types.TypeID {
	var zero T
	return zero.TypeID()
}

func (b *PrimitiveArrayBuilder[T]) Len() int {
	return len(b.data)
}

func (b *PrimitiveArrayBuilder[T]) Push(v T) {
	b.check()
	b.data = append(b.data, v)
}

func (b *PrimitiveArrayBuilder[T]) PushRef(v ScalarRefImpl) error {
	typed, err := RefAs[T](v)
	if err != nil {
		return err
	}
	b.Push(typed)
	return nil
}

func (b *PrimitiveArrayBuilder[T]) Finish() *PrimitiveArray[T] {
	b.seal()
	out := &PrimitiveArray[T]{data: b.data}
	b.data = nil
	return out
}

func (b *PrimitiveArrayBuilder[T]) FinishArray() ArrayImpl {
	return b.Finish()
}

func (b *PrimitiveArrayBuilder[T]) builderImpl() {}
