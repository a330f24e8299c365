package columnar

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/datafreelab/datalite/types"
)

// ArrayImpl is an immutable column of values of one registered kind.
//
//go-sumtype:decl ArrayImpl
type ArrayImpl interface {
	TypeID() types.TypeID
	Len() int
	IsEmpty() bool
	fmt.Stringer
	erase() DynArray
}

// Array is a column whose elements are read as R.
type Array[R ScalarRefImpl] interface {
	ArrayImpl
	// Get returns the element at index i, or false if i is out of range.
	Get(i int) (R, bool)
}

// ArrayBuilderImpl accumulates values into a new array of one registered kind.
// Finishing a builder seals it, any later use panics.
//
//go-sumtype:decl ArrayBuilderImpl
type ArrayBuilderImpl interface {
	TypeID() types.TypeID
	// Len returns the number of values pushed so far.
	Len() int
	// PushRef appends a value of any kind, failing with a TypeMismatchError
	// if its kind isn't the builder's.
	PushRef(v ScalarRefImpl) error
	FinishArray() ArrayImpl
	builderImpl()
}

// ArrayBuilder is a builder accepting R and producing A.
type ArrayBuilder[R ScalarRefImpl, A ArrayImpl] interface {
	ArrayBuilderImpl
	Push(v R)
	Finish() A
}

// ArrayAs extracts the concrete array of type A.
func ArrayAs[A ArrayImpl](a ArrayImpl) (A, error) {
	typed, ok := a.(A)
	if !ok {
		var zero A
		return zero, mismatch(zero.TypeID(), typeIDOf(a))
	}
	return typed, nil
}

// BuilderAs extracts the concrete builder of type B.
func BuilderAs[B ArrayBuilderImpl](b ArrayBuilderImpl) (B, error) {
	typed, ok := b.(B)
	if !ok {
		var zero B
		return zero, mismatch(zero.TypeID(), typeIDOf(b))
	}
	return typed, nil
}

// CollectRefs returns views of all elements of an array.
func CollectRefs[R ScalarRefImpl](a Array[R]) []R {
	out := make([]R, 0, a.Len())
	for i := 0; i < a.Len(); i++ {
		v, _ := a.Get(i)
		out = append(out, v)
	}
	return out
}

// Collect copies all elements of an array into owned values.
func Collect(a ArrayImpl) []ScalarImpl {
	d := a.erase()
	out := make([]ScalarImpl, 0, d.Len())
	for i := 0; i < d.Len(); i++ {
		v, _ := d.Get(i)
		out = append(out, v.ToScalar())
	}
	return out
}

// FromSlice builds an array of data type dt holding values.
func FromSlice(dt types.DataType, values ...ScalarRefImpl) (ArrayImpl, error) {
	b, err := NewBuilder(dt, len(values))
	if err != nil {
		return nil, err
	}
	for i, v := range values {
		if err := b.PushRef(v); err != nil {
			return nil, errors.Wrapf(err, "couldn't push value %d", i)
		}
	}
	return b.FinishArray(), nil
}

// sealed tracks whether a builder has been finished.
type sealed bool

func (s *sealed) check() {
	if *s {
		panic("array builder used after Finish")
	}
}

func (s *sealed) seal() {
	s.check()
	*s = true
}

func formatArray[R ScalarRefImpl](a Array[R]) string {
	var sb strings.Builder
	sb.WriteString("[")
	for i := 0; i < a.Len(); i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		v, _ := a.Get(i)
		sb.WriteString(v.String())
	}
	sb.WriteString("]")
	return sb.String()
}
