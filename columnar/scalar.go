package columnar

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/datafreelab/datalite/status"
	"github.com/datafreelab/datalite/types"
)

// ScalarImpl is an owned value of any registered kind.
// The set of implementations is closed: one per registry entry.
//
//go-sumtype:decl ScalarImpl
type ScalarImpl interface {
	TypeID() types.TypeID
	fmt.Stringer
	// AsScalarRef borrows the value without knowing its concrete kind.
	AsScalarRef() ScalarRefImpl
	scalarImpl()
}

// ScalarRefImpl is a borrowed view of a value of any registered kind.
// Views of variable-length kinds point into the array they were read from.
//
//go-sumtype:decl ScalarRefImpl
type ScalarRefImpl interface {
	TypeID() types.TypeID
	fmt.Stringer
	// ToScalar copies the view into an owned value.
	ToScalar() ScalarImpl
	scalarRefImpl()
}

// Scalar is an owned value whose borrowed form is R.
type Scalar[R ScalarRefImpl] interface {
	ScalarImpl
	AsRef() R
}

// ScalarRef is a borrowed value whose owned form is S.
type ScalarRef[S ScalarImpl] interface {
	ScalarRefImpl
	ToOwned() S
}

// TypeMismatchError is returned when a value of one kind is requested as another.
type TypeMismatchError struct {
	Expect types.TypeID
	Get    types.TypeID
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: expect %s, get %s", e.Expect, e.Get)
}

func (e *TypeMismatchError) Status() status.Status {
	return status.TypeMismatch
}

func mismatch(expect, get types.TypeID) error {
	return errors.WithStack(&TypeMismatchError{Expect: expect, Get: get})
}

func typeIDOf[T interface{ TypeID() types.TypeID }](v T) types.TypeID {
	if any(v) == nil {
		return types.TypeIDInvalid
	}
	return v.TypeID()
}

// ScalarAs extracts the concrete owned value of kind S.
func ScalarAs[S ScalarImpl](v ScalarImpl) (S, error) {
	typed, ok := v.(S)
	if !ok {
		var zero S
		return zero, mismatch(zero.TypeID(), typeIDOf(v))
	}
	return typed, nil
}

// RefAs extracts the concrete borrowed value of kind R.
func RefAs[R ScalarRefImpl](v ScalarRefImpl) (R, error) {
	typed, ok := v.(R)
	if !ok {
		var zero R
		return zero, mismatch(zero.TypeID(), typeIDOf(v))
	}
	return typed, nil
}

var (
	_ Scalar[Bool]      = Bool(false)
	_ ScalarRef[Bool]   = Bool(false)
	_ Scalar[Decimal]   = Decimal{}
	_ Scalar[Timestamp] = Timestamp{}
	_ Scalar[StringRef] = String("")
	_ ScalarRef[String] = StringRef(nil)
	_ Scalar[BytesRef]  = Bytes(nil)
	_ ScalarRef[Bytes]  = BytesRef(nil)
	_ Scalar[JsonbRef]  = Jsonb{}
	_ ScalarRef[Jsonb]  = JsonbRef{}
	_ Scalar[ListRef]   = List{}
	_ ScalarRef[List]   = ListRef{}
	_ Scalar[MapRef]    = Map{}
	_ ScalarRef[Map]    = MapRef{}
)
