package columnar

import (
	"bytes"
	"cmp"
)

// CompareRefs orders two values. Values of different kinds are ordered by
// their kind tag. Lists and maps compare element-wise, shorter first on a tie.
// NaN equals NaN and sorts before every other float.
func CompareRefs(a, b ScalarRefImpl) int {
	if a.TypeID() != b.TypeID() {
		return cmp.Compare(a.TypeID(), b.TypeID())
	}
	switch a := a.(type) {
	case Bool:
		return compareBool(a, b.(Bool))
	case Int8:
		return cmp.Compare(a, b.(Int8))
	case Int16:
		return cmp.Compare(a, b.(Int16))
	case Int32:
		return cmp.Compare(a, b.(Int32))
	case Int64:
		return cmp.Compare(a, b.(Int64))
	case UInt8:
		return cmp.Compare(a, b.(UInt8))
	case UInt16:
		return cmp.Compare(a, b.(UInt16))
	case UInt32:
		return cmp.Compare(a, b.(UInt32))
	case UInt64:
		return cmp.Compare(a, b.(UInt64))
	case Float32:
		return cmp.Compare(a, b.(Float32))
	case Float64:
		return cmp.Compare(a, b.(Float64))
	case Decimal:
		return a.Cmp(b.(Decimal).Decimal)
	case Date:
		return cmp.Compare(a, b.(Date))
	case Timestamp:
		b := b.(Timestamp)
		if a.Unit == b.Unit {
			return cmp.Compare(a.Value, b.Value)
		}
		return a.Time().Compare(b.Time())
	case StringRef:
		return bytes.Compare(a, b.(StringRef))
	case BytesRef:
		return bytes.Compare(a, b.(BytesRef))
	case JsonbRef:
		return bytes.Compare(a.raw, b.(JsonbRef).raw)
	case ListRef:
		b := b.(ListRef)
		for i := 0; i < a.Len() && i < b.Len(); i++ {
			x, _ := a.Get(i)
			y, _ := b.Get(i)
			if c := CompareRefs(x, y); c != 0 {
				return c
			}
		}
		return cmp.Compare(a.Len(), b.Len())
	case MapRef:
		b := b.(MapRef)
		for i := 0; i < a.Len() && i < b.Len(); i++ {
			ak, av, _ := a.Entry(i)
			bk, bv, _ := b.Entry(i)
			if c := CompareRefs(ak, bk); c != 0 {
				return c
			}
			if c := CompareRefs(av, bv); c != 0 {
				return c
			}
		}
		return cmp.Compare(a.Len(), b.Len())
	}
	panic("impossible, type switch bug")
}

func compareBool(a, b Bool) int {
	switch {
	case a == b:
		return 0
	case !bool(a):
		return -1
	default:
		return 1
	}
}

// EqualScalars reports whether two owned values hold the same kind and content.
func EqualScalars(a, b ScalarImpl) bool {
	return CompareRefs(a.AsScalarRef(), b.AsScalarRef()) == 0
}
