package columnar

import (
	"encoding/hex"
	"strconv"

	"github.com/datafreelab/datalite/types"
)

// String is an owned UTF-8 text value.
type String string

func (String) TypeID() types.TypeID         { return types.TypeIDString }
func (v String) String() string             { return strconv.Quote(string(v)) }
func (v String) AsRef() StringRef           { return StringRef(v) }
func (v String) AsScalarRef() ScalarRefImpl { return v.AsRef() }
func (String) scalarImpl()                  {}

// StringRef is a view of text stored in a StringArray. It must not be modified.
type StringRef []byte

func (StringRef) TypeID() types.TypeID   { return types.TypeIDString }
func (v StringRef) String() string       { return strconv.Quote(string(v)) }
func (v StringRef) ToOwned() String      { return String(v) }
func (v StringRef) ToScalar() ScalarImpl { return v.ToOwned() }
func (StringRef) scalarRefImpl()         {}

// StringArray is a column of text values.
type StringArray struct {
	varlen
}

// StringArrayOf builds an array holding the given values.
func StringArrayOf(values ...string) *StringArray {
	b := NewStringArrayBuilder(len(values))
	for _, v := range values {
		b.PushString(v)
	}
	return b.Finish()
}

func (*StringArray) TypeID() types.TypeID { return types.TypeIDString }

func (a *StringArray) Get(i int) (StringRef, bool) {
	v, ok := a.at(i)
	return StringRef(v), ok
}

// GetString returns a copy of value i.
func (a *StringArray) GetString(i int) (string, bool) {
	v, ok := a.at(i)
	return string(v), ok
}

func (a *StringArray) Builder(capacity int) *StringArrayBuilder {
	return NewStringArrayBuilder(capacity)
}

func (a *StringArray) Clone() *StringArray {
	return &StringArray{varlen: a.clone()}
}

func (a *StringArray) String() string {
	return formatArray[StringRef](a)
}

func (a *StringArray) erase() DynArray {
	return dynArray[StringRef, *StringArray, *StringArrayBuilder]{arr: a}
}

type StringArrayBuilder struct {
	varlen
	sealed
}

func NewStringArrayBuilder(capacity int) *StringArrayBuilder {
	return &StringArrayBuilder{varlen: newVarlen(capacity)}
}

func (*StringArrayBuilder) TypeID() types.TypeID { return types.TypeIDString }

func (b *StringArrayBuilder) Push(v StringRef) {
	b.check()
	b.push(v)
}

func (b *StringArrayBuilder) PushString(v string) {
	b.check()
	b.pushString(v)
}

func (b *StringArrayBuilder) PushRef(v ScalarRefImpl) error {
	typed, err := RefAs[StringRef](v)
	if err != nil {
		return err
	}
	b.Push(typed)
	return nil
}

func (b *StringArrayBuilder) Finish() *StringArray {
	b.seal()
	return &StringArray{varlen: b.take()}
}

func (b *StringArrayBuilder) FinishArray() ArrayImpl {
	return b.Finish()
}

func (b *StringArrayBuilder) builderImpl() {}

// Bytes is an owned binary value.
type Bytes []byte

func (Bytes) TypeID() types.TypeID         { return types.TypeIDBytes }
func (v Bytes) String() string             { return formatBytes(v) }
func (v Bytes) AsRef() BytesRef            { return BytesRef(v) }
func (v Bytes) AsScalarRef() ScalarRefImpl { return v.AsRef() }
func (Bytes) scalarImpl()                  {}

// BytesRef is a view of a value stored in a BytesArray. It must not be modified.
type BytesRef []byte

func (BytesRef) TypeID() types.TypeID { return types.TypeIDBytes }
func (v BytesRef) String() string     { return formatBytes(v) }

func (v BytesRef) ToOwned() Bytes {
	out := make(Bytes, len(v))
	copy(out, v)
	return out
}

func (v BytesRef) ToScalar() ScalarImpl { return v.ToOwned() }
func (BytesRef) scalarRefImpl()         {}

// formatBytes uses the Postgres hex format.
func formatBytes(v []byte) string {
	return `\x` + hex.EncodeToString(v)
}

// BytesArray is a column of binary values.
type BytesArray struct {
	varlen
}

// BytesArrayOf builds an array holding the given values.
func BytesArrayOf(values ...[]byte) *BytesArray {
	b := NewBytesArrayBuilder(len(values))
	for _, v := range values {
		b.PushBytes(v)
	}
	return b.Finish()
}

func (*BytesArray) TypeID() types.TypeID { return types.TypeIDBytes }

func (a *BytesArray) Get(i int) (BytesRef, bool) {
	v, ok := a.at(i)
	return BytesRef(v), ok
}

func (a *BytesArray) Builder(capacity int) *BytesArrayBuilder {
	return NewBytesArrayBuilder(capacity)
}

func (a *BytesArray) Clone() *BytesArray {
	return &BytesArray{varlen: a.clone()}
}

func (a *BytesArray) String() string {
	return formatArray[BytesRef](a)
}

func (a *BytesArray) erase() DynArray {
	return dynArray[BytesRef, *BytesArray, *BytesArrayBuilder]{arr: a}
}

type BytesArrayBuilder struct {
	varlen
	sealed
}

func NewBytesArrayBuilder(capacity int) *BytesArrayBuilder {
	return &BytesArrayBuilder{varlen: newVarlen(capacity)}
}

func (*BytesArrayBuilder) TypeID() types.TypeID { return types.TypeIDBytes }

func (b *BytesArrayBuilder) Push(v BytesRef) {
	b.check()
	b.push(v)
}

func (b *BytesArrayBuilder) PushBytes(v []byte) {
	b.check()
	b.push(v)
}

func (b *BytesArrayBuilder) PushRef(v ScalarRefImpl) error {
	typed, err := RefAs[BytesRef](v)
	if err != nil {
		return err
	}
	b.Push(typed)
	return nil
}

func (b *BytesArrayBuilder) Finish() *BytesArray {
	b.seal()
	return &BytesArray{varlen: b.take()}
}

func (b *BytesArrayBuilder) FinishArray() ArrayImpl {
	return b.Finish()
}

func (b *BytesArrayBuilder) builderImpl() {}
