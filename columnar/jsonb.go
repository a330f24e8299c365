package columnar

import (
	"github.com/pkg/errors"
	"github.com/valyala/fastjson"

	"github.com/datafreelab/datalite/types"
)

// Jsonb is an owned JSON document kept in compact canonical text form.
type Jsonb struct {
	raw []byte
}

// ParseJsonb validates text and compacts it.
func ParseJsonb(text string) (Jsonb, error) {
	var p fastjson.Parser
	v, err := p.Parse(text)
	if err != nil {
		return Jsonb{}, errors.Wrap(err, "couldn't parse jsonb")
	}
	return Jsonb{raw: v.MarshalTo(nil)}, nil
}

func MustParseJsonb(text string) Jsonb {
	out, err := ParseJsonb(text)
	if err != nil {
		panic(err)
	}
	return out
}

func (Jsonb) TypeID() types.TypeID         { return types.TypeIDJsonb }
func (v Jsonb) String() string             { return string(v.raw) }
func (v Jsonb) AsRef() JsonbRef            { return JsonbRef{raw: v.raw} }
func (v Jsonb) AsScalarRef() ScalarRefImpl { return v.AsRef() }
func (Jsonb) scalarImpl()                  {}

// JsonbRef is a view of a document stored in a JsonbArray.
type JsonbRef struct {
	raw []byte
}

func (JsonbRef) TypeID() types.TypeID { return types.TypeIDJsonb }
func (v JsonbRef) String() string     { return string(v.raw) }

func (v JsonbRef) ToOwned() Jsonb {
	raw := make([]byte, len(v.raw))
	copy(raw, v.raw)
	return Jsonb{raw: raw}
}

func (v JsonbRef) ToScalar() ScalarImpl { return v.ToOwned() }
func (JsonbRef) scalarRefImpl()         {}

// Bytes returns the canonical text. It must not be modified.
func (v JsonbRef) Bytes() []byte {
	return v.raw
}

// Value parses the document for inspection.
func (v JsonbRef) Value() (*fastjson.Value, error) {
	return fastjson.ParseBytes(v.raw)
}

// JsonbArray is a column of JSON documents.
type JsonbArray struct {
	varlen
}

func (*JsonbArray) TypeID() types.TypeID { return types.TypeIDJsonb }

func (a *JsonbArray) Get(i int) (JsonbRef, bool) {
	v, ok := a.at(i)
	return JsonbRef{raw: v}, ok
}

func (a *JsonbArray) Builder(capacity int) *JsonbArrayBuilder {
	return NewJsonbArrayBuilder(capacity)
}

func (a *JsonbArray) Clone() *JsonbArray {
	return &JsonbArray{varlen: a.clone()}
}

func (a *JsonbArray) String() string {
	return formatArray[JsonbRef](a)
}

func (a *JsonbArray) erase() DynArray {
	return dynArray[JsonbRef, *JsonbArray, *JsonbArrayBuilder]{arr: a}
}

type JsonbArrayBuilder struct {
	varlen
	sealed

	parser fastjson.Parser
}

func NewJsonbArrayBuilder(capacity int) *JsonbArrayBuilder {
	return &JsonbArrayBuilder{varlen: newVarlen(capacity)}
}

func (*JsonbArrayBuilder) TypeID() types.TypeID { return types.TypeIDJsonb }

func (b *JsonbArrayBuilder) Push(v JsonbRef) {
	b.check()
	b.push(v.raw)
}

// PushJSON validates text and appends it in canonical form.
func (b *JsonbArrayBuilder) PushJSON(text string) error {
	b.check()
	v, err := b.parser.Parse(text)
	if err != nil {
		return errors.Wrap(err, "couldn't parse jsonb")
	}
	b.data = v.MarshalTo(b.data)
	b.offsets = append(b.offsets, len(b.data))
	return nil
}

func (b *JsonbArrayBuilder) PushRef(v ScalarRefImpl) error {
	typed, err := RefAs[JsonbRef](v)
	if err != nil {
		return err
	}
	b.Push(typed)
	return nil
}

func (b *JsonbArrayBuilder) Finish() *JsonbArray {
	b.seal()
	return &JsonbArray{varlen: b.take()}
}

func (b *JsonbArrayBuilder) FinishArray() ArrayImpl {
	return b.Finish()
}

func (b *JsonbArrayBuilder) builderImpl() {}
