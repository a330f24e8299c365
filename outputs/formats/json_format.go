package formats

import (
	"encoding/base64"
	"io"
	"math"

	"github.com/pkg/errors"
	"github.com/valyala/fastjson"

	"github.com/datafreelab/datalite/columnar"
	"github.com/datafreelab/datalite/schema"
)

// JSONFormatter writes one object per row, keyed by field name.
type JSONFormatter struct {
	buf    []byte
	arena  *fastjson.Arena
	w      io.Writer
	fields []schema.Field
}

func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{
		buf:   make([]byte, 0, 1024),
		arena: new(fastjson.Arena),
		w:     w,
	}
}

func (t *JSONFormatter) SetSchema(s schema.Schema) {
	t.fields = s.Fields
}

func (t *JSONFormatter) Write(values []columnar.ScalarRefImpl) error {
	obj := t.arena.NewObject()
	for i := range t.fields {
		v, err := ValueToJson(t.arena, values[i])
		if err != nil {
			return errors.Wrapf(err, "field '%s'", t.fields[i].Name)
		}
		obj.Set(t.fields[i].Name, v)
	}

	t.buf = obj.MarshalTo(t.buf)
	t.buf = append(t.buf, '\n')
	_, err := t.w.Write(t.buf)
	t.buf = t.buf[:0]
	t.arena.Reset()
	return err
}

// ValueToJson converts a value into a JSON value allocated in arena.
// Numbers keep their exact text, non-finite floats become strings and
// binary data is base64 encoded. Maps become objects keyed by the
// text of their keys.
func ValueToJson(arena *fastjson.Arena, value columnar.ScalarRefImpl) (*fastjson.Value, error) {
	switch value := value.(type) {
	case columnar.Bool:
		if value {
			return arena.NewTrue(), nil
		}
		return arena.NewFalse(), nil
	case columnar.Int8, columnar.Int16, columnar.Int32, columnar.Int64,
		columnar.UInt8, columnar.UInt16, columnar.UInt32, columnar.UInt64:
		return arena.NewNumberString(value.String()), nil
	case columnar.Float32:
		return floatToJson(arena, float64(value), value.String()), nil
	case columnar.Float64:
		return floatToJson(arena, float64(value), value.String()), nil
	case columnar.Decimal:
		return arena.NewNumberString(value.String()), nil
	case columnar.Date, columnar.Timestamp:
		return arena.NewString(value.String()), nil
	case columnar.StringRef:
		return arena.NewString(string(value)), nil
	case columnar.BytesRef:
		return arena.NewString(base64.StdEncoding.EncodeToString(value)), nil
	case columnar.JsonbRef:
		return value.Value()
	case columnar.ListRef:
		arr := arena.NewArray()
		for i := 0; i < value.Len(); i++ {
			item, _ := value.Get(i)
			v, err := ValueToJson(arena, item)
			if err != nil {
				return nil, err
			}
			arr.SetArrayItem(i, v)
		}
		return arr, nil
	case columnar.MapRef:
		obj := arena.NewObject()
		for i := 0; i < value.Len(); i++ {
			key, val, _ := value.Entry(i)
			v, err := ValueToJson(arena, val)
			if err != nil {
				return nil, err
			}
			obj.Set(rawText(key), v)
		}
		return obj, nil
	}
	panic("impossible, type switch bug")
}

func floatToJson(arena *fastjson.Arena, f float64, text string) *fastjson.Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return arena.NewString(text)
	}
	return arena.NewNumberString(text)
}

func (t *JSONFormatter) Close() error {
	return nil
}
