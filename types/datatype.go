package types

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
)

type Kind int

const (
	KindNull Kind = iota
	KindNothing
	KindBoolean
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUInt8
	KindUInt16
	KindUInt32
	KindUInt64
	KindFloat32
	KindFloat64
	KindDecimal
	KindChar
	KindVarchar
	KindDate
	KindTimestamp
	KindBytea
	KindJsonb
	KindList
	KindMap
	KindNullable
)

// DataType describes the declared type of a column. Only the struct field
// matching Kind is meaningful. DataType values are immutable once built;
// composite children are shared, never mutated.
type DataType struct {
	Kind    Kind
	Char    struct{ Width uint16 }
	Decimal struct {
		Scale     uint16
		Precision uint16
	}
	List struct {
		Item *DataType
	}
	Map struct {
		Key   *DataType
		Value *DataType
	}
	Nullable struct {
		Inner *DataType
	}
}

var (
	Null      DataType = DataType{Kind: KindNull}
	Nothing   DataType = DataType{Kind: KindNothing}
	Boolean   DataType = DataType{Kind: KindBoolean}
	Int8      DataType = DataType{Kind: KindInt8}
	Int16     DataType = DataType{Kind: KindInt16}
	Int32     DataType = DataType{Kind: KindInt32}
	Int64     DataType = DataType{Kind: KindInt64}
	UInt8     DataType = DataType{Kind: KindUInt8}
	UInt16    DataType = DataType{Kind: KindUInt16}
	UInt32    DataType = DataType{Kind: KindUInt32}
	UInt64    DataType = DataType{Kind: KindUInt64}
	Float32   DataType = DataType{Kind: KindFloat32}
	Float64   DataType = DataType{Kind: KindFloat64}
	Varchar   DataType = DataType{Kind: KindVarchar}
	Date      DataType = DataType{Kind: KindDate}
	Timestamp DataType = DataType{Kind: KindTimestamp}
	Bytea     DataType = DataType{Kind: KindBytea}
	Jsonb     DataType = DataType{Kind: KindJsonb}
)

func Char(width uint16) DataType {
	out := DataType{Kind: KindChar}
	out.Char.Width = width
	return out
}

func Decimal(scale, precision uint16) DataType {
	out := DataType{Kind: KindDecimal}
	out.Decimal.Scale = scale
	out.Decimal.Precision = precision
	return out
}

func List(item DataType) DataType {
	out := DataType{Kind: KindList}
	out.List.Item = &item
	return out
}

// Map builds a map type without checking the key restriction, use Validate for that.
func Map(key, value DataType) DataType {
	out := DataType{Kind: KindMap}
	out.Map.Key = &key
	out.Map.Value = &value
	return out
}

func Nullable(inner DataType) DataType {
	out := DataType{Kind: KindNullable}
	out.Nullable.Inner = &inner
	return out
}

// keywords holds the canonical spelling of every leaf kind without parameters.
var keywords = map[Kind]string{
	KindNull:      "null",
	KindNothing:   "nothing",
	KindBoolean:   "bool",
	KindInt8:      "tinyint",
	KindInt16:     "smallint",
	KindInt32:     "int",
	KindInt64:     "bigint",
	KindUInt8:     "tinyint unsigned",
	KindUInt16:    "smallint unsigned",
	KindUInt32:    "int unsigned",
	KindUInt64:    "bigint unsigned",
	KindFloat32:   "float",
	KindFloat64:   "double",
	KindVarchar:   "varchar",
	KindDate:      "date",
	KindTimestamp: "timestamp",
	KindBytea:     "bytea",
	KindJsonb:     "jsonb",
}

// String renders the canonical text form, which Parse accepts back.
func (t DataType) String() string {
	if keyword, ok := keywords[t.Kind]; ok {
		return keyword
	}
	switch t.Kind {
	case KindChar:
		return fmt.Sprintf("char(%d)", t.Char.Width)
	case KindDecimal:
		return fmt.Sprintf("decimal(%d,%d)", t.Decimal.Scale, t.Decimal.Precision)
	case KindList:
		return fmt.Sprintf("list<%s>", *t.List.Item)
	case KindMap:
		return fmt.Sprintf("map<%s,%s>", *t.Map.Key, *t.Map.Value)
	case KindNullable:
		return fmt.Sprintf("nullable<%s>", *t.Nullable.Inner)
	}
	panic("impossible, type switch bug")
}

// Equal compares two data types structurally.
func (t DataType) Equal(other DataType) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case KindChar:
		return t.Char.Width == other.Char.Width
	case KindDecimal:
		return t.Decimal == other.Decimal
	case KindList:
		return t.List.Item.Equal(*other.List.Item)
	case KindMap:
		return t.Map.Key.Equal(*other.Map.Key) && t.Map.Value.Equal(*other.Map.Value)
	case KindNullable:
		return t.Nullable.Inner.Equal(*other.Nullable.Inner)
	default:
		return true
	}
}

// Hash returns a structural hash, equal data types hash equally.
func (t DataType) Hash() uint64 {
	return xxhash.Sum64String(t.String())
}

// Validate checks the map key restriction on every map nested in t.
func (t DataType) Validate() error {
	if !t.validMapKeys() {
		return errors.WithStack(&InvalidMapKeyError{From: t.String()})
	}
	return nil
}

func (t DataType) validMapKeys() bool {
	switch t.Kind {
	case KindList:
		return t.List.Item.validMapKeys()
	case KindNullable:
		return t.Nullable.Inner.validMapKeys()
	case KindMap:
		key := t.Map.Key
		for key.Kind == KindNullable {
			key = key.Nullable.Inner
		}
		switch key.Kind {
		case KindMap, KindList, KindJsonb, KindNull:
			return false
		}
		return t.Map.Key.validMapKeys() && t.Map.Value.validMapKeys()
	default:
		return true
	}
}

// TypeID returns the array kind which stores values of this data type.
// Null and Nothing have no array kind. Nullable is stored as its inner type,
// nullability is tracked above the array layer.
func (t DataType) TypeID() (TypeID, bool) {
	switch t.Kind {
	case KindBoolean:
		return TypeIDBool, true
	case KindInt8:
		return TypeIDInt8, true
	case KindInt16:
		return TypeIDInt16, true
	case KindInt32:
		return TypeIDInt32, true
	case KindInt64:
		return TypeIDInt64, true
	case KindUInt8:
		return TypeIDUInt8, true
	case KindUInt16:
		return TypeIDUInt16, true
	case KindUInt32:
		return TypeIDUInt32, true
	case KindUInt64:
		return TypeIDUInt64, true
	case KindFloat32:
		return TypeIDFloat32, true
	case KindFloat64:
		return TypeIDFloat64, true
	case KindDecimal:
		return TypeIDDecimal, true
	case KindChar, KindVarchar:
		return TypeIDString, true
	case KindDate:
		return TypeIDDate, true
	case KindTimestamp:
		return TypeIDTimestamp, true
	case KindBytea:
		return TypeIDBytes, true
	case KindJsonb:
		return TypeIDJsonb, true
	case KindList:
		return TypeIDList, true
	case KindMap:
		return TypeIDMap, true
	case KindNullable:
		return t.Nullable.Inner.TypeID()
	default:
		return TypeIDInvalid, false
	}
}

func (t DataType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *DataType) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
