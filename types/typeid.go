package types

import "fmt"

// TypeID is the runtime tag of a concrete columnar element kind.
// Every array, builder and scalar reports exactly one TypeID.
type TypeID int

const (
	TypeIDInvalid TypeID = iota
	TypeIDBool
	TypeIDInt8
	TypeIDInt16
	TypeIDInt32
	TypeIDInt64
	TypeIDUInt8
	TypeIDUInt16
	TypeIDUInt32
	TypeIDUInt64
	TypeIDFloat32
	TypeIDFloat64
	TypeIDDecimal
	TypeIDDate
	TypeIDTimestamp
	TypeIDString
	TypeIDBytes
	TypeIDJsonb
	TypeIDList
	TypeIDMap

	typeIDCount
)

// NumTypeIDs is the number of valid (non-invalid) type tags.
const NumTypeIDs = int(typeIDCount) - 1

var typeIDName = [typeIDCount]string{
	TypeIDInvalid:   "invalid",
	TypeIDBool:      "bool",
	TypeIDInt8:      "int8",
	TypeIDInt16:     "int16",
	TypeIDInt32:     "int32",
	TypeIDInt64:     "int64",
	TypeIDUInt8:     "uint8",
	TypeIDUInt16:    "uint16",
	TypeIDUInt32:    "uint32",
	TypeIDUInt64:    "uint64",
	TypeIDFloat32:   "float32",
	TypeIDFloat64:   "float64",
	TypeIDDecimal:   "decimal",
	TypeIDDate:      "date",
	TypeIDTimestamp: "timestamp",
	TypeIDString:    "string",
	TypeIDBytes:     "bytes",
	TypeIDJsonb:     "jsonb",
	TypeIDList:      "list",
	TypeIDMap:       "map",
}

// String returns the canonical lowercase name of the type tag.
func (id TypeID) String() string {
	if id < 0 || id >= typeIDCount {
		return fmt.Sprintf("TypeID(%d)", int(id))
	}
	return typeIDName[id]
}

func (id TypeID) Valid() bool {
	return id > TypeIDInvalid && id < typeIDCount
}

// AllTypeIDs returns every valid type tag in tag order.
func AllTypeIDs() []TypeID {
	out := make([]TypeID, 0, NumTypeIDs)
	for id := TypeIDInvalid + 1; id < typeIDCount; id++ {
		out = append(out, id)
	}
	return out
}
