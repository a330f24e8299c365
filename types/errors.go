package types

import (
	"fmt"

	"github.com/datafreelab/datalite/status"
)

// ParseDataTypeError is returned when text doesn't match the data type grammar.
type ParseDataTypeError struct {
	From string

	reason string
}

func (e *ParseDataTypeError) Error() string {
	if e.reason == "" {
		return fmt.Sprintf("couldn't parse data type '%s'", e.From)
	}
	return fmt.Sprintf("couldn't parse data type '%s': %s", e.From, e.reason)
}

func (e *ParseDataTypeError) Status() status.Status {
	return status.ParseDataType
}

// InvalidMapKeyError is returned for a well-formed map type whose key type
// is a map, list, jsonb or null.
type InvalidMapKeyError struct {
	From string
}

func (e *InvalidMapKeyError) Error() string {
	return fmt.Sprintf("invalid map key type in '%s': key can't be map, list, jsonb or null", e.From)
}

func (e *InvalidMapKeyError) Status() status.Status {
	return status.InvalidMapKey
}
