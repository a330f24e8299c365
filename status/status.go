package status

import (
	"fmt"

	"github.com/pkg/errors"
)

// Status is the error-status code attached to failures crossing package boundaries.
type Status int32

const (
	OK              Status = 0x0000_0000
	Unknown         Status = 0x0000_0001
	InvalidArgument Status = 0x0000_0002
	Internal        Status = 0x0000_0003
	ParseDataType   Status = 0x0001_0001
	InvalidMapKey   Status = 0x0001_0002
	TypeMismatch    Status = 0x0001_0003
)

type statusInfo struct {
	name      string
	retryable bool
}

var statuses = map[Status]statusInfo{
	OK:              {name: "OK", retryable: true},
	Unknown:         {name: "ErrUnknown"},
	InvalidArgument: {name: "ErrInvalidArgument"},
	Internal:        {name: "ErrInternal"},
	ParseDataType:   {name: "ErrParseDataType"},
	InvalidMapKey:   {name: "ErrInvalidMapKey"},
	TypeMismatch:    {name: "ErrTypeMismatch"},
}

func (s Status) Code() int32 {
	return int32(s)
}

func (s Status) Name() string {
	if info, ok := statuses[s]; ok {
		return info.name
	}
	return "<unknown status>"
}

func (s Status) IsSuccess() bool {
	return s == OK
}

func (s Status) IsRetryable() bool {
	return statuses[s].retryable
}

func (s Status) String() string {
	return fmt.Sprintf("Status:{%x,%s}", int32(s), s.Name())
}

// Carrier is implemented by errors which know their own status.
type Carrier interface {
	error
	Status() Status
}

// Of returns the status of the first error in err's chain which carries one.
// A nil error is OK, any other error without a status is Unknown.
func Of(err error) Status {
	if err == nil {
		return OK
	}
	var carrier Carrier
	if errors.As(err, &carrier) {
		return carrier.Status()
	}
	return Unknown
}

// Error is a plain message error with an explicit status.
type Error struct {
	status  Status
	message string
}

func Errorf(status Status, format string, args ...interface{}) error {
	return errors.WithStack(&Error{
		status:  status,
		message: fmt.Sprintf(format, args...),
	})
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.status.Name(), e.message)
}

func (e *Error) Status() Status {
	return e.status
}
