package types

import (
	"errors"
	"fmt"
)

// Status is a store-level completion code. The values follow the NTSTATUS
// codes returned by the native registry primitives so backends can pass them
// through unchanged.
//
// A non-success Status is also an error, which lets store primitives return
// it directly.
type Status uint32

const (
	StatusSuccess               Status = 0x00000000
	StatusBufferOverflow        Status = 0x80000005 // warning: partial data returned
	StatusNoMoreEntries         Status = 0x8000001A
	StatusUnsuccessful          Status = 0xC0000001
	StatusInvalidHandle         Status = 0xC0000008
	StatusInvalidParameter      Status = 0xC000000D
	StatusAccessDenied          Status = 0xC0000022
	StatusBufferTooSmall        Status = 0xC0000023
	StatusObjectNameInvalid     Status = 0xC0000033
	StatusObjectNameNotFound    Status = 0xC0000034
	StatusObjectNameCollision   Status = 0xC0000035
	StatusInsufficientResources Status = 0xC000009A
	StatusKeyDeleted            Status = 0xC000017C
	StatusCannotDelete          Status = 0xC0000121
)

var statusNames = map[Status]string{
	StatusSuccess:               "STATUS_SUCCESS",
	StatusBufferOverflow:        "STATUS_BUFFER_OVERFLOW",
	StatusNoMoreEntries:         "STATUS_NO_MORE_ENTRIES",
	StatusUnsuccessful:          "STATUS_UNSUCCESSFUL",
	StatusInvalidHandle:         "STATUS_INVALID_HANDLE",
	StatusInvalidParameter:      "STATUS_INVALID_PARAMETER",
	StatusAccessDenied:          "STATUS_ACCESS_DENIED",
	StatusBufferTooSmall:        "STATUS_BUFFER_TOO_SMALL",
	StatusObjectNameInvalid:     "STATUS_OBJECT_NAME_INVALID",
	StatusObjectNameNotFound:    "STATUS_OBJECT_NAME_NOT_FOUND",
	StatusObjectNameCollision:   "STATUS_OBJECT_NAME_COLLISION",
	StatusInsufficientResources: "STATUS_INSUFFICIENT_RESOURCES",
	StatusKeyDeleted:            "STATUS_KEY_DELETED",
	StatusCannotDelete:          "STATUS_CANNOT_DELETE",
}

// String returns the symbolic name, or the hex code for unknown values.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("0x%08X", uint32(s))
}

func (s Status) Error() string { return s.String() }

// IsSuccess reports whether s is a success or informational code. Warning codes
// (0x8xxxxxxx) such as StatusBufferOverflow are not success.
func (s Status) IsSuccess() bool {
	return s>>31 == 0
}

// SizeReported reports whether a sizing call with status s yielded a usable
// required length: success, buffer overflow and buffer too small all do.
func (s Status) SizeReported() bool {
	return s == StatusSuccess || s == StatusBufferOverflow || s == StatusBufferTooSmall
}

// AsStatus converts an error returned by a store primitive into a Status.
// nil maps to StatusSuccess; errors that are not a Status map to
// StatusUnsuccessful.
func AsStatus(err error) Status {
	if err == nil {
		return StatusSuccess
	}
	var s Status
	if errors.As(err, &s) {
		return s
	}
	var e *Error
	if errors.As(err, &e) && e.Status != StatusSuccess {
		return e.Status
	}
	return StatusUnsuccessful
}
