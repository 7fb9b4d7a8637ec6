package alloc

import "errors"

var (
	// ErrExhausted indicates that the allocation would exceed the byte budget.
	ErrExhausted = errors.New("alloc: budget exhausted")

	// ErrNegative indicates a negative allocation size.
	ErrNegative = errors.New("alloc: negative size")
)
