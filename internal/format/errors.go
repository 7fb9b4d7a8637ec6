package format

import "errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrEmbeddedNUL indicates a string that cannot be stored because it
	// contains a NUL code unit.
	ErrEmbeddedNUL = errors.New("format: string contains NUL")
)
