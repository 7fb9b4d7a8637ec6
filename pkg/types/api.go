package types

import (
	"errors"
	"fmt"
	"strings"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindStore       ErrKind = iota // store rejected a query or write
	ErrKindNotFound                   // missing key/value (soft absence)
	ErrKindResource                   // buffer allocation failed
	ErrKindSize                       // value payload has the wrong size for the decode
	ErrKindFormat                     // store returned a malformed information block
	ErrKindState                      // invalid operation for current state (e.g., closed key)
	ErrKindUnsupported                // backend lacks an optional capability
	ErrKindLimit                      // name or data exceeds configured limits
	ErrKindInvalid                    // malformed caller argument (e.g., embedded NUL)
)

// String returns a short lowercase label for the kind.
func (k ErrKind) String() string {
	switch k {
	case ErrKindStore:
		return "store"
	case ErrKindNotFound:
		return "not found"
	case ErrKindResource:
		return "resource"
	case ErrKindSize:
		return "size mismatch"
	case ErrKindFormat:
		return "format"
	case ErrKindState:
		return "state"
	case ErrKindUnsupported:
		return "unsupported"
	case ErrKindLimit:
		return "limit"
	case ErrKindInvalid:
		return "invalid argument"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is a typed error with the operation context needed to diagnose it.
//
// Op names the access-layer operation ("query value", "enumerate key", ...),
// Name is the value name, key path or subkey index involved, and Status is the
// store status that caused the failure (StatusSuccess when not store-related).
type Error struct {
	Kind   ErrKind
	Op     string
	Name   string
	Status Status
	Msg    string
	Err    error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		if e.Name != "" {
			fmt.Fprintf(&b, " %q", e.Name)
		}
		b.WriteString(": ")
	}
	b.WriteString(e.Msg)
	if e.Status != StatusSuccess {
		fmt.Fprintf(&b, " (status %s)", e.Status)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches sentinel errors by kind, so errors.Is(err, ErrNotFound) holds for
// every not-found error regardless of operation context.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil {
		return false
	}
	if t == e {
		return true
	}
	return t.Op == "" && t.Name == "" && t.Kind == e.Kind
}

// Sentinels commonly returned by implementations.
var (
	// ErrNotFound indicates a missing key or value.
	ErrNotFound = &Error{Kind: ErrKindNotFound, Msg: "not found"}
	// ErrSizeMismatch indicates a value whose payload size does not fit the decode.
	ErrSizeMismatch = &Error{Kind: ErrKindSize, Msg: "value size mismatch"}
	// ErrResource indicates a query buffer could not be allocated.
	ErrResource = &Error{Kind: ErrKindResource, Msg: "insufficient resources"}
	// ErrStore indicates the store rejected an operation.
	ErrStore = &Error{Kind: ErrKindStore, Msg: "store failure"}
	// ErrFormat indicates a malformed information block.
	ErrFormat = &Error{Kind: ErrKindFormat, Msg: "malformed information block"}
	// ErrClosed indicates use of a key after Close.
	ErrClosed = &Error{Kind: ErrKindState, Msg: "key is closed"}
	// ErrUnsupported indicates the backend lacks an optional capability.
	ErrUnsupported = &Error{Kind: ErrKindUnsupported, Msg: "unsupported by store"}
	// ErrLimit indicates a name or payload beyond the configured limits.
	ErrLimit = &Error{Kind: ErrKindLimit, Msg: "limit exceeded"}
	// ErrInvalid indicates a malformed caller argument.
	ErrInvalid = &Error{Kind: ErrKindInvalid, Msg: "invalid argument"}
)

// KindOf reports the ErrKind of err, or false if err carries no *Error.
func KindOf(err error) (ErrKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsNotFound reports whether err is a soft absence.
func IsNotFound(err error) bool {
	k, ok := KindOf(err)
	return ok && k == ErrKindNotFound
}

// -----------------------------------------------------------------------------
// Value Types
// -----------------------------------------------------------------------------

// RegType enumerates registry value types.
// (The numbers align with Windows definitions.)
type RegType uint32

const (
	REG_NONE      RegType = 0
	REG_SZ        RegType = 1
	REG_EXPAND_SZ RegType = 2
	REG_BINARY    RegType = 3
	REG_DWORD     RegType = 4
	REG_DWORD_LE  RegType = 4 // alias for clarity
	REG_DWORD_BE  RegType = 5
	REG_LINK      RegType = 6
	REG_MULTI_SZ  RegType = 7
	REG_QWORD     RegType = 11
)

// String implements the Stringer interface for RegType
func (t RegType) String() string {
	switch t {
	case REG_NONE:
		return "REG_NONE"
	case REG_SZ:
		return "REG_SZ"
	case REG_EXPAND_SZ:
		return "REG_EXPAND_SZ"
	case REG_BINARY:
		return "REG_BINARY"
	case REG_DWORD:
		return "REG_DWORD"
	case REG_DWORD_BE:
		return "REG_DWORD_BE"
	case REG_LINK:
		return "REG_LINK"
	case REG_MULTI_SZ:
		return "REG_MULTI_SZ"
	case REG_QWORD:
		return "REG_QWORD"
	default:
		// Signed, so corrupt type fields read the same as other registry tools show them
		return fmt.Sprintf("UNKNOWN_TYPE_%d", int32(t))
	}
}

// ParseRegType maps the short names used on command lines ("sz", "multi_sz",
// "dword", ...) and the REG_* spellings to a RegType.
func ParseRegType(s string) (RegType, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.ToUpper(s), "REG_")) {
	case "none":
		return REG_NONE, nil
	case "sz", "string":
		return REG_SZ, nil
	case "expand_sz":
		return REG_EXPAND_SZ, nil
	case "binary":
		return REG_BINARY, nil
	case "dword", "dword_le":
		return REG_DWORD, nil
	case "dword_be":
		return REG_DWORD_BE, nil
	case "link":
		return REG_LINK, nil
	case "multi_sz":
		return REG_MULTI_SZ, nil
	case "qword":
		return REG_QWORD, nil
	}
	return REG_NONE, fmt.Errorf("unknown value type %q", s)
}
