// Package types defines the value types, status codes, limits and typed errors
// shared by the registry access layer and its store backends.
//
// Design goals:
//   - Failures are classified by ErrKind so callers branch on intent rather
//     than on message text.
//   - Absence (ErrKindNotFound) is always distinguishable from hard failure.
//   - Store-level outcomes travel as Status values, mirroring the native
//     status codes returned by the underlying store primitives.
//
// This package has no dependencies beyond the standard library.
package types
