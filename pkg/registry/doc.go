// Package registry is the access layer over a hierarchical registry store.
//
// A Key is an open node of the store. Through it callers read the subkey
// count, enumerate subkeys with a visitor, and read or write values as
// strings, string arrays (REG_MULTI_SZ) or 32-bit integers, without dealing
// with the store's native information blocks.
//
// # Sized queries
//
// The store only reports how large an answer is when asked with a too-small
// buffer. Every read therefore runs the same two-phase protocol: ask with an
// empty buffer to learn the size, allocate exactly that many bytes, ask again.
// Buffers come from an Allocator and are returned on every exit path; decoded
// results never alias them.
//
// # Errors
//
// Failures are *types.Error values:
//
//	name, err := key.String("BootDevice")
//	switch {
//	case types.IsNotFound(err):
//	    name = defaultBootDevice // absent, apply a default
//	case err != nil:
//	    return err // hard failure: Op, Name and Status say what broke
//	}
//
// Visitor errors from ForEachSubkey are returned unchanged. The package never
// logs; callers decide what a failure is worth.
//
// # Concurrency
//
// A Key is not safe for concurrent use. Stores apply each primitive
// atomically, but nothing spans several primitives: a subkey count may be
// stale by the time enumeration reaches the end, which surfaces as an error.
package registry
