// Package alloc provides the scratch-buffer allocators used by the sized
// query protocol.
//
// Every buffer handed out by Alloc must be given back exactly once through
// Free. Pool recycles buffers through size-classed sync.Pools; Budget wraps
// another allocator, caps the bytes outstanding at any moment, and counts
// live buffers so leaks on error paths are observable in tests.
package alloc
