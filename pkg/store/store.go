// Package store defines the primitive operations a registry store must offer
// to the access layer in package registry.
//
// The primitives mirror the native registry API: queries take a caller buffer
// and report the number of bytes the full answer needs, so the caller can ask
// for the size first and fetch into an exactly sized buffer second. Every
// primitive returns a types.Status (or nil for success) as its error.
//
// Implementations in this module:
//   - memstore: an in-memory tree, used by tests and as a scratch store.
//   - boltstore: a persistent tree in a bbolt database file.
//   - winstore: the live Windows registry (windows only).
package store

import "github.com/joshuapare/regkit/pkg/types"

// Handle identifies an open key within one Store. Handles are not shared
// across stores and are invalid after CloseKey.
type Handle uint64

// Store is the set of primitives consumed by the access layer.
//
// Query primitives write as much of the encoded information block into buf as
// fits and return the full length of the block. A buf shorter than the fixed
// header yields types.StatusBufferTooSmall; a buf that holds the header but not
// the payload yields types.StatusBufferOverflow. Both still report the needed
// length. Stores apply each primitive atomically but give no guarantees across
// calls.
type Store interface {
	// OpenKey opens the key at path. Missing keys yield
	// types.StatusObjectNameNotFound.
	OpenKey(path string) (Handle, error)

	// CloseKey releases h.
	CloseKey(h Handle) error

	// QueryKey returns information about the key itself.
	QueryKey(h Handle, class types.KeyInformationClass, buf []byte) (uint32, error)

	// EnumerateKey returns information about the subkey at index, in the
	// store's stable enumeration order. Indexes past the end yield
	// types.StatusNoMoreEntries.
	EnumerateKey(h Handle, index uint32, class types.KeyInformationClass, buf []byte) (uint32, error)

	// QueryValueKey returns information about the named value. Missing values
	// yield types.StatusObjectNameNotFound.
	QueryValueKey(h Handle, name string, class types.KeyValueInformationClass, buf []byte) (uint32, error)

	// SetValueKey creates or replaces the named value. Implementations must
	// not retain data.
	SetValueKey(h Handle, name string, typ types.RegType, data []byte) error
}

// KeyCreator is implemented by stores that can create keys. CreateKey opens
// the key at path, creating it and any missing ancestors.
type KeyCreator interface {
	CreateKey(path string) (Handle, error)
}

// KeyDeleter is implemented by stores that can delete keys. Keys that still
// have subkeys cannot be deleted.
type KeyDeleter interface {
	DeleteKey(h Handle) error
}

// ValueDeleter is implemented by stores that can delete values.
type ValueDeleter interface {
	DeleteValueKey(h Handle, name string) error
}

// Respond copies an encoded information block into buf following the sizing
// rules above. fixed is the size of the block's fixed header.
func Respond(buf, block []byte, fixed int) (uint32, error) {
	need := uint32(len(block))
	if len(buf) < fixed {
		return need, types.StatusBufferTooSmall
	}
	if copy(buf, block) < len(block) {
		return need, types.StatusBufferOverflow
	}
	return need, nil
}
