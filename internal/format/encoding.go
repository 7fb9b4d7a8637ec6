package format

import "encoding/binary"

// Little-endian accessors for information block fields. Callers check
// bounds first; span is the bounds-checked slice helper.

// PutU32 writes a uint32 value to the buffer at the specified offset in little-endian format.
func PutU32(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
}

// PutU64 writes a uint64 value to the buffer at the specified offset in little-endian format.
func PutU64(b []byte, off int, v uint64) {
	binary.LittleEndian.PutUint64(b[off:off+8], v)
}

// ReadU32 reads a uint32 value from the buffer at the specified offset in little-endian format.
func ReadU32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off : off+4])
}

// ReadU64 reads a uint64 value from the buffer at the specified offset in little-endian format.
func ReadU64(b []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(b[off : off+8])
}

// span returns b[off:off+n] when it lies within b.
func span(b []byte, off int, n uint32) ([]byte, bool) {
	end := off + int(n)
	if off < 0 || end < off || end > len(b) {
		return nil, false
	}
	return b[off:end], true
}
