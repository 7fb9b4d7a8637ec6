package registry

import (
	"iter"
	"unicode/utf8"

	"github.com/joshuapare/regkit/internal/format"
)

// MultiString is a decoded REG_MULTI_SZ value: one private copy of the stored
// code units plus a table of slots, each holding the code-unit offset of one
// string. The table always ends with an unused slot (the end sentinel).
//
// The slot table is sized from a count of NUL code units in the data. That
// count treats the list's final terminator as one more (empty) string, so it
// may exceed the number of strings by one; the surplus slots stay empty.
type MultiString struct {
	units []byte // code units, followed by one extra NUL
	slots []int  // code-unit offsets; -1 marks an empty slot
}

const emptySlot = -1

// parseMultiString builds a MultiString from raw REG_MULTI_SZ data. The result
// never aliases data.
func parseMultiString(data []byte) *MultiString {
	n := (len(data) + 1) / format.WCharSize

	// Upper bound on the string count: one per NUL code unit.
	count := 0
	for i := 0; i < n; i++ {
		if unitAt(data, i) == 0 {
			count++
		}
	}

	m := &MultiString{
		units: make([]byte, (n+1)*format.WCharSize),
		slots: make([]int, count+1),
	}
	copy(m.units, data)
	for i := range m.slots {
		m.slots[i] = emptySlot
	}

	pos := 0
	for i := 0; i < count; i++ {
		if pos >= n {
			break
		}
		// A lone NUL in the last position is the list terminator, not a string.
		if pos == n-1 && unitAt(m.units, pos) == 0 {
			break
		}
		m.slots[i] = pos
		for pos < n && unitAt(m.units, pos) != 0 {
			pos++
		}
		pos++
	}
	return m
}

// unitAt returns code unit i of b; a trailing odd byte reads as a unit with a
// zero high byte.
func unitAt(b []byte, i int) uint16 {
	lo := i * format.WCharSize
	u := uint16(b[lo])
	if lo+1 < len(b) {
		u |= uint16(b[lo+1]) << 8
	}
	return u
}

// Len returns the number of strings.
func (m *MultiString) Len() int {
	if m == nil {
		return 0
	}
	for i, off := range m.slots {
		if off == emptySlot {
			return i
		}
	}
	return len(m.slots)
}

// Estimate returns the slot count reserved before parsing, excluding the end
// sentinel. It is either Len() or Len()+1 for well-formed data.
func (m *MultiString) Estimate() int {
	if m == nil {
		return 0
	}
	return len(m.slots) - 1
}

// At returns string i. It panics if i is out of range, like a slice index.
// Unpaired surrogates decode as U+FFFD; the slots hold whole code units, so
// decoding has no other failure.
func (m *MultiString) At(i int) string {
	if i < 0 || i >= m.Len() {
		panic("registry: MultiString index out of range")
	}
	start := m.slots[i] * format.WCharSize
	end := start + format.UnitLen(m.units[start:])*format.WCharSize
	s, err := format.DecodeUTF16LE(m.units[start:end])
	if err != nil {
		return string(utf8.RuneError)
	}
	return s
}

// All yields the strings in stored order.
func (m *MultiString) All() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for i := range m.Len() {
			if !yield(i, m.At(i)) {
				return
			}
		}
	}
}

// Strings returns the strings as a slice. An empty list yields an empty,
// non-nil slice.
func (m *MultiString) Strings() []string {
	out := make([]string, 0, m.Len())
	for _, s := range m.All() {
		out = append(out, s)
	}
	return out
}
