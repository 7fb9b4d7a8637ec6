package format

import (
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// utf16LE is the native string encoding of the store: little-endian, no BOM.
var utf16LE = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// asciiThreshold is the first code unit outside 7-bit ASCII.
const asciiThreshold = 0x80

// EncodeUTF16LE converts s to UTF-16LE without a terminator. Strings holding a
// NUL are rejected since the store could not read them back intact.
func EncodeUTF16LE(s string) ([]byte, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return nil, ErrEmbeddedNUL
	}
	if isASCII(s) {
		out := make([]byte, len(s)*WCharSize)
		for i := 0; i < len(s); i++ {
			out[i*WCharSize] = s[i]
		}
		return out, nil
	}
	return utf16LE.NewEncoder().Bytes([]byte(s))
}

// AppendUTF16LEZ appends s and one NUL code unit to dst.
func AppendUTF16LEZ(dst []byte, s string) ([]byte, error) {
	raw, err := EncodeUTF16LE(s)
	if err != nil {
		return dst, err
	}
	dst = append(dst, raw...)
	return append(dst, 0, 0), nil
}

// DecodeUTF16LE converts UTF-16LE bytes to a UTF-8 string. A trailing odd
// byte is ignored; callers that must preserve it pad first.
func DecodeUTF16LE(data []byte) (string, error) {
	data = data[:len(data)&^1]
	if len(data) == 0 {
		return "", nil
	}

	// Fast path: in UTF-16LE, ASCII chars are [byte, 0x00]
	allASCII := true
	for i := 0; i < len(data); i += WCharSize {
		if data[i+1] != 0 || data[i] >= asciiThreshold {
			allASCII = false
			break
		}
	}
	if allASCII {
		var b strings.Builder
		b.Grow(len(data) / WCharSize)
		for i := 0; i < len(data); i += WCharSize {
			b.WriteByte(data[i])
		}
		return b.String(), nil
	}

	out, err := utf16LE.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// UnitLen returns the index of the first NUL code unit in data, or the number
// of whole code units when none is present.
func UnitLen(data []byte) int {
	n := len(data) / WCharSize
	for i := 0; i < n; i++ {
		if data[i*WCharSize] == 0 && data[i*WCharSize+1] == 0 {
			return i
		}
	}
	return n
}

// CodeUnits returns the UTF-16 length of s, used for limit checks.
func CodeUnits(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= asciiThreshold {
			return false
		}
	}
	return true
}
