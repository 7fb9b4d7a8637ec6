package format

import (
	"fmt"
	"time"
)

// KeyBasic is the decoded KEY_BASIC_INFORMATION block returned when
// enumerating subkeys. Name holds the raw UTF-16LE bytes (NameLength bytes).
type KeyBasic struct {
	LastWrite  time.Time
	TitleIndex uint32
	NameLength uint32
	Name       []byte
}

// EncodeKeyBasic builds a KEY_BASIC_INFORMATION block for name.
func EncodeKeyBasic(name string, lastWrite time.Time) ([]byte, error) {
	raw, err := EncodeUTF16LE(name)
	if err != nil {
		return nil, err
	}
	b := make([]byte, BasicFixedSize+len(raw))
	PutU64(b, BasicLastWriteOffset, TimeToFiletime(lastWrite))
	PutU32(b, BasicNameLenOffset, uint32(len(raw)))
	copy(b[BasicNameOffset:], raw)
	return b, nil
}

// DecodeKeyBasic decodes a KEY_BASIC_INFORMATION block. The returned Name
// aliases b.
func DecodeKeyBasic(b []byte) (KeyBasic, error) {
	if len(b) < BasicFixedSize {
		return KeyBasic{}, fmt.Errorf("key basic: %w (have %d, need %d)", ErrTruncated, len(b), BasicFixedSize)
	}
	nameLen := ReadU32(b, BasicNameLenOffset)
	name, ok := span(b, BasicNameOffset, nameLen)
	if !ok {
		return KeyBasic{}, fmt.Errorf("key basic name: %w (need %d bytes from %d, have %d)",
			ErrTruncated, nameLen, BasicNameOffset, len(b))
	}
	return KeyBasic{
		LastWrite:  FiletimeToTime(ReadU64(b, BasicLastWriteOffset)),
		TitleIndex: ReadU32(b, BasicTitleIndexOffset),
		NameLength: nameLen,
		Name:       name,
	}, nil
}

// KeyFull is the decoded KEY_FULL_INFORMATION block. Lengths are in bytes,
// as the store reports them.
type KeyFull struct {
	LastWrite       time.Time
	TitleIndex      uint32
	SubKeys         uint32
	MaxNameLen      uint32
	MaxClassLen     uint32
	Values          uint32
	MaxValueNameLen uint32
	MaxValueDataLen uint32
	Class           []byte
}

// EncodeKeyFull builds a KEY_FULL_INFORMATION block. The class, if any, is
// placed directly after the fixed header.
func EncodeKeyFull(k KeyFull) []byte {
	b := make([]byte, FullFixedSize+len(k.Class))
	PutU64(b, FullLastWriteOffset, TimeToFiletime(k.LastWrite))
	PutU32(b, FullTitleIndexOffset, k.TitleIndex)
	if len(k.Class) > 0 {
		PutU32(b, FullClassOffsetOffset, FullClassOffset)
	} else {
		PutU32(b, FullClassOffsetOffset, ^uint32(0))
	}
	PutU32(b, FullClassLenOffset, uint32(len(k.Class)))
	PutU32(b, FullSubKeysOffset, k.SubKeys)
	PutU32(b, FullMaxNameLenOffset, k.MaxNameLen)
	PutU32(b, FullMaxClassLenOffset, k.MaxClassLen)
	PutU32(b, FullValuesOffset, k.Values)
	PutU32(b, FullMaxValueNameLenOffset, k.MaxValueNameLen)
	PutU32(b, FullMaxValueDataLenOffset, k.MaxValueDataLen)
	copy(b[FullClassOffset:], k.Class)
	return b
}

// DecodeKeyFull decodes a KEY_FULL_INFORMATION block. The returned Class
// aliases b.
func DecodeKeyFull(b []byte) (KeyFull, error) {
	if len(b) < FullFixedSize {
		return KeyFull{}, fmt.Errorf("key full: %w (have %d, need %d)", ErrTruncated, len(b), FullFixedSize)
	}
	k := KeyFull{
		LastWrite:       FiletimeToTime(ReadU64(b, FullLastWriteOffset)),
		TitleIndex:      ReadU32(b, FullTitleIndexOffset),
		SubKeys:         ReadU32(b, FullSubKeysOffset),
		MaxNameLen:      ReadU32(b, FullMaxNameLenOffset),
		MaxClassLen:     ReadU32(b, FullMaxClassLenOffset),
		Values:          ReadU32(b, FullValuesOffset),
		MaxValueNameLen: ReadU32(b, FullMaxValueNameLenOffset),
		MaxValueDataLen: ReadU32(b, FullMaxValueDataLenOffset),
	}
	if classLen := ReadU32(b, FullClassLenOffset); classLen > 0 {
		class, ok := span(b, int(ReadU32(b, FullClassOffsetOffset)), classLen)
		if !ok {
			return KeyFull{}, fmt.Errorf("key full class: %w", ErrTruncated)
		}
		k.Class = class
	}
	return k, nil
}
