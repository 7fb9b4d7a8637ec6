// Package format houses the encoders and decoders for the information blocks
// exchanged with the registry store primitives. The layouts follow the native
// KEY_*_INFORMATION structures: little-endian, fixed header first, variable
// UTF-16LE or raw payload last. Keeping them here lets the access layer and
// every store backend agree on one wire shape.
package format

const (
	// WCharSize is the size of one UTF-16 code unit in bytes.
	WCharSize = 2

	// DWORDSize is the size of a REG_DWORD payload.
	DWORDSize = 4
)

// KEY_BASIC_INFORMATION layout:
//
//	0x00  LastWriteTime  FILETIME
//	0x08  TitleIndex     uint32
//	0x0C  NameLength     uint32 (bytes)
//	0x10  Name           UTF-16LE, not terminated
const (
	BasicLastWriteOffset  = 0x00
	BasicTitleIndexOffset = 0x08
	BasicNameLenOffset    = 0x0C
	BasicNameOffset       = 0x10
	BasicFixedSize        = BasicNameOffset
)

// KEY_FULL_INFORMATION layout:
//
//	0x00  LastWriteTime    FILETIME
//	0x08  TitleIndex       uint32
//	0x0C  ClassOffset      uint32 (from block start)
//	0x10  ClassLength      uint32 (bytes)
//	0x14  SubKeys          uint32
//	0x18  MaxNameLen       uint32
//	0x1C  MaxClassLen      uint32
//	0x20  Values           uint32
//	0x24  MaxValueNameLen  uint32
//	0x28  MaxValueDataLen  uint32
//	0x2C  Class            UTF-16LE, not terminated
const (
	FullLastWriteOffset       = 0x00
	FullTitleIndexOffset      = 0x08
	FullClassOffsetOffset     = 0x0C
	FullClassLenOffset        = 0x10
	FullSubKeysOffset         = 0x14
	FullMaxNameLenOffset      = 0x18
	FullMaxClassLenOffset     = 0x1C
	FullValuesOffset          = 0x20
	FullMaxValueNameLenOffset = 0x24
	FullMaxValueDataLenOffset = 0x28
	FullClassOffset           = 0x2C
	FullFixedSize             = FullClassOffset
)

// KEY_VALUE_PARTIAL_INFORMATION layout:
//
//	0x00  TitleIndex  uint32
//	0x04  Type        uint32
//	0x08  DataLength  uint32
//	0x0C  Data        raw bytes
const (
	PartialTitleIndexOffset = 0x00
	PartialTypeOffset       = 0x04
	PartialDataLenOffset    = 0x08
	PartialDataOffset       = 0x0C
	PartialFixedSize        = PartialDataOffset
)
