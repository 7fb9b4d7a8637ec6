package format

import "fmt"

// ValuePartial is the decoded KEY_VALUE_PARTIAL_INFORMATION block: the type
// tag and raw data of one value, without its name.
type ValuePartial struct {
	TitleIndex uint32
	Type       uint32
	Data       []byte
}

// EncodeValuePartial builds a KEY_VALUE_PARTIAL_INFORMATION block.
func EncodeValuePartial(typ uint32, data []byte) []byte {
	b := make([]byte, PartialFixedSize+len(data))
	PutU32(b, PartialTypeOffset, typ)
	PutU32(b, PartialDataLenOffset, uint32(len(data)))
	copy(b[PartialDataOffset:], data)
	return b
}

// DecodeValuePartial decodes a KEY_VALUE_PARTIAL_INFORMATION block. The
// returned Data aliases b.
func DecodeValuePartial(b []byte) (ValuePartial, error) {
	if len(b) < PartialFixedSize {
		return ValuePartial{}, fmt.Errorf("value partial: %w (have %d, need %d)", ErrTruncated, len(b), PartialFixedSize)
	}
	dataLen := ReadU32(b, PartialDataLenOffset)
	data, ok := span(b, PartialDataOffset, dataLen)
	if !ok {
		return ValuePartial{}, fmt.Errorf("value partial data: %w (need %d bytes from %d, have %d)",
			ErrTruncated, dataLen, PartialDataOffset, len(b))
	}
	return ValuePartial{
		TitleIndex: ReadU32(b, PartialTitleIndexOffset),
		Type:       ReadU32(b, PartialTypeOffset),
		Data:       data,
	}, nil
}
