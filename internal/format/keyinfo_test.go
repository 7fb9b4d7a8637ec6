package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestKeyBasic_EncodeDecode(t *testing.T) {
	when := time.Date(2023, 7, 4, 10, 30, 0, 0, time.UTC)
	b, err := EncodeKeyBasic("Run", when)
	require.NoError(t, err)
	require.Len(t, b, BasicFixedSize+6)
	require.Equal(t, uint32(6), ReadU32(b, BasicNameLenOffset))

	kb, err := DecodeKeyBasic(b)
	require.NoError(t, err)
	require.Equal(t, when, kb.LastWrite)
	require.Equal(t, uint32(6), kb.NameLength)
	require.Equal(t, []byte{'R', 0, 'u', 0, 'n', 0}, kb.Name)
}

func TestKeyBasic_Truncated(t *testing.T) {
	_, err := DecodeKeyBasic(make([]byte, BasicFixedSize-1))
	require.ErrorIs(t, err, ErrTruncated)

	b, err := EncodeKeyBasic("abc", time.Time{})
	require.NoError(t, err)
	_, err = DecodeKeyBasic(b[:len(b)-1])
	require.ErrorIs(t, err, ErrTruncated)
}

func TestKeyFull_Layout(t *testing.T) {
	b := EncodeKeyFull(KeyFull{
		SubKeys:         3,
		MaxNameLen:      20,
		Values:          2,
		MaxValueNameLen: 8,
		MaxValueDataLen: 512,
		Class:           []byte{'c', 0},
	})
	require.Len(t, b, FullFixedSize+2)
	require.Equal(t, uint32(FullClassOffset), ReadU32(b, FullClassOffsetOffset))
	require.Equal(t, uint32(3), ReadU32(b, 0x14))
	require.Equal(t, uint32(512), ReadU32(b, 0x28))

	k, err := DecodeKeyFull(b)
	require.NoError(t, err)
	require.Equal(t, uint32(3), k.SubKeys)
	require.Equal(t, uint32(20), k.MaxNameLen)
	require.Equal(t, uint32(2), k.Values)
	require.Equal(t, []byte{'c', 0}, k.Class)
	require.True(t, k.LastWrite.IsZero())
}

func TestKeyFull_NoClass(t *testing.T) {
	b := EncodeKeyFull(KeyFull{SubKeys: 1})
	require.Len(t, b, FullFixedSize)
	require.Equal(t, ^uint32(0), ReadU32(b, FullClassOffsetOffset))

	k, err := DecodeKeyFull(b)
	require.NoError(t, err)
	require.Nil(t, k.Class)
}

func TestKeyFull_ClassOutOfBounds(t *testing.T) {
	b := EncodeKeyFull(KeyFull{Class: []byte{'c', 0}})
	PutU32(b, FullClassLenOffset, 64)
	_, err := DecodeKeyFull(b)
	require.ErrorIs(t, err, ErrTruncated)
}

func TestValuePartial_EncodeDecode(t *testing.T) {
	b := EncodeValuePartial(4, []byte{1, 0, 0, 0})
	require.Len(t, b, PartialFixedSize+4)

	vp, err := DecodeValuePartial(b)
	require.NoError(t, err)
	require.Equal(t, uint32(4), vp.Type)
	require.Equal(t, []byte{1, 0, 0, 0}, vp.Data)

	_, err = DecodeValuePartial(b[:PartialFixedSize+2])
	require.ErrorIs(t, err, ErrTruncated)
	_, err = DecodeValuePartial(b[:4])
	require.ErrorIs(t, err, ErrTruncated)
}

func TestFiletime(t *testing.T) {
	require.Equal(t, uint64(0), TimeToFiletime(time.Time{}))
	require.True(t, FiletimeToTime(0).IsZero())
	require.Equal(t, time.Unix(0, 0).UTC(), FiletimeToTime(1))

	epoch := time.Unix(0, 0).UTC()
	require.Equal(t, uint64(116444736000000000), TimeToFiletime(epoch.Add(time.Nanosecond)))

	when := time.Date(2020, 1, 2, 3, 4, 5, 600, time.UTC)
	require.Equal(t, when, FiletimeToTime(TimeToFiletime(when)))
}
