package registry

import (
	"time"

	"github.com/joshuapare/regkit/internal/format"
	"github.com/joshuapare/regkit/pkg/types"
)

// KeyInfo is a snapshot of a key's attributes at query time. Lengths are in
// bytes, as the store reports them.
type KeyInfo struct {
	SubkeyCount      uint32
	ValueCount       uint32
	MaxSubkeyNameLen uint32
	MaxClassLen      uint32
	MaxValueNameLen  uint32
	MaxValueDataLen  uint32
	Class            string
	LastWrite        time.Time
}

// withFullInfo runs fn over the key's full information block while its query
// buffer is held.
func (k *Key) withFullInfo(fn func(format.KeyFull) error) error {
	if k.closed {
		return closedError(opQueryKey, k.path)
	}
	buf, release, err := k.sizedQuery(opQueryKey, k.path, func(b []byte) (uint32, error) {
		return k.st.QueryKey(k.h, types.KeyFullInformation, b)
	}, types.StatusObjectNameNotFound)
	if err != nil {
		return err
	}
	defer release()

	info, err := format.DecodeKeyFull(buf)
	if err != nil {
		return formatError(opQueryKey, k.path, err)
	}
	return fn(info)
}

// SubkeyCount returns the number of direct subkeys. It returns 0 with any error.
func (k *Key) SubkeyCount() (uint32, error) {
	var n uint32
	err := k.withFullInfo(func(info format.KeyFull) error {
		n = info.SubKeys
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Info returns the key's full metadata.
func (k *Key) Info() (KeyInfo, error) {
	var out KeyInfo
	err := k.withFullInfo(func(info format.KeyFull) error {
		class, err := format.DecodeUTF16LE(info.Class)
		if err != nil {
			return formatError(opQueryKey, k.path, err)
		}
		out = KeyInfo{
			SubkeyCount:      info.SubKeys,
			ValueCount:       info.Values,
			MaxSubkeyNameLen: info.MaxNameLen,
			MaxClassLen:      info.MaxClassLen,
			MaxValueNameLen:  info.MaxValueNameLen,
			MaxValueDataLen:  info.MaxValueDataLen,
			Class:            class,
			LastWrite:        info.LastWrite,
		}
		return nil
	})
	if err != nil {
		return KeyInfo{}, err
	}
	return out, nil
}
