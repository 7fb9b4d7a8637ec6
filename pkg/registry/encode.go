package registry

import (
	"encoding/binary"
	"fmt"

	"github.com/joshuapare/regkit/internal/format"
	"github.com/joshuapare/regkit/pkg/store"
	"github.com/joshuapare/regkit/pkg/types"
)

// SetValue writes raw data with the given type tag. The typed setters below
// are preferred; SetValue exists for types they do not cover.
func (k *Key) SetValue(name string, typ types.RegType, data []byte) error {
	if k.closed {
		return closedError(opSet, name)
	}
	if err := k.checkValue(name, len(data)); err != nil {
		return err
	}
	if err := k.st.SetValueKey(k.h, name, typ, data); err != nil {
		return storeError(opSet, name, err, "could not store")
	}
	return nil
}

// SetString stores s with its terminator as REG_SZ.
func (k *Key) SetString(name, s string) error {
	data, err := format.AppendUTF16LEZ(nil, s)
	if err != nil {
		return invalidError(opSet, name, err)
	}
	return k.SetValue(name, types.REG_SZ, data)
}

// SetStringArray stores strs as REG_MULTI_SZ: each string followed by its
// terminator, then one more terminator closing the list.
func (k *Key) SetStringArray(name string, strs []string) error {
	if k.closed {
		return closedError(opSet, name)
	}

	encoded := make([][]byte, len(strs))
	total := format.WCharSize
	for i, s := range strs {
		raw, err := format.EncodeUTF16LE(s)
		if err != nil {
			return invalidError(opSet, name, fmt.Errorf("string %d: %w", i, err))
		}
		encoded[i] = raw
		total += len(raw) + format.WCharSize
	}

	buf, release, err := k.scratch(opSet, name, total)
	if err != nil {
		return err
	}
	defer release()

	// buf is zeroed, so skipping past each terminator leaves it in place.
	off := 0
	for _, raw := range encoded {
		off += copy(buf[off:], raw) + format.WCharSize
	}
	return k.SetValue(name, types.REG_MULTI_SZ, buf)
}

// SetDWORD stores v as a little-endian REG_DWORD.
func (k *Key) SetDWORD(name string, v uint32) error {
	var data [format.DWORDSize]byte
	binary.LittleEndian.PutUint32(data[:], v)
	return k.SetValue(name, types.REG_DWORD, data[:])
}

// DeleteValue removes the named value. The store must implement
// store.ValueDeleter; a missing value is reported as not found.
func (k *Key) DeleteValue(name string) error {
	if k.closed {
		return closedError(opDelValue, name)
	}
	d, ok := k.st.(store.ValueDeleter)
	if !ok {
		return &types.Error{Kind: types.ErrKindUnsupported, Op: opDelValue, Name: name, Msg: "store cannot delete values"}
	}
	if err := d.DeleteValueKey(k.h, name); err != nil {
		if st := types.AsStatus(err); st == types.StatusObjectNameNotFound {
			return notFoundError(opDelValue, name, st)
		}
		return storeError(opDelValue, name, err, "could not delete")
	}
	return nil
}

func (k *Key) checkValue(name string, size int) error {
	l := k.opts.limits
	if n := format.CodeUnits(name); l.MaxValueNameLen > 0 && n > l.MaxValueNameLen {
		return limitError(opSet, name, fmt.Sprintf("value name is %d characters, limit %d", n, l.MaxValueNameLen))
	}
	if l.MaxValueSize > 0 && size > l.MaxValueSize {
		return limitError(opSet, name, fmt.Sprintf("value data is %d bytes, limit %d", size, l.MaxValueSize))
	}
	return nil
}
