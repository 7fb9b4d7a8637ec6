package registry

import (
	"encoding/binary"
	"fmt"

	"github.com/joshuapare/regkit/internal/format"
	"github.com/joshuapare/regkit/pkg/types"
)

// String returns the named value decoded as a string. The data is copied into
// a buffer one code unit longer than the stored data, so a value stored without
// its terminator still decodes; decoding stops at the first NUL.
func (k *Key) String(name string) (string, error) {
	var s string
	err := k.withValue(name, func(vp format.ValuePartial) error {
		buf, release, err := k.scratch(opQuery, name, len(vp.Data)+format.WCharSize)
		if err != nil {
			return err
		}
		defer release()
		copy(buf, vp.Data)

		s, err = format.DecodeUTF16LE(buf[:format.UnitLen(buf)*format.WCharSize])
		if err != nil {
			return formatError(opQuery, name, err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return s, nil
}

// StringArray returns the named value decoded as a string array
// (REG_MULTI_SZ). See MultiString for the layout rules.
func (k *Key) StringArray(name string) (*MultiString, error) {
	var m *MultiString
	err := k.withValue(name, func(vp format.ValuePartial) error {
		m = parseMultiString(vp.Data)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Strings is StringArray flattened into a slice.
func (k *Key) Strings(name string) ([]string, error) {
	m, err := k.StringArray(name)
	if err != nil {
		return nil, err
	}
	return m.Strings(), nil
}

// DWORD returns the named value as a 32-bit integer. The data must be exactly
// four bytes; REG_DWORD_BE values are byte-swapped.
func (k *Key) DWORD(name string) (uint32, error) {
	var v uint32
	err := k.withValue(name, func(vp format.ValuePartial) error {
		if len(vp.Data) != format.DWORDSize {
			return &types.Error{
				Kind: types.ErrKindSize,
				Op:   opQuery,
				Name: name,
				Msg:  fmt.Sprintf("bad size %d for dword", len(vp.Data)),
			}
		}
		if types.RegType(vp.Type) == types.REG_DWORD_BE {
			v = binary.BigEndian.Uint32(vp.Data)
		} else {
			v = binary.LittleEndian.Uint32(vp.Data)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return v, nil
}

// StringOr returns the named string value, or def when the value is absent.
// Hard failures are still returned.
func (k *Key) StringOr(name, def string) (string, error) {
	s, err := k.String(name)
	if types.IsNotFound(err) {
		return def, nil
	}
	return s, err
}

// DWORDOr returns the named integer value, or def when the value is absent.
// Hard failures are still returned.
func (k *Key) DWORDOr(name string, def uint32) (uint32, error) {
	v, err := k.DWORD(name)
	if types.IsNotFound(err) {
		return def, nil
	}
	return v, err
}
