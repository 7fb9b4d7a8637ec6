package registry

import (
	"fmt"
	"strconv"

	"github.com/joshuapare/regkit/internal/format"
	"github.com/joshuapare/regkit/pkg/types"
)

// SubkeyNameAt returns the name of the subkey at index in the store's
// enumeration order. An index past the last subkey is reported as not found.
func (k *Key) SubkeyNameAt(index uint32) (string, error) {
	label := strconv.FormatUint(uint64(index), 10)
	if k.closed {
		return "", closedError(opEnumerate, label)
	}

	buf, release, err := k.sizedQuery(opEnumerate, label, func(b []byte) (uint32, error) {
		return k.st.EnumerateKey(k.h, index, types.KeyBasicInformation, b)
	}, types.StatusObjectNameNotFound, types.StatusNoMoreEntries)
	if err != nil {
		return "", err
	}
	defer release()

	info, err := format.DecodeKeyBasic(buf)
	if err != nil {
		return "", formatError(opEnumerate, label, err)
	}

	// NameLength bytes plus one terminating code unit.
	name, freeName, err := k.scratch(opEnumerate, label, int(info.NameLength)+format.WCharSize)
	if err != nil {
		return "", err
	}
	defer freeName()
	copy(name, info.Name)

	s, err := format.DecodeUTF16LE(name[:format.UnitLen(name)*format.WCharSize])
	if err != nil {
		return "", formatError(opEnumerate, label, err)
	}
	return s, nil
}

// ForEachSubkey calls fn with the name of every direct subkey, in ascending
// index order. The first error, from the store or from fn, stops the walk and
// is returned; errors from fn are returned unchanged.
//
// The subkey count is read once up front. If the key loses subkeys while the
// walk runs, the missing index is a hard failure rather than an early end.
func (k *Key) ForEachSubkey(fn func(name string) error) error {
	count, err := k.SubkeyCount()
	if err != nil {
		return err
	}
	for i := uint32(0); i < count; i++ {
		name, err := k.SubkeyNameAt(i)
		if err != nil {
			if e, ok := err.(*types.Error); ok && e.Kind == types.ErrKindNotFound {
				return &types.Error{
					Kind:   types.ErrKindStore,
					Op:     opForEach,
					Name:   k.path,
					Status: e.Status,
					Msg:    fmt.Sprintf("subkey %d of %d vanished during enumeration", i, count),
				}
			}
			return err
		}
		if err := fn(name); err != nil {
			return err
		}
	}
	return nil
}

// Subkeys returns the names of all direct subkeys.
func (k *Key) Subkeys() ([]string, error) {
	var names []string
	err := k.ForEachSubkey(func(name string) error {
		names = append(names, name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}
