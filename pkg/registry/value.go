package registry

import (
	"github.com/joshuapare/regkit/internal/format"
	"github.com/joshuapare/regkit/pkg/types"
)

// Blob is the raw, type-tagged payload of one value. Data is a private copy.
type Blob struct {
	Type types.RegType
	Data []byte
}

// withValue runs fn over the named value's partial information while its
// query buffer is held. The buffer is released when fn returns, so fn must
// copy anything it keeps.
func (k *Key) withValue(name string, fn func(format.ValuePartial) error) error {
	if k.closed {
		return closedError(opQuery, name)
	}
	buf, release, err := k.sizedQuery(opQuery, name, func(b []byte) (uint32, error) {
		return k.st.QueryValueKey(k.h, name, types.KeyValuePartialInformation, b)
	}, types.StatusObjectNameNotFound)
	if err != nil {
		return err
	}
	defer release()

	vp, err := format.DecodeValuePartial(buf)
	if err != nil {
		return formatError(opQuery, name, err)
	}
	return fn(vp)
}

// ValueBlob returns the type tag and raw data of the named value. A missing
// value is reported as not found.
func (k *Key) ValueBlob(name string) (Blob, error) {
	var b Blob
	err := k.withValue(name, func(vp format.ValuePartial) error {
		b = Blob{Type: types.RegType(vp.Type), Data: append([]byte(nil), vp.Data...)}
		return nil
	})
	if err != nil {
		return Blob{}, err
	}
	return b, nil
}

// HasValue reports whether the named value exists. Only absence yields
// false with a nil error.
func (k *Key) HasValue(name string) (bool, error) {
	err := k.withValue(name, func(format.ValuePartial) error { return nil })
	if types.IsNotFound(err) {
		return false, nil
	}
	return err == nil, err
}
