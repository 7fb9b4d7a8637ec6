package registry

import (
	"fmt"
	"slices"

	"github.com/joshuapare/regkit/pkg/types"
)

// queryFunc is one store query: it fills buf as far as it can and reports the
// length of the full answer.
type queryFunc func(buf []byte) (uint32, error)

// sizedQuery runs the two-phase protocol over query:
//
//  1. call with an empty buffer to learn the required size. Success, buffer
//     overflow and buffer too small all report it; a status listed in absent
//     is a soft not-found; anything else is a hard failure.
//  2. allocate exactly that size and call again. Any failure now is hard.
//
// A reported size beyond queryCap is refused before anything is allocated.
//
// On success the caller owns buf and must call release exactly once. On
// failure nothing is outstanding.
func (k *Key) sizedQuery(op, name string, query queryFunc, absent ...types.Status) (buf []byte, release func(), err error) {
	need, err := query(nil)
	if st := types.AsStatus(err); !st.SizeReported() {
		if slices.Contains(absent, st) {
			return nil, nil, notFoundError(op, name, st)
		}
		return nil, nil, storeError(op, name, err, "could not get length")
	}

	if limit := k.opts.queryCap(); uint64(need) > uint64(limit) {
		return nil, nil, resourceError(op, name, need,
			fmt.Errorf("store reported %d bytes, limit %d", need, limit))
	}

	raw, err := k.opts.alloc.Alloc(int(need))
	if err != nil {
		return nil, nil, resourceError(op, name, need, err)
	}
	release = func() { k.opts.alloc.Free(raw) }

	got, err := query(raw)
	if err != nil {
		release()
		return nil, nil, storeError(op, name, err, "could not fetch")
	}
	return raw[:min(int(got), len(raw))], release, nil
}

// scratch allocates a zeroed buffer of n bytes outside the query protocol.
func (k *Key) scratch(op, name string, n int) ([]byte, func(), error) {
	b, err := k.opts.alloc.Alloc(n)
	if err != nil {
		return nil, nil, resourceError(op, name, uint32(n), err)
	}
	return b, func() { k.opts.alloc.Free(b) }, nil
}
