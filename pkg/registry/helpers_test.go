package registry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regkit/internal/alloc"
	"github.com/joshuapare/regkit/pkg/store"
	"github.com/joshuapare/regkit/pkg/store/memstore"
	"github.com/joshuapare/regkit/pkg/types"
)

// faultStore wraps a store and injects failures into individual primitives.
// It deliberately exposes only store.Store, so the optional interfaces of the
// wrapped store are hidden.
type faultStore struct {
	store.Store

	sizeFail    types.Status // QueryValueKey with an empty buffer
	sizeReport  uint32       // QueryValueKey with an empty buffer reports this size; 0 disables
	fetchFail   types.Status // QueryValueKey with a buffer
	beforeFetch func()       // runs before QueryValueKey with a buffer
	enumLimit   int          // EnumerateKey reports no more entries from here; 0 disables
}

func (f *faultStore) QueryValueKey(h store.Handle, name string, class types.KeyValueInformationClass, buf []byte) (uint32, error) {
	if buf == nil && f.sizeFail != types.StatusSuccess {
		return 0, f.sizeFail
	}
	if buf == nil && f.sizeReport > 0 {
		return f.sizeReport, types.StatusBufferTooSmall
	}
	if buf != nil {
		if f.beforeFetch != nil {
			f.beforeFetch()
		}
		if f.fetchFail != types.StatusSuccess {
			return 0, f.fetchFail
		}
	}
	return f.Store.QueryValueKey(h, name, class, buf)
}

func (f *faultStore) EnumerateKey(h store.Handle, index uint32, class types.KeyInformationClass, buf []byte) (uint32, error) {
	if f.enumLimit > 0 && int(index) >= f.enumLimit {
		return 0, types.StatusNoMoreEntries
	}
	return f.Store.EnumerateKey(h, index, class, buf)
}

// newTree returns a memstore with the given keys created.
func newTree(t *testing.T, paths ...string) *memstore.Store {
	t.Helper()
	s := memstore.New()
	for _, p := range paths {
		h, err := s.CreateKey(p)
		require.NoError(t, err)
		require.NoError(t, s.CloseKey(h))
	}
	return s
}

// openBudget opens path with a fresh unlimited Budget and checks on cleanup
// that every scratch buffer went back.
func openBudget(t *testing.T, s store.Store, path string, opts ...Option) (*Key, *alloc.Budget) {
	t.Helper()
	b := alloc.NewBudget(nil, 0)
	k, err := Open(s, path, append([]Option{WithAllocator(b)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() {
		st := b.Stats()
		require.Zero(t, st.Live, "scratch buffers leaked")
		require.Zero(t, st.Bytes)
	})
	return k, b
}

func requireKind(t *testing.T, err error, kind types.ErrKind) *types.Error {
	t.Helper()
	require.Error(t, err)
	var e *types.Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, kind, e.Kind, "error: %v", err)
	return e
}
