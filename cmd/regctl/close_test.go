package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regkit/pkg/registry"
	"github.com/joshuapare/regkit/pkg/store"
	"github.com/joshuapare/regkit/pkg/store/memstore"
	"github.com/joshuapare/regkit/pkg/types"
)

// closeFailStore releases handles normally but reports every close as failed.
type closeFailStore struct {
	*memstore.Store
}

func (s closeFailStore) CloseKey(h store.Handle) error {
	if err := s.Store.CloseKey(h); err != nil {
		return err
	}
	return types.StatusInvalidHandle
}

func memTree(t *testing.T, paths ...string) *memstore.Store {
	t.Helper()
	s := memstore.New()
	for _, p := range paths {
		h, err := s.CreateKey(p)
		require.NoError(t, err)
		require.NoError(t, s.CloseKey(h))
	}
	return s
}

func TestCollectKeys_ReportsSubkeyCloseFailure(t *testing.T) {
	useTempStore(t)
	keysRecursive = true

	mem := memTree(t, "A/B/C")
	k, err := registry.Open(closeFailStore{mem}, "A")
	require.NoError(t, err)

	var keys []keyEntry
	err = collectKeys(k, "", 1, &keys)
	var e *types.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, types.StatusInvalidHandle, e.Status)
	assert.Equal(t, "could not close", e.Msg)
	assert.Equal(t, []keyEntry{{Name: "B", Path: "B"}, {Name: "C", Path: "B/C"}}, keys)

	_ = k.Close()
	assert.Zero(t, mem.OpenHandles())
}

func TestRemoveKey_FailedDeleteStillCloses(t *testing.T) {
	useTempStore(t)

	mem := memTree(t, "A/B")
	err := removeKey(closeFailStore{mem}, "A")

	var e *types.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, types.StatusCannotDelete, e.Status, "delete error comes first")
	assert.ErrorContains(t, err, "could not close")
	assert.Zero(t, mem.OpenHandles())
}

func TestRemoveKey_Deletes(t *testing.T) {
	useTempStore(t)

	mem := memTree(t, "A/B")
	require.NoError(t, removeKey(mem, "A/B"))
	assert.Zero(t, mem.OpenHandles())

	_, err := registry.Open(mem, "A/B")
	assert.True(t, types.IsNotFound(err))
}
