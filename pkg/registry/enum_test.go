package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regkit/pkg/types"
)

func TestSubkeyCount_Zero(t *testing.T) {
	k, _ := openBudget(t, newTree(t, "Leaf"), "Leaf")
	defer k.Close()

	n, err := k.SubkeyCount()
	require.NoError(t, err)
	require.Zero(t, n)

	visited := 0
	require.NoError(t, k.ForEachSubkey(func(string) error {
		visited++
		return nil
	}))
	require.Zero(t, visited)

	names, err := k.Subkeys()
	require.NoError(t, err)
	require.Empty(t, names)
}

func TestForEachSubkey_Order(t *testing.T) {
	s := newTree(t, "R/c", "R/a", "R/b", "R/Ünïcode")
	k, _ := openBudget(t, s, "R")
	defer k.Close()

	names, err := k.Subkeys()
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c", "Ünïcode"}, names)
}

func TestForEachSubkey_VisitorErrorStops(t *testing.T) {
	s := newTree(t, "R/1", "R/2", "R/3", "R/4", "R/5")
	k, _ := openBudget(t, s, "R")
	defer k.Close()

	errStop := errors.New("stop here")
	var seen []string
	err := k.ForEachSubkey(func(name string) error {
		seen = append(seen, name)
		if len(seen) == 2 {
			return errStop
		}
		return nil
	})
	require.Same(t, errStop, err, "visitor error returned unchanged")
	require.Equal(t, []string{"1", "2"}, seen)
}

func TestForEachSubkey_ShrinkIsHardFailure(t *testing.T) {
	fs := &faultStore{Store: newTree(t, "R/a", "R/b", "R/c"), enumLimit: 1}
	k, _ := openBudget(t, fs, "R")
	defer k.Close()

	var seen []string
	err := k.ForEachSubkey(func(name string) error {
		seen = append(seen, name)
		return nil
	})
	e := requireKind(t, err, types.ErrKindStore)
	require.False(t, types.IsNotFound(err))
	require.Equal(t, types.StatusNoMoreEntries, e.Status)
	require.Equal(t, []string{"a"}, seen)
}

func TestSubkeyNameAt(t *testing.T) {
	k, _ := openBudget(t, newTree(t, "R/first", "R/second"), "R")
	defer k.Close()

	name, err := k.SubkeyNameAt(1)
	require.NoError(t, err)
	require.Equal(t, "second", name)

	_, err = k.SubkeyNameAt(2)
	e := requireKind(t, err, types.ErrKindNotFound)
	require.Equal(t, types.StatusNoMoreEntries, e.Status)
	require.Equal(t, "2", e.Name)
}
