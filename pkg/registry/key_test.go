package registry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regkit/pkg/types"
)

func TestOpen_NotFound(t *testing.T) {
	s := newTree(t, "Software")

	_, err := Open(s, "Software/Missing")
	require.True(t, types.IsNotFound(err))
	require.ErrorIs(t, err, types.ErrNotFound)

	e := requireKind(t, err, types.ErrKindNotFound)
	require.Equal(t, "open key", e.Op)
	require.Equal(t, "Software/Missing", e.Name)
	require.Equal(t, types.StatusObjectNameNotFound, e.Status)
}

func TestOpen_NormalizesPath(t *testing.T) {
	s := newTree(t, "Software/Vendor")

	k, err := Open(s, `\Software\Vendor\`)
	require.NoError(t, err)
	require.Equal(t, "Software/Vendor", k.Path())
	require.NoError(t, k.Close())

	k, err = OpenPath(s, []string{"Software", "Vendor"})
	require.NoError(t, err)
	require.NoError(t, k.Close())
}

func TestOpenClose_Repeated(t *testing.T) {
	s := newTree(t, "A/B")
	for range 2 {
		k, err := Open(s, "A/B")
		require.NoError(t, err)
		require.NoError(t, k.Close())
	}
	require.Zero(t, s.OpenHandles())
}

func TestClose_Twice(t *testing.T) {
	s := newTree(t, "A")
	k, err := Open(s, "A")
	require.NoError(t, err)

	require.False(t, k.Closed())
	require.NoError(t, k.Close())
	require.True(t, k.Closed())
	err = k.Close()
	requireKind(t, err, types.ErrKindState)
	require.ErrorIs(t, err, types.ErrClosed)
	require.Zero(t, s.OpenHandles(), "handle released exactly once")
}

func TestClosedKey_RejectsOperations(t *testing.T) {
	s := newTree(t, "A")
	k, err := Open(s, "A")
	require.NoError(t, err)
	require.NoError(t, k.Close())

	_, err = k.SubkeyCount()
	require.ErrorIs(t, err, types.ErrClosed)
	_, err = k.String("x")
	require.ErrorIs(t, err, types.ErrClosed)
	_, err = k.SubkeyNameAt(0)
	require.ErrorIs(t, err, types.ErrClosed)
	require.ErrorIs(t, k.SetDWORD("x", 1), types.ErrClosed)
	require.ErrorIs(t, k.SetStringArray("x", nil), types.ErrClosed)
	require.ErrorIs(t, k.DeleteValue("x"), types.ErrClosed)
	require.ErrorIs(t, k.Delete(), types.ErrClosed)
	_, err = k.OpenSubkey("B")
	require.ErrorIs(t, err, types.ErrClosed)
}

func TestCreate_AndSubkeys(t *testing.T) {
	s := newTree(t)

	k, err := Create(s, "Software/Vendor")
	require.NoError(t, err)
	defer k.Close()

	child, err := k.CreateSubkey("Product/Settings")
	require.NoError(t, err)
	require.Equal(t, "Software/Vendor/Product/Settings", child.Path())
	require.NoError(t, child.Close())

	again, err := k.OpenSubkey(`Product\Settings`)
	require.NoError(t, err)
	require.NoError(t, again.Close())
}

func TestCreate_Unsupported(t *testing.T) {
	fs := &faultStore{Store: newTree(t)}
	_, err := Create(fs, "A")
	requireKind(t, err, types.ErrKindUnsupported)
	require.ErrorIs(t, err, types.ErrUnsupported)
}

func TestDelete(t *testing.T) {
	s := newTree(t, "A/B")

	parent, err := Open(s, "A")
	require.NoError(t, err)
	defer parent.Close()

	e := requireKind(t, parent.Delete(), types.ErrKindStore)
	require.Equal(t, types.StatusCannotDelete, e.Status)

	child, err := parent.OpenSubkey("B")
	require.NoError(t, err)
	require.NoError(t, child.Delete())
	require.ErrorIs(t, child.Close(), types.ErrClosed, "Delete closes the key")

	n, err := parent.SubkeyCount()
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestLimits(t *testing.T) {
	s := newTree(t, "A")

	_, err := Open(s, strings.Repeat("x", 256))
	requireKind(t, err, types.ErrKindLimit)

	_, err = Open(s, "a/b/c", WithLimits(types.Limits{MaxPathDepth: 2}))
	require.ErrorIs(t, err, types.ErrLimit)

	k, err := Open(s, "A", WithLimits(types.Limits{MaxValueNameLen: 4, MaxValueSize: 8}))
	require.NoError(t, err)
	defer k.Close()

	require.ErrorIs(t, k.SetDWORD("toolong", 1), types.ErrLimit)
	require.ErrorIs(t, k.SetString("v", "abcd"), types.ErrLimit, "10 bytes with terminator")
	require.NoError(t, k.SetString("v", "abc"))
}

func TestInfo(t *testing.T) {
	s := newTree(t, "A/one", "A/three")
	require.NoError(t, s.SetClass("A", "Shell"))

	k, _ := openBudget(t, s, "A")
	defer k.Close()
	require.NoError(t, k.SetDWORD("Count", 7))

	info, err := k.Info()
	require.NoError(t, err)
	require.Equal(t, uint32(2), info.SubkeyCount)
	require.Equal(t, uint32(1), info.ValueCount)
	require.Equal(t, uint32(10), info.MaxSubkeyNameLen)
	require.Equal(t, uint32(10), info.MaxValueNameLen)
	require.Equal(t, uint32(4), info.MaxValueDataLen)
	require.Equal(t, "Shell", info.Class)
	require.False(t, info.LastWrite.IsZero())
}
