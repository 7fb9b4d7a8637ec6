package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regkit/pkg/types"
)

func TestSplitPath(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"/", []string{}},
		{"Software", []string{"Software"}},
		{`\Registry\Machine\Software`, []string{"Registry", "Machine", "Software"}},
		{"a//b/", []string{"a", "b"}},
		{`a\b/c`, []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := SplitPath(tt.in)
			if len(tt.want) == 0 {
				require.Empty(t, got)
				return
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestJoinPath(t *testing.T) {
	require.Equal(t, "a/b/c", JoinPath("a", `b\c`))
	require.Equal(t, "a", JoinPath("", "a", "/"))
	require.Equal(t, "", JoinPath())
}

func TestFold(t *testing.T) {
	require.Equal(t, Fold("SOFTWARE"), Fold("Software"))
}

func TestRespond(t *testing.T) {
	block := []byte{1, 2, 3, 4, 5, 6}

	need, err := Respond(nil, block, 4)
	require.Equal(t, uint32(6), need)
	require.ErrorIs(t, err, types.StatusBufferTooSmall)

	buf := make([]byte, 4)
	need, err = Respond(buf, block, 4)
	require.Equal(t, uint32(6), need)
	require.ErrorIs(t, err, types.StatusBufferOverflow)
	require.Equal(t, []byte{1, 2, 3, 4}, buf)

	buf = make([]byte, 6)
	need, err = Respond(buf, block, 4)
	require.NoError(t, err)
	require.Equal(t, uint32(6), need)
	require.Equal(t, block, buf)
}
