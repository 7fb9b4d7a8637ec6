package registry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func utf16z(units ...string) []byte {
	var out []byte
	for _, u := range units {
		for i := 0; i < len(u); i++ {
			out = append(out, u[i], 0)
		}
		out = append(out, 0, 0)
	}
	return out
}

func TestParseMultiString(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want []string
	}{
		{"empty data", nil, []string{}},
		{"terminator only", []byte{0, 0}, []string{}},
		{"one", utf16z("abc", ""), []string{"abc"}},
		{"two", utf16z("a", "bc", ""), []string{"a", "bc"}},
		{"trailing empty", utf16z("a", "bb", "", ""), []string{"a", "bb", ""}},
		{"inner empty", utf16z("x", "", "y", ""), []string{"x", "", "y"}},
		{"missing list terminator", utf16z("a", "b"), []string{"a", "b"}},
		{"no terminator at all", []byte{'a', 0, 'b', 0}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := parseMultiString(tt.data)
			require.Equal(t, tt.want, m.Strings())
			require.Equal(t, len(tt.want), m.Len())
		})
	}
}

func TestParseMultiString_DoesNotAlias(t *testing.T) {
	data := utf16z("abc", "")
	m := parseMultiString(data)
	data[0] = 'X'
	require.Equal(t, "abc", m.At(0))
}

func TestMultiString_Estimate(t *testing.T) {
	m := parseMultiString(utf16z("a", "b", ""))
	require.Equal(t, 2, m.Len())
	require.Equal(t, 3, m.Estimate())

	m = parseMultiString(utf16z("a", "b"))
	require.Equal(t, 2, m.Len())
	require.Equal(t, 2, m.Estimate())
}

func TestMultiString_AtOutOfRange(t *testing.T) {
	m := parseMultiString(utf16z("a", ""))
	require.Panics(t, func() { m.At(1) })
	require.Panics(t, func() { m.At(-1) })
}

func TestMultiString_AllStopsEarly(t *testing.T) {
	m := parseMultiString(utf16z("a", "b", "c", ""))
	var got []string
	for _, s := range m.All() {
		got = append(got, s)
		if len(got) == 2 {
			break
		}
	}
	require.Equal(t, []string{"a", "b"}, got)
}

func TestMultiString_Nil(t *testing.T) {
	var m *MultiString
	require.Zero(t, m.Len())
	require.Zero(t, m.Estimate())
	require.Empty(t, m.Strings())
}

func TestMultiString_UnpairedSurrogate(t *testing.T) {
	// "a", lone high surrogate, "b", then the terminators.
	data := []byte{'a', 0, 0x00, 0xD8, 'b', 0, 0, 0, 0, 0}
	m := parseMultiString(data)
	require.Equal(t, []string{"a\uFFFDb"}, m.Strings())
}
