package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regkit/internal/config"
	"github.com/joshuapare/regkit/internal/logging"
	"github.com/joshuapare/regkit/pkg/types"
)

func TestSetGet_Typed(t *testing.T) {
	useTempStore(t)

	setCreateKey = true
	mustRun(t, func() error { return runSet([]string{"Software/Vendor", "Name", "regkit"}) })
	setCreateKey = false

	tests := []struct {
		typ   string
		args  []string
		value string
		want  string
	}{
		{"dword", []string{"0x10"}, "Flags", "16 (0x00000010)\n"},
		{"multi_sz", []string{"a", "", "c"}, "Paths", "a\n\nc\n"},
		{"binary", []string{"01 02 ff"}, "Blob", "0102ff\n"},
		{"expand_sz", []string{"%TEMP%"}, "Tmp", "%TEMP%\n"},
		{"dword_be", []string{"258"}, "Big", "258 (0x00000102)\n"},
	}
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			setType = tt.typ
			mustRun(t, func() error {
				return runSet(append([]string{"Software/Vendor", tt.value}, tt.args...))
			})
			out := mustRun(t, func() error { return runGet([]string{"Software/Vendor", tt.value}) })
			assert.Equal(t, tt.want, out)
		})
	}

	setType = "sz"
	out := mustRun(t, func() error { return runGet([]string{`software\vendor`, "name"}) })
	assert.Equal(t, "regkit\n", out)
}

func TestGet_JSON(t *testing.T) {
	useTempStore(t)
	setCreateKey = true
	setType = "multi_sz"
	mustRun(t, func() error { return runSet([]string{"A", "List", "x", "y"}) })

	jsonOut = true
	out := mustRun(t, func() error { return runGet([]string{"A", "List"}) })
	got := decodeJSON(t, out)
	assert.Equal(t, "REG_MULTI_SZ", got["type"])
	assert.Equal(t, []any{"x", "y"}, got["value"])

	getAs = "raw"
	out = mustRun(t, func() error { return runGet([]string{"A", "List"}) })
	assert.Equal(t, "78000000790000000000", decodeJSON(t, out)["value"])
}

func TestGet_SizeMismatch(t *testing.T) {
	useTempStore(t)
	setCreateKey = true
	mustRun(t, func() error { return runSet([]string{"A", "s", "ab"}) })

	c := logging.CaptureForTest()
	defer c.Restore()

	getAs = "dword"
	_, err := captureOutput(t, func() error { return runGet([]string{"A", "s"}) })
	require.ErrorIs(t, err, types.ErrSizeMismatch)
	assert.True(t, c.Has(slog.LevelError, "decode value"))
}

func TestGet_MissingLogsAtDebug(t *testing.T) {
	useTempStore(t)
	mustRun(t, runMkkeyArgs("A"))

	c := logging.CaptureForTest()
	defer c.Restore()

	_, err := captureOutput(t, func() error { return runGet([]string{"A", "nope"}) })
	require.True(t, types.IsNotFound(err))
	assert.True(t, c.Has(slog.LevelDebug, "get value"))
	assert.False(t, c.Has(slog.LevelError, "get value"))

	v, ok := c.Attr("get value", "op")
	require.True(t, ok)
	assert.Equal(t, "query value", v.String())
}

func TestSet_Errors(t *testing.T) {
	useTempStore(t)

	_, err := captureOutput(t, func() error { return runSet([]string{"Missing", "v", "x"}) })
	require.True(t, types.IsNotFound(err), "key is not created without --create-key")

	setType = "bogus"
	_, err = captureOutput(t, func() error { return runSet([]string{"A", "v", "x"}) })
	require.Error(t, err)

	setType = "dword"
	_, err = captureOutput(t, func() error { return runSet([]string{"A", "v", "1", "2"}) })
	require.Error(t, err)
}

func TestKeys(t *testing.T) {
	useTempStore(t)
	for _, p := range []string{"R/b/deep", "R/a", "R/c"} {
		mustRun(t, runMkkeyArgs(p))
	}

	out := mustRun(t, func() error { return runKeys([]string{"R"}) })
	assert.Equal(t, "a\nb\nc\n", out)

	keysRecursive = true
	out = mustRun(t, func() error { return runKeys([]string{"R"}) })
	assert.Equal(t, "a\nb\nb/deep\nc\n", out)

	keysDepth = 1
	jsonOut = true
	out = mustRun(t, func() error { return runKeys([]string{"R"}) })
	got := decodeJSON(t, out)
	assert.Equal(t, float64(3), got["count"])

	jsonOut, keysRecursive = false, false
	out = mustRun(t, func() error { return runKeys(nil) })
	assert.Equal(t, "R\n", out)
}

func TestInfo(t *testing.T) {
	useTempStore(t)
	mustRun(t, runMkkeyArgs("A/child"))
	setType = "dword"
	mustRun(t, func() error { return runSet([]string{"A", "Count", "3"}) })

	jsonOut = true
	out := mustRun(t, func() error { return runInfo([]string{"A"}) })
	got := decodeJSON(t, out)
	assert.Equal(t, "A", got["path"])
	assert.Equal(t, float64(1), got["subkeys"])
	assert.Equal(t, float64(1), got["values"])
	assert.Equal(t, float64(4), got["max_value_data_len"])
}

func TestRm(t *testing.T) {
	useTempStore(t)
	mustRun(t, runMkkeyArgs("A/B"))
	mustRun(t, func() error { return runSet([]string{"A", "v", "x"}) })

	mustRun(t, func() error { return runRm([]string{"A", "v"}) })
	_, err := captureOutput(t, func() error { return runGet([]string{"A", "v"}) })
	require.True(t, types.IsNotFound(err))

	_, err = captureOutput(t, func() error { return runRm([]string{"A"}) })
	var e *types.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, types.StatusCannotDelete, e.Status)

	mustRun(t, func() error { return runRm([]string{"A/B"}) })
	out := mustRun(t, func() error { return runKeys([]string{"A"}) })
	assert.Empty(t, out)
}

func TestReadOnlyStore(t *testing.T) {
	useTempStore(t)
	mustRun(t, runMkkeyArgs("A"))
	cfg.Store.ReadOnly = true

	_, err := captureOutput(t, func() error { return runSet([]string{"A", "v", "x"}) })
	var e *types.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, types.StatusAccessDenied, e.Status)
}

func TestMemoryBudget(t *testing.T) {
	useTempStore(t)
	setCreateKey = true
	mustRun(t, func() error { return runSet([]string{"A", "v", "a fairly long string value"}) })

	cfg.Limits.MemoryBudget = 16
	_, err := captureOutput(t, func() error { return runGet([]string{"A", "v"}) })
	require.ErrorIs(t, err, types.ErrResource)
}

func TestMemoryBackend(t *testing.T) {
	useTempStore(t)
	cfg.Store.Backend = config.BackendMemory

	out := mustRun(t, runMkkeyArgs("Scratch"))
	assert.Equal(t, "Created Scratch\n", out)

	// Nothing survives between invocations.
	_, err := captureOutput(t, func() error { return runKeys([]string{"Scratch"}) })
	require.True(t, types.IsNotFound(err))
}

func runMkkeyArgs(path string) func() error {
	return func() error { return runMkkey([]string{path}) }
}
