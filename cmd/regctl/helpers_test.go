package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regkit/internal/config"
)

// useTempStore points the commands at a fresh bolt database and resets the
// global flags.
func useTempStore(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reg.db")

	c := config.Defaults()
	c.Store.Path = path
	c.Store.NoSync = true
	cfg = c

	verbose, quiet, jsonOut = false, false, false
	keysRecursive, keysDepth = false, 0
	getAs = ""
	setType, setCreateKey = "sz", false
	return path
}

// captureOutput runs fn with stdout redirected to a buffer.
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	defer func() { stdout = prev }()

	err := fn()
	return buf.String(), err
}

// decodeJSON parses command output into a map.
func decodeJSON(t *testing.T, output string) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &out), "output: %s", output)
	return out
}

// mustRun runs fn and fails the test on error.
func mustRun(t *testing.T, fn func() error) string {
	t.Helper()
	out, err := captureOutput(t, fn)
	require.NoError(t, err)
	return out
}
