package store

import (
	"strings"
)

// Separator is the canonical separator used when joining key path components.
const Separator = "/"

// SplitPath splits a key path on forward or backward slashes, dropping empty
// components, so "\\Registry\\Machine" and "Registry/Machine/" agree.
func SplitPath(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	})
}

// JoinPath joins components with Separator. Components may themselves hold
// separators; the result is normalized through SplitPath.
func JoinPath(parts ...string) string {
	var out []string
	for _, p := range parts {
		out = append(out, SplitPath(p)...)
	}
	return strings.Join(out, Separator)
}

// Fold returns the case-folded form of a key or value name. Names compare
// case-insensitively in every store.
func Fold(name string) string {
	return strings.ToLower(name)
}
