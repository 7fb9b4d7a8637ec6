// Package winstore serves the registry access layer from the live Windows
// registry through golang.org/x/sys/windows/registry.
//
// Paths start with a predefined root: HKLM, HKCU, HKCR, HKU or HKCC (or the
// long HKEY_* spelling), or the native \Registry\Machine and \Registry\User
// prefixes. The package is empty on other platforms.
package winstore
