package types

// ============================================================================
// Registry Limits Constants
// ============================================================================
// These constants define the limits imposed by the Windows registry. Stores
// with looser constraints still get checked against them so that data written
// through any backend remains loadable by the native one.

const (
	// WindowsMaxKeyNameLen is the hard limit for registry key names
	// in Windows (measured in characters, not bytes).
	WindowsMaxKeyNameLen = 255

	// WindowsMaxValueNameLen is the hard limit for registry value names
	// in Windows (measured in characters, not bytes).
	WindowsMaxValueNameLen = 16383

	// WindowsMaxValueNameLenSmall is a much smaller limit for strict
	// validation scenarios.
	WindowsMaxValueNameLenSmall = 255

	// WindowsMaxValueSize1MB is the standard maximum size for a single
	// registry value's data (1 MB).
	WindowsMaxValueSize1MB = 1 << 20

	// WindowsMaxValueSize64KB is a conservative maximum for
	// resource-constrained environments.
	WindowsMaxValueSize64KB = 64 << 10

	// WindowsMaxPathDepth is the maximum number of key levels below a root.
	WindowsMaxPathDepth = 512
)

// Limits defines constraints checked before a request reaches the store.
type Limits struct {
	// MaxKeyNameLen is the maximum length of one key path component in
	// UTF-16 code units.
	MaxKeyNameLen int

	// MaxValueNameLen is the maximum length of a value name in UTF-16 code units.
	MaxValueNameLen int

	// MaxValueSize is the maximum size of a single value's data in bytes.
	MaxValueSize int

	// MaxPathDepth is the maximum number of components in a key path.
	MaxPathDepth int
}

// DefaultLimits returns the standard Windows registry limits.
func DefaultLimits() Limits {
	return Limits{
		MaxKeyNameLen:   WindowsMaxKeyNameLen,
		MaxValueNameLen: WindowsMaxValueNameLen,
		MaxValueSize:    WindowsMaxValueSize1MB,
		MaxPathDepth:    WindowsMaxPathDepth,
	}
}

// StrictLimits returns conservative limits for constrained environments.
func StrictLimits() Limits {
	return Limits{
		MaxKeyNameLen:   WindowsMaxKeyNameLen,
		MaxValueNameLen: WindowsMaxValueNameLenSmall,
		MaxValueSize:    WindowsMaxValueSize64KB,
		MaxPathDepth:    WindowsMaxPathDepth / 4,
	}
}
