// Package config loads regctl settings from TOML. Command-line flags override
// anything set here.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/joshuapare/regkit/pkg/types"
)

// Backend names accepted in [store] backend.
const (
	BackendBolt    = "bolt"
	BackendMemory  = "memory"
	BackendWindows = "windows"
)

// DefaultPath is the config file read when no path is given.
const DefaultPath = "~/.regctl/config.toml"

type Config struct {
	Store  StoreConfig  `toml:"store"`
	Log    LogConfig    `toml:"log"`
	Limits LimitsConfig `toml:"limits"`
}

type StoreConfig struct {
	Backend  string `toml:"backend"`
	Path     string `toml:"path"`
	ReadOnly bool   `toml:"read_only"`
	NoSync   bool   `toml:"no_sync"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// LimitsConfig mirrors types.Limits. Zero fields keep the preset's value.
type LimitsConfig struct {
	Strict          bool `toml:"strict"`
	MaxKeyNameLen   int  `toml:"max_key_name_len"`
	MaxValueNameLen int  `toml:"max_value_name_len"`
	MaxValueSize    int  `toml:"max_value_size"`
	MaxPathDepth    int  `toml:"max_path_depth"`
	MemoryBudget    int  `toml:"memory_budget"`
}

// Defaults returns a Config with sane defaults.
func Defaults() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: BackendBolt,
			Path:    "~/.regctl/registry.db",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load reads a TOML config file over the defaults. An empty path reads
// DefaultPath if it exists and returns the defaults otherwise.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path == "" {
		path = ExpandHome(DefaultPath)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parsing config: unknown key %q", undecoded[0].String())
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	var errs []error
	switch c.Store.Backend {
	case BackendBolt:
		if c.Store.Path == "" {
			errs = append(errs, errors.New("store.path is required for the bolt backend"))
		}
	case BackendMemory, BackendWindows:
	default:
		errs = append(errs, fmt.Errorf("store.backend %q: want %s, %s or %s",
			c.Store.Backend, BackendBolt, BackendMemory, BackendWindows))
	}

	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q: want text or json", c.Log.Format))
	}

	l := c.Limits
	for name, v := range map[string]int{
		"max_key_name_len":   l.MaxKeyNameLen,
		"max_value_name_len": l.MaxValueNameLen,
		"max_value_size":     l.MaxValueSize,
		"max_path_depth":     l.MaxPathDepth,
		"memory_budget":      l.MemoryBudget,
	} {
		if v < 0 {
			errs = append(errs, fmt.Errorf("limits.%s must not be negative", name))
		}
	}
	return errors.Join(errs...)
}

// RegistryLimits resolves the configured limits against their preset.
func (c *Config) RegistryLimits() types.Limits {
	out := types.DefaultLimits()
	if c.Limits.Strict {
		out = types.StrictLimits()
	}
	if c.Limits.MaxKeyNameLen > 0 {
		out.MaxKeyNameLen = c.Limits.MaxKeyNameLen
	}
	if c.Limits.MaxValueNameLen > 0 {
		out.MaxValueNameLen = c.Limits.MaxValueNameLen
	}
	if c.Limits.MaxValueSize > 0 {
		out.MaxValueSize = c.Limits.MaxValueSize
	}
	if c.Limits.MaxPathDepth > 0 {
		out.MaxPathDepth = c.Limits.MaxPathDepth
	}
	return out
}

// ExpandHome resolves a leading ~/ to the user's home directory.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
