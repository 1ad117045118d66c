// Package config provides configuration management for ssss.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration shared by
// ssss-split and ssss-combine. It supplies defaults for the flags
// described in spec.md §6; every field can be overridden by an
// environment variable (env.go) or a command-line flag, in that
// precedence order (flag > env > config file > Defaults()).
type Config struct {
	Version int    `yaml:"version"`
	Home    string `yaml:"home"`

	Security SecurityConfig `yaml:"security"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`

	// Warnings is not serialized. Load and ApplyEnvironment do not add
	// to it (an unparsable environment override is ignored silently),
	// and the CLI layer does not print it.
	Warnings []string `yaml:"-"`
}

// SecurityConfig mirrors the split/combine security-related flags.
type SecurityConfig struct {
	// DefaultLevel is used when -s/--security-level is 0 (auto-derive).
	// Zero means "derive from secret length" per spec.md §4.9.
	DefaultLevel int `yaml:"default_level"`

	// Diffusion enables the XTEA-based all-or-nothing transform by
	// default; -D disables it for a single invocation.
	Diffusion bool `yaml:"diffusion"`

	// RequireMemoryLock (-M) makes the CLI lock all process memory at
	// startup and abort if that fails. When it is false no process-wide
	// lock is attempted and no warning is printed.
	RequireMemoryLock bool `yaml:"require_memory_lock"`

	// DefaultToken is used when -w/--token is not given.
	DefaultToken string `yaml:"default_token"`
}

// OutputConfig controls hex vs ASCII rendering and quietness.
type OutputConfig struct {
	Hex    bool `yaml:"hex"`
	Quiet  bool `yaml:"quiet"`
	Silent bool `yaml:"silent"`
	// QR is loaded and saved with the configuration but the CLI does
	// not read it: shares are rendered as terminal QR codes whenever
	// stdout is a TTY and -Q is not given.
	QR bool `yaml:"qr"`
	// Format selects "text", "json", or "auto" for the share/secret
	// output; error diagnostics are always text.
	Format string `yaml:"format"`
}

// LoggingConfig controls the debug/error log sink.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads configuration from path, applying Defaults() first so
// that a partial YAML document still yields a fully populated Config.
func Load(path string) (*Config, error) {
	// #nosec G304 -- config file path is derived from the home directory, not arbitrary user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to path, creating parent directories as
// needed.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// Path returns the default config file path under home.
func Path(home string) string {
	return filepath.Join(home, "config.yaml")
}

// GetHome returns the ssss home directory.
func (c *Config) GetHome() string {
	return c.Home
}

// DefaultHome returns the default ssss home directory (~/.ssss).
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ssss"
	}
	return filepath.Join(home, ".ssss")
}
