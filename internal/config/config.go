// Package config loads the optional CLI configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the circuitcube CLI configuration.
type Config struct {
	// Address pins the CLI to a known device, skipping the scan.
	Address string `yaml:"address"`
	// ScanTimeoutSeconds bounds device discovery.
	ScanTimeoutSeconds int `yaml:"scan_timeout_seconds"`
	// JournalPath enables command journaling when non-empty.
	JournalPath string `yaml:"journal_path"`
	Verbose     bool   `yaml:"verbose"`
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".circuitcube", "config.yaml")
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		ScanTimeoutSeconds: 10,
	}
}

// Load reads and parses a YAML config file. Missing fields keep their
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads the config at path when it exists, falling back to
// defaults when path is empty or the file is absent.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks the config for invalid values.
func (c *Config) Validate() error {
	if c.ScanTimeoutSeconds <= 0 {
		return fmt.Errorf("scan_timeout_seconds must be positive, got %d", c.ScanTimeoutSeconds)
	}
	return nil
}

// ScanTimeout returns the discovery timeout as a duration.
func (c *Config) ScanTimeout() time.Duration {
	return time.Duration(c.ScanTimeoutSeconds) * time.Second
}
