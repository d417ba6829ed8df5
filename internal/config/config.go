// Package config loads the optional config.yaml stored next to the day ledgers.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/faizmokh/jejak/internal/ledger"
)

// Config holds user preferences.
type Config struct {
	// Backups copies a day ledger aside before each rewrite.
	Backups bool `yaml:"backups"`
	// BackupLimit is the number of backups kept per day; 0 keeps all.
	BackupLimit int `yaml:"backup_limit"`
	// DayEnd closes the open entry when reading a day other than today.
	DayEnd string `yaml:"day_end"`
}

// DefaultConfig returns the settings used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Backups:     true,
		BackupLimit: 10,
		DayEnd:      "23:59",
	}
}

// Load reads path, falling back to DefaultConfig when the file is absent.
// Keys missing from the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate checks values that cannot be expressed in the YAML types alone.
func (c *Config) Validate() error {
	if c.BackupLimit < 0 {
		return fmt.Errorf("backup_limit must not be negative, got %d", c.BackupLimit)
	}
	if _, err := c.DayEndClock(); err != nil {
		return fmt.Errorf("day_end: %w", err)
	}
	return nil
}

// DayEndClock parses DayEnd.
func (c *Config) DayEndClock() (ledger.SimpleTime, error) {
	return ledger.ParseClock(c.DayEnd)
}

// BackupPolicy translates the backup settings for ledger.Store.
func (c *Config) BackupPolicy() ledger.BackupPolicy {
	return ledger.BackupPolicy{Enabled: c.Backups, Limit: c.BackupLimit}
}
