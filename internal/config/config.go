// Package config reads the optional YAML settings file. Command-line flags
// override anything set here.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/elevate/internal/constants"
)

type LogConfig struct {
	MaxSizeMB  int `yaml:"max_size_mb"`
	MaxBackups int `yaml:"max_backups"`
	MaxAgeDays int `yaml:"max_age_days"`
}

type BadgerConfig struct {
	SyncWrites     *bool   `yaml:"sync_writes,omitempty"`
	GCDiscardRatio float64 `yaml:"gc_discard_ratio"`
}

type Config struct {
	Backend string       `yaml:"backend"`
	Path    string       `yaml:"path"`
	Debug   bool         `yaml:"debug"`
	Log     LogConfig    `yaml:"log"`
	Badger  BadgerConfig `yaml:"badger"`
	// AutoBackup snapshots the sqlite database when the dashboard starts.
	AutoBackup *bool `yaml:"auto_backup,omitempty"`
}

func Default() Config {
	return Config{
		Backend: constants.BackendSQLite,
		Path:    constants.DefaultConfigPath,
		Log: LogConfig{
			MaxSizeMB:  constants.DefaultLogMaxSizeMB,
			MaxBackups: constants.DefaultLogMaxBackups,
			MaxAgeDays: constants.DefaultLogMaxAgeDays,
		},
		Badger: BadgerConfig{GCDiscardRatio: 0.5},
	}
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read settings file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("invalid settings file %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg Config) error {
	path = ExpandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	switch c.Backend {
	case constants.BackendSQLite, constants.BackendJSON, constants.BackendBadger, constants.BackendPostgres:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		return errors.New("log retention values must not be negative")
	}
	if c.Badger.GCDiscardRatio < 0 || c.Badger.GCDiscardRatio > 1 {
		return errors.New("badger.gc_discard_ratio must be between 0 and 1")
	}
	return nil
}

// AutoBackupEnabled defaults to true when unset.
func (c Config) AutoBackupEnabled() bool {
	return c.AutoBackup == nil || *c.AutoBackup
}

// BadgerSyncWrites defaults to true when unset.
func (c Config) BadgerSyncWrites() bool {
	return c.Badger.SyncWrites == nil || *c.Badger.SyncWrites
}
