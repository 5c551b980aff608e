// Package config loads and saves the application's TOML configuration
// file, consumed (not owned) by the core per spec — the core only
// defines the schema and round-trips it.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config is the on-disk configuration schema.
type Config struct {
	DefaultMode          string   `toml:"default_mode"`
	DefaultProfile       string   `toml:"default_profile"`
	StagingRetentionDays int      `toml:"staging_retention_days"`
	LargeFileThresholdMB int64    `toml:"large_file_threshold_mb"`
	StaleDays            int      `toml:"stale_days"`
	ExcludePaths         []string `toml:"exclude_paths"`
}

// Default returns the baseline configuration used when no file exists
// yet.
func Default() Config {
	return Config{
		DefaultMode:          "soft_delete",
		DefaultProfile:       "default",
		StagingRetentionDays: 30,
		LargeFileThresholdMB: 500,
		StaleDays:            30,
	}
}

// FileName is the configuration file's name under the data directory.
const FileName = "config.toml"

// Path returns the configuration file path under dataDir.
func Path(dataDir string) string {
	return filepath.Join(dataDir, FileName)
}

// Load reads the configuration file under dataDir, falling back to
// Default when the file does not exist.
func Load(dataDir string) (Config, error) {
	data, err := os.ReadFile(Path(dataDir))
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Save writes cfg to its file under dataDir, creating the directory if
// needed.
func Save(dataDir string, cfg Config) error {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	tmp := Path(dataDir) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, Path(dataDir))
}
