// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and environment variables over those defaults.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"os"
	"path/filepath"

	"github.com/okian/swigup/internal/domain/intake"
	"github.com/okian/swigup/internal/domain/ranking"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DBPath is the sqlite file holding the saved profile.
	DBPath string `koanf:"db_path"`

	// StorageKey names the slot the profile is saved under.
	StorageKey string `koanf:"storage_key"`

	// ManualPresets are the fixed intake buttons.
	ManualPresets []intake.Preset `koanf:"manual_presets"`

	// ScanDefaultMl is credited when scanned text is not JSON.
	ScanDefaultMl int `koanf:"scan_default_ml"`

	// ScanStructuredDefaultMl is credited when scanned JSON has no usable amount.
	ScanStructuredDefaultMl int `koanf:"scan_structured_default_ml"`

	// Roster is the comparison community shown on the leaderboard.
	Roster []ranking.Entry `koanf:"roster"`

	// SelfSuffix is appended to the profile name on the leaderboard.
	SelfSuffix string `koanf:"self_suffix"`

	// DedupeSize bounds the number of remembered intake event ids.
	DedupeSize int `koanf:"dedupe_size"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:                "info",
		LogFormat:               "text",
		Addr:                    ":9080",
		DBPath:                  defaultDBPath(),
		StorageKey:              "swigup_user",
		ManualPresets:           intake.DefaultPresets(),
		ScanDefaultMl:           intake.DefaultScanMl,
		ScanStructuredDefaultMl: intake.DefaultStructuredScanMl,
		Roster:                  ranking.DefaultRoster(),
		SelfSuffix:              ranking.DefaultSelfSuffix,
		DedupeSize:              10_000,
	}
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "swigup.db"
	}
	return filepath.Join(dir, "swigup", "swigup.db")
}
