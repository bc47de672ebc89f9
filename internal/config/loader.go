package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/swigup/internal/domain/ranking"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SWIGUP_"

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if SWIGUP_CONFIG is set
//  3. env (prefix SWIGUP_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(EnvPrefix + "CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// SWIGUP_DB_PATH -> db_path. Underscores are kept to match the koanf tags.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, strings.ToLower(EnvPrefix))
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}
	// The file path itself is not a config key.
	k.Delete("config")

	cfg := *base
	// Lists from a file replace the defaults instead of merging element-wise.
	if k.Exists("roster") {
		cfg.Roster = nil
	}
	if k.Exists("manual_presets") {
		cfg.ManualPresets = nil
	}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first setting the service cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.StorageKey) == "" {
		return fmt.Errorf("%w: storage_key must not be empty", ErrInvalidConfig)
	}
	if c.ScanDefaultMl <= 0 || c.ScanStructuredDefaultMl <= 0 {
		return fmt.Errorf("%w: scan defaults must be positive", ErrInvalidConfig)
	}
	seen := make(map[string]bool, len(c.ManualPresets))
	for _, p := range c.ManualPresets {
		if p.Key == "" || p.AmountMl <= 0 {
			return fmt.Errorf("%w: preset %q must have a key and a positive amount", ErrInvalidConfig, p.Key)
		}
		key := strings.ToLower(p.Key)
		if seen[key] {
			return fmt.Errorf("%w: duplicate preset %q", ErrInvalidConfig, p.Key)
		}
		seen[key] = true
	}
	if err := ranking.ValidateRoster(c.Roster); err != nil {
		return fmt.Errorf("%w: roster: %w", ErrInvalidConfig, err)
	}
	if c.DedupeSize < 0 {
		return fmt.Errorf("%w: dedupe_size must not be negative", ErrInvalidConfig)
	}
	return nil
}
