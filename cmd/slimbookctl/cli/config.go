// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"

	"github.com/bureau-foundation/slimbook/lib/config"
)

// ConfigFile adds a --config flag to a params struct.
type ConfigFile struct {
	ConfigPath string `json:"-" flag:"config" desc:"path to slimbook.yaml (default: $SLIMBOOK_CONFIG, then built-in defaults)"`
}

// Load resolves and validates the configuration, and returns a logger
// at the configured level. logger is used until the level is known
// and is returned unchanged when the level matches the default.
func (f *ConfigFile) Load(logger *slog.Logger) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Resolve(f.ConfigPath)
	if err != nil {
		return nil, logger, Validation("loading configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, logger, Validation("invalid configuration: %w", err)
	}

	level, err := ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, logger, Validation("log.level: %w", err)
	}
	if level != slog.LevelInfo {
		logger = NewCommandLogger(level)
	}
	logger.Debug("configuration loaded", "config", f.ConfigPath, "sys_root", cfg.Paths.SysRoot)
	return cfg, logger, nil
}
