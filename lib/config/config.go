// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the configuration file when no --config
// flag is given.
const EnvironmentVariable = "SLIMBOOK_CONFIG"

// Config is the configuration for slimbook tools.
type Config struct {
	// Paths locates the kernel interfaces. Overriding them points the
	// tools at a captured tree instead of the live system.
	Paths PathsConfig `yaml:"paths"`

	// SMU configures mailbox timing.
	SMU SMUConfig `yaml:"smu"`

	// TDP configures power table decoding.
	TDP TDPConfig `yaml:"tdp"`

	// Log configures diagnostic output.
	Log LogConfig `yaml:"log"`
}

// PathsConfig locates kernel interfaces.
type PathsConfig struct {
	// SysRoot is the sysfs mount point.
	// Default: /sys
	SysRoot string `yaml:"sys_root"`

	// ProcRoot is the procfs mount point.
	// Default: /proc
	ProcRoot string `yaml:"proc_root"`

	// DevMem is the physical memory device the power table is mapped
	// through.
	// Default: /dev/mem
	DevMem string `yaml:"dev_mem"`

	// MSRDevice is the msr device read on Intel systems without
	// powercap.
	// Default: /dev/cpu/0/msr
	MSRDevice string `yaml:"msr_device"`
}

// SMUConfig configures SMU mailbox timing.
type SMUConfig struct {
	// PollInterval is the sleep between response register reads.
	// Default: 50us
	PollInterval time.Duration `yaml:"poll_interval"`

	// Timeout bounds the wait for one response.
	// Default: 2s
	Timeout time.Duration `yaml:"timeout"`

	// RetryDelay is the pause before retrying a busy refresh.
	// Default: 200ms
	RetryDelay time.Duration `yaml:"retry_delay"`
}

// TDPConfig configures power table decoding.
type TDPConfig struct {
	// Layout selects the table layout: "full" reads three limits,
	// "single" reads the fast limit only.
	// Default: full
	Layout string `yaml:"layout"`

	// Design forces a CPU design name (for example "phoenix") instead
	// of detecting one. Empty means detect.
	Design string `yaml:"design"`
}

// LogConfig configures diagnostic output.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: info
	Level string `yaml:"level"`
}

var (
	layouts   = []string{"full", "single"}
	logLevels = []string{"debug", "info", "warn", "error"}
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			SysRoot:   "/sys",
			ProcRoot:  "/proc",
			DevMem:    "/dev/mem",
			MSRDevice: "/dev/cpu/0/msr",
		},
		SMU: SMUConfig{
			PollInterval: 50 * time.Microsecond,
			Timeout:      2 * time.Second,
			RetryDelay:   200 * time.Millisecond,
		},
		TDP: TDPConfig{
			Layout: "full",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the file named by SLIMBOOK_CONFIG. It
// fails if the variable is not set; use [Resolve] for the fallback to
// defaults.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your slimbook.yaml config file, or use --config flag", EnvironmentVariable)
	}

	return LoadFile(configPath)
}

// Resolve returns the configuration from flagPath if non-empty, else
// from SLIMBOOK_CONFIG if set, else [Default].
func Resolve(flagPath string) (*Config, error) {
	if flagPath != "" {
		return LoadFile(flagPath)
	}
	if os.Getenv(EnvironmentVariable) != "" {
		return Load()
	}
	cfg := Default()
	cfg.expandVariables()
	return cfg, nil
}

// LoadFile loads configuration from a specific file path. Fields the
// file does not mention keep their defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.expandVariables()

	return cfg, nil
}

// loadFile merges a single configuration file into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil {
		// An empty file decodes to nothing and keeps the defaults.
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Paths.SysRoot = expandVars(c.Paths.SysRoot, vars)
	c.Paths.ProcRoot = expandVars(c.Paths.ProcRoot, vars)
	c.Paths.DevMem = expandVars(c.Paths.DevMem, vars)
	c.Paths.MSRDevice = expandVars(c.Paths.MSRDevice, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors. Design names are
// checked by the consumer, which owns the design table.
func (c *Config) Validate() error {
	var errs []error

	for _, field := range []struct{ key, value string }{
		{"paths.sys_root", c.Paths.SysRoot},
		{"paths.proc_root", c.Paths.ProcRoot},
		{"paths.dev_mem", c.Paths.DevMem},
		{"paths.msr_device", c.Paths.MSRDevice},
	} {
		if field.value == "" {
			errs = append(errs, fmt.Errorf("%s is required", field.key))
		}
	}

	if c.SMU.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("smu.poll_interval must be positive, got %v", c.SMU.PollInterval))
	}
	if c.SMU.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("smu.timeout must be positive, got %v", c.SMU.Timeout))
	} else if c.SMU.Timeout < c.SMU.PollInterval {
		errs = append(errs, fmt.Errorf("smu.timeout (%v) is shorter than smu.poll_interval (%v)", c.SMU.Timeout, c.SMU.PollInterval))
	}
	if c.SMU.RetryDelay <= 0 {
		errs = append(errs, fmt.Errorf("smu.retry_delay must be positive, got %v", c.SMU.RetryDelay))
	}

	if !slices.Contains(layouts, c.TDP.Layout) {
		errs = append(errs, fmt.Errorf("tdp.layout must be one of: %v", layouts))
	}
	if !slices.Contains(logLevels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of: %v", logLevels))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
