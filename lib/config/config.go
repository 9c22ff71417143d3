// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "DETZIP_CONFIG"

// Log formats.
const (
	// FormatAuto selects text when stderr is a terminal and JSON
	// otherwise.
	FormatAuto = "auto"
	FormatText = "text"
	FormatJSON = "json"
)

// Output formats.
const (
	// OutputJSON reports lists as JSON arrays.
	OutputJSON = "json"
	// OutputExternal reports every value as a string, with lists
	// JSON-encoded, for callers that accept only a flat string map.
	OutputExternal = "external"
)

// Config is the detzip configuration.
type Config struct {
	// Log configures the driver's structured logger.
	Log LogConfig `yaml:"log"`

	// Digest configures archive digesting.
	Digest DigestConfig `yaml:"digest"`

	// Output configures the result document.
	Output OutputConfig `yaml:"output"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: warn
	Level string `yaml:"level"`

	// Format is one of auto, text, json.
	// Default: auto
	Format string `yaml:"format"`
}

// DigestConfig configures archive digesting.
type DigestConfig struct {
	// BufferSize is the read chunk size in bytes. It never changes the
	// digests.
	// Default: 65536
	BufferSize int `yaml:"buffer_size"`
}

// OutputConfig configures the result document.
type OutputConfig struct {
	// Format is one of json, external.
	// Default: json
	Format string `yaml:"format"`
}

// Default returns the default configuration. It is complete on its
// own: running without a config file uses exactly these values.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "warn",
			Format: FormatAuto,
		},
		Digest: DigestConfig{
			BufferSize: 64 * 1024,
		},
		Output: OutputConfig{
			Format: OutputJSON,
		},
	}
}

// Load loads configuration from the file named by DETZIP_CONFIG. It
// fails if the variable is not set; callers that want defaults in that
// case check the variable themselves.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of a detzip.yaml config file, or use --config", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from path over the defaults. Keys the
// file omits keep their default values. ${VAR} and ${VAR:-default}
// patterns in string values are expanded from the environment.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.expandVariables()
	return cfg, nil
}

func (c *Config) expandVariables() {
	c.Log.Level = expandVars(c.Log.Level)
	c.Log.Format = expandVars(c.Log.Format)
	c.Output.Format = expandVars(c.Output.Format)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns from the
// environment. An unset or empty variable without a default expands to
// the empty string.
func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		return parts[2]
	})
}

// Validate checks the configuration for errors. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", c.Log.Level))
	}
	if !slices.Contains([]string{FormatAuto, FormatText, FormatJSON}, c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format must be one of auto, text, json; got %q", c.Log.Format))
	}
	if c.Digest.BufferSize <= 0 {
		errs = append(errs, fmt.Errorf("digest.buffer_size must be positive; got %d", c.Digest.BufferSize))
	}
	if !slices.Contains([]string{OutputJSON, OutputExternal}, c.Output.Format) {
		errs = append(errs, fmt.Errorf("output.format must be one of json, external; got %q", c.Output.Format))
	}

	return errors.Join(errs...)
}
