// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "detzip.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Log.Level != "warn" {
		t.Errorf("expected log.level=warn, got %s", cfg.Log.Level)
	}
	if cfg.Log.Format != FormatAuto {
		t.Errorf("expected log.format=auto, got %s", cfg.Log.Format)
	}
	if cfg.Digest.BufferSize != 64*1024 {
		t.Errorf("expected digest.buffer_size=65536, got %d", cfg.Digest.BufferSize)
	}
	if cfg.Output.Format != OutputJSON {
		t.Errorf("expected output.format=json, got %s", cfg.Output.Format)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoad_RequiresEnvironmentVariable(t *testing.T) {
	t.Setenv(EnvironmentVariable, "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when DETZIP_CONFIG not set, got nil")
	}
	if !strings.HasPrefix(err.Error(), "DETZIP_CONFIG environment variable not set") {
		t.Errorf("unexpected error message: %q", err.Error())
	}
}

func TestLoad_WithEnvironmentVariable(t *testing.T) {
	t.Setenv(EnvironmentVariable, writeConfig(t, `
log:
  level: debug
`))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected log.level=debug, got %s", cfg.Log.Level)
	}
}

func TestLoadFile(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, `
log:
  level: info
  format: json

digest:
  buffer_size: 4096

output:
  format: external
`))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.Log.Level != "info" || cfg.Log.Format != FormatJSON {
		t.Errorf("log = %+v", cfg.Log)
	}
	if cfg.Digest.BufferSize != 4096 {
		t.Errorf("expected digest.buffer_size=4096, got %d", cfg.Digest.BufferSize)
	}
	if cfg.Output.Format != OutputExternal {
		t.Errorf("expected output.format=external, got %s", cfg.Output.Format)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadFile_PartialKeepsDefaults(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, "output:\n  format: external\n"))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Log.Level != "warn" || cfg.Digest.BufferSize != 64*1024 {
		t.Errorf("omitted keys lost their defaults: %+v", cfg)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadFile_Malformed(t *testing.T) {
	_, err := LoadFile(writeConfig(t, "log: [unclosed\n"))
	if err == nil {
		t.Fatal("expected error for malformed YAML")
	}
	if !strings.Contains(err.Error(), "parsing config") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadFile_ExpandsVariables(t *testing.T) {
	t.Setenv("DETZIP_TEST_LEVEL", "error")
	t.Setenv("DETZIP_TEST_UNSET", "")

	cfg, err := LoadFile(writeConfig(t, `
log:
  level: ${DETZIP_TEST_LEVEL}
  format: ${DETZIP_TEST_UNSET:-text}
`))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("expected expanded log.level=error, got %s", cfg.Log.Level)
	}
	if cfg.Log.Format != FormatText {
		t.Errorf("expected default-expanded log.format=text, got %s", cfg.Log.Format)
	}
}

func TestExpandVars(t *testing.T) {
	t.Setenv("DETZIP_TEST_SET", "value")
	t.Setenv("DETZIP_TEST_EMPTY", "")

	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"${DETZIP_TEST_SET}", "value"},
		{"${DETZIP_TEST_EMPTY}", ""},
		{"${DETZIP_TEST_EMPTY:-fallback}", "fallback"},
		{"${DETZIP_TEST_SET:-fallback}", "value"},
		{"a-${DETZIP_TEST_SET}-b", "a-value-b"},
	}
	for _, test := range tests {
		if got := expandVars(test.input); got != test.want {
			t.Errorf("expandVars(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "verbose"
	cfg.Log.Format = "xml"
	cfg.Digest.BufferSize = 0
	cfg.Output.Format = "yaml"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, field := range []string{"log.level", "log.format", "digest.buffer_size", "output.format"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("validation error does not mention %s: %v", field, err)
		}
	}
}
