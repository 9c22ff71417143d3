// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for detzip.
//
// Configuration is loaded from a single file specified by either the
// DETZIP_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no ~/.config discovery and no automatic
// file search. A run with neither uses [Default], which is a complete
// configuration.
//
// Variable expansion is performed on string fields after loading:
// ${VAR} and ${VAR:-default} patterns are expanded from the process
// environment. No environment variable overrides a config value
// directly.
//
// Key exports:
//
//   - [Config] -- master struct with Log, Digest, Output
//   - [Default] -- the built-in configuration
//   - [Load] and [LoadFile] -- the two entry points for loading
//   - [Config.Validate] -- reports every invalid field at once
//
// This package depends on no other detzip packages.
package config
