// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/bureau-foundation/detzip/lib/config"
)

// newLogger creates the driver's structured logger on w. With format
// auto, a terminal gets slog.TextHandler for human-readable output and
// anything else (CI, scripts, external-data-source callers) gets
// slog.JSONHandler.
func newLogger(logConfig config.LogConfig, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logConfig.Level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	options := &slog.HandlerOptions{Level: level}

	format := logConfig.Format
	if format == config.FormatAuto {
		format = config.FormatJSON
		if isTerminal(w) {
			format = config.FormatText
		}
	}

	var handler slog.Handler
	switch format {
	case config.FormatText:
		handler = slog.NewTextHandler(w, options)
	case config.FormatJSON:
		handler = slog.NewJSONHandler(w, options)
	default:
		return nil, fmt.Errorf("unknown log format %q", logConfig.Format)
	}
	return slog.New(handler), nil
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
