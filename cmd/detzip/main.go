// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/detzip/lib/archive"
	"github.com/bureau-foundation/detzip/lib/config"
	"github.com/bureau-foundation/detzip/lib/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		os.Exit(exitBuildFailure)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	// Handle --version before anything else.
	for _, argument := range args {
		if argument == "--version" {
			fmt.Fprintf(stdout, "detzip %s\n", version.Info())
			return nil
		}
	}

	var (
		source     requestSource
		configPath string
		format     string
		logLevel   string
	)
	flagSet := pflag.NewFlagSet("detzip", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&source.sourceDir, "source-dir", "", "directory tree to archive")
	flagSet.StringVar(&source.outputPath, "output-path", "", "where to publish the archive")
	flagSet.StringArrayVar(&source.search, "search", nil, "glob pattern to report matches for (repeatable)")
	flagSet.StringVar(&source.requestPath, "request", "", `JSON request document ("-" for stdin)`)
	flagSet.StringVar(&configPath, "config", "", "YAML config file (default: $"+config.EnvironmentVariable+")")
	flagSet.StringVar(&format, "format", "", "output format: json or external (overrides config)")
	flagSet.StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides config)")
	flagSet.BoolP("help", "h", false, "show help")
	flagSet.Usage = func() { printHelp(stderr, flagSet) }

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(stdout, flagSet)
			return nil
		}
		return usageError(err)
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(stdout, flagSet)
		return nil
	}
	if flagSet.NArg() > 0 {
		return usageError(fmt.Errorf("unexpected arguments: %v", flagSet.Args()))
	}
	source.fromFlags = flagSet.Changed("source-dir") || flagSet.Changed("output-path")

	cfg, err := loadConfig(configPath)
	if err != nil {
		return usageError(err)
	}
	if format != "" {
		cfg.Output.Format = format
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return usageError(fmt.Errorf("invalid configuration: %w", err))
	}

	logger, err := newLogger(cfg.Log, stderr)
	if err != nil {
		return usageError(err)
	}
	logger.Debug("detzip starting", "version", version.Full())

	request, err := readRequest(source, stdin)
	if err != nil {
		return usageError(err)
	}

	result, err := archive.Build(ctx, request, archive.Options{
		Logger:           logger,
		DigestBufferSize: cfg.Digest.BufferSize,
	})
	if err != nil {
		return buildError(err)
	}

	if err := writeResponse(stdout, result, cfg.Output.Format); err != nil {
		return &exitError{code: exitBuildFailure, err: err}
	}
	return nil
}

// loadConfig loads the file named by --config, else the file named by
// DETZIP_CONFIG, else the defaults.
func loadConfig(path string) (*config.Config, error) {
	switch {
	case path != "":
		return config.LoadFile(path)
	case os.Getenv(config.EnvironmentVariable) != "":
		return config.Load()
	default:
		return config.Default(), nil
	}
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `detzip builds a reproducible zip archive of a directory tree.

Two builds of trees with the same relative paths, file contents and
owner-execute bits produce byte-identical archives. The archive is
published atomically: on failure the output path is left untouched.

Usage:
  detzip --source-dir DIR --output-path FILE [--search PATTERN]...
  detzip --request FILE
  detzip < request.json

Examples:
  # Archive ./src and report which Go files it contains
  detzip --source-dir src --output-path out.zip --search '*.go'

  # External-data-source protocol: request on stdin, string map out
  echo '{"source_dir": "src", "output_path": "out.zip", "search": "[\"*.go\"]"}' \
    | detzip --format external

Flags:
`)
	flagSet.SetOutput(w)
	flagSet.PrintDefaults()
}
