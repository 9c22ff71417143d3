// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import "github.com/bureau-foundation/detzip/lib/archive"

// Exit codes.
const (
	exitBuildFailure = 1
	exitUsage        = 2
)

// exitError attaches a process exit code to an error. main checks for
// the ExitCode method on whatever run returns.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

// ExitCode returns the process exit code.
func (e *exitError) ExitCode() int { return e.code }

func usageError(err error) error {
	return &exitError{code: exitUsage, err: err}
}

// buildError classifies an archive.Build failure: a malformed request
// is a usage error, anything else a build failure.
func buildError(err error) error {
	if archive.IsKind(err, archive.KindRequest) {
		return usageError(err)
	}
	return &exitError{code: exitBuildFailure, err: err}
}
