// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package atomicfile publishes a file by staging it next to its final
// path and renaming it into place, so readers of the final path see
// either the previous contents or the complete new contents and never
// a partial write.
//
// The staged file lives in the destination's own directory, which puts
// it on the same filesystem and makes the final rename atomic. Usage
// follows a scoped-cleanup discipline:
//
//	staged, err := atomicfile.Create(path)
//	if err != nil {
//	    return err
//	}
//	defer staged.Abort()
//	// ... write to staged ...
//	return staged.Commit()
//
// Abort after a successful Commit does nothing, so the deferred call
// removes the staged file on every exit path except success.
//
// This package has no dependencies on other detzip packages.
package atomicfile
