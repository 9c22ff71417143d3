// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package archive builds byte-reproducible zip archives of directory
// trees.
//
// A build runs four stages over one source tree:
//
//   - [IndexDirectory] walks the tree and captures an [Index]: every
//     file and directory keyed by its slash-separated relative path,
//     with only the owner-execute bit kept from the node's metadata.
//   - [MatchPaths] reports which indexed paths match a set of
//     fnmatch-style search patterns. The result is informational; the
//     archive always contains the whole tree.
//   - [Serialize] writes the index into a zip container in sorted path
//     order with a fixed timestamp ([Epoch]), canonical permissions and
//     a pinned deflate level, and returns the [Manifest] of what it
//     wrote.
//   - [Build] ties the stages together: it stages the archive next to
//     the output path, digests it, fingerprints the manifest and
//     renames it into place only if every step succeeded.
//
// Two builds of trees that agree on relative paths, file contents and
// owner-execute bits produce byte-identical archives, whatever the
// modification times, ownership, group and other permission bits, or
// the order the filesystem lists directories in.
//
// Errors carry an [ErrorKind] so callers can tell a malformed request
// from an unreadable source, a failed container write or a failed
// publish. Context cancellation is reported as-is, without a kind.
package archive
