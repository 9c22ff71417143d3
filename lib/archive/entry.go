// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"io/fs"
	"time"
)

// Canonical permission values. Every entry is stored with exactly one
// of these, chosen by the owner-execute bit of the source node.
const (
	ExecutableMode    fs.FileMode = 0o755
	NonExecutableMode fs.FileMode = 0o644
)

// ownerExecute is the only permission bit that survives indexing.
const ownerExecute fs.FileMode = 0o100

// Epoch is the modification time embedded in every archive entry.
// 1980-01-01 is the earliest instant the MS-DOS date fields in the zip
// format can represent.
var Epoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// Entry is one file or directory captured by the indexer, already
// stripped of every attribute that is not allowed to influence the
// archive bytes.
type Entry struct {
	// RelativePath is the slash-separated path below the source root,
	// without a trailing slash. Unique within an Index.
	RelativePath string

	// AbsolutePath is the host path of the node. Informational; empty
	// when the index was built from an fs.FS with no host root.
	AbsolutePath string

	// IsDirectory is true for directory nodes, including symbolic links
	// that resolve to a directory.
	IsDirectory bool

	// Executable is the owner-execute bit of the source node.
	Executable bool

	// Size is the file size in bytes at indexing time. Always zero for
	// directories.
	Size uint64
}

// ArchiveName returns the name the entry is stored under: the relative
// path, with a trailing slash for directories.
func (e Entry) ArchiveName() string {
	if e.IsDirectory {
		return e.RelativePath + "/"
	}
	return e.RelativePath
}

// Mode returns the canonical stored permission: 0755 when the
// owner-execute bit was set, 0644 otherwise.
func (e Entry) Mode() fs.FileMode {
	if e.Executable {
		return ExecutableMode
	}
	return NonExecutableMode
}
