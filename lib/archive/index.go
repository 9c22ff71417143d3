// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"context"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
)

// Index is the set of entries captured from a source tree, keyed by
// relative path. Iteration through Paths and Entries is always in
// sorted key order regardless of the order the filesystem returned
// nodes in; that sort is what makes every later stage deterministic.
type Index struct {
	source  fs.FS
	root    string
	entries map[string]Entry
	paths   []string
}

// IndexDirectory indexes the directory tree rooted at dir. It fails
// with a KindFilesystem error if dir does not exist, is not a
// directory, or any node beneath it cannot be read.
func IndexDirectory(ctx context.Context, dir string) (*Index, error) {
	absolute, err := checkSourceDirectory(dir)
	if err != nil {
		return nil, err
	}
	return NewIndex(ctx, os.DirFS(absolute), absolute)
}

// checkSourceDirectory verifies dir is an existing directory and
// returns its absolute path.
func checkSourceDirectory(dir string) (string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return "", filesystemError("index", dir, err)
	}
	if !info.IsDir() {
		return "", filesystemError("index", dir, fmt.Errorf("source is not a directory"))
	}

	absolute, err := filepath.Abs(dir)
	if err != nil {
		return "", filesystemError("index", dir, fmt.Errorf("resolving absolute path: %w", err))
	}
	return absolute, nil
}

// NewIndex indexes every node of source below its root. root is the
// host directory source was opened from and is used only to fill in
// Entry.AbsolutePath; pass "" when source has no host location.
//
// Nodes are stat'ed with symbolic links resolved. A link to a
// directory is recorded as a directory entry but never descended into,
// so link cycles cannot make the walk loop. Dangling links and
// non-regular files (FIFOs, sockets, devices) are errors.
func NewIndex(ctx context.Context, source fs.FS, root string) (*Index, error) {
	index := &Index{
		source:  source,
		root:    root,
		entries: make(map[string]Entry),
	}

	err := fs.WalkDir(source, ".", func(name string, _ fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return filesystemError("index", index.hostPath(name), walkErr)
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("indexing interrupted: %w", err)
		}
		if name == "." {
			return nil
		}

		info, err := fs.Stat(source, name)
		if err != nil {
			return filesystemError("index", index.hostPath(name), err)
		}

		entry := Entry{
			RelativePath: name,
			AbsolutePath: index.hostPath(name),
			Executable:   info.Mode().Perm()&ownerExecute != 0,
		}
		switch mode := info.Mode(); {
		case mode.IsDir():
			entry.IsDirectory = true
		case mode.IsRegular():
			entry.Size = uint64(info.Size())
		default:
			return filesystemError("index", entry.AbsolutePath,
				fmt.Errorf("unsupported file type %s", mode.Type()))
		}

		index.entries[name] = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	index.paths = slices.Sorted(maps.Keys(index.entries))
	return index, nil
}

// Len returns the number of entries.
func (x *Index) Len() int { return len(x.paths) }

// Root returns the host directory the index was built from, or "".
func (x *Index) Root() string { return x.root }

// Paths returns the relative paths of all entries in sorted order.
// The returned slice is a copy.
func (x *Index) Paths() []string {
	return slices.Clone(x.paths)
}

// Entries returns all entries in sorted relative-path order.
func (x *Index) Entries() []Entry {
	entries := make([]Entry, len(x.paths))
	for i, path := range x.paths {
		entries[i] = x.entries[path]
	}
	return entries
}

// Lookup returns the entry for a relative path.
func (x *Index) Lookup(relativePath string) (Entry, bool) {
	entry, ok := x.entries[relativePath]
	return entry, ok
}

// Open opens a file entry's contents from the source filesystem.
func (x *Index) Open(entry Entry) (fs.File, error) {
	if entry.IsDirectory {
		return nil, fmt.Errorf("%s is a directory", entry.RelativePath)
	}
	return x.source.Open(entry.RelativePath)
}

func (x *Index) hostPath(name string) string {
	if x.root == "" {
		return name
	}
	return filepath.Join(x.root, filepath.FromSlash(name))
}
