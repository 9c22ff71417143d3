// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"
)

// TB is the subset of testing.TB the helpers need.
type TB interface {
	Helper()
	Fatalf(format string, args ...any)
}

// Node describes one file or directory of a fixture tree.
type Node struct {
	// Content is the file content. Ignored for directories.
	Content string

	// Directory makes the node a directory.
	Directory bool

	// Mode is the permission to apply. Zero selects 0644 for files and
	// 0755 for directories.
	Mode fs.FileMode

	// ModTime, if non-zero, is applied as both access and modification
	// time.
	ModTime time.Time
}

// File returns a regular-file node with mode 0644.
func File(content string) Node {
	return Node{Content: content}
}

// Executable returns a regular-file node with mode 0755.
func Executable(content string) Node {
	return Node{Content: content, Mode: 0o755}
}

// Directory returns a directory node with mode 0755.
func Directory() Node {
	return Node{Directory: true}
}

// WriteTree creates every node below root. Keys are slash-separated
// relative paths; missing parent directories are created with mode
// 0755.
func WriteTree(t TB, root string, nodes map[string]Node) {
	t.Helper()

	paths := make([]string, 0, len(nodes))
	for path := range nodes {
		paths = append(paths, path)
	}
	slices.Sort(paths)

	for _, path := range paths {
		node := nodes[path]
		hostPath := filepath.Join(root, filepath.FromSlash(path))

		if node.Directory {
			if err := os.MkdirAll(hostPath, 0o755); err != nil {
				t.Fatalf("creating directory %s: %v", path, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(hostPath), 0o755); err != nil {
			t.Fatalf("creating parent of %s: %v", path, err)
		}
		if err := os.WriteFile(hostPath, []byte(node.Content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", path, err)
		}
	}

	// Modes after creation: a read-only directory created early would
	// otherwise block its children.
	for _, path := range slices.Backward(paths) {
		node := nodes[path]
		mode := node.Mode
		if mode == 0 {
			mode = 0o644
			if node.Directory {
				mode = 0o755
			}
		}
		Chmod(t, filepath.Join(root, filepath.FromSlash(path)), mode)
	}

	// Times last: writing a child bumps its parent's mtime.
	for _, path := range slices.Backward(paths) {
		if node := nodes[path]; !node.ModTime.IsZero() {
			Touch(t, filepath.Join(root, filepath.FromSlash(path)), node.ModTime)
		}
	}
}

// Chmod sets the permission bits of path.
func Chmod(t TB, path string, mode fs.FileMode) {
	t.Helper()
	if err := os.Chmod(path, mode); err != nil {
		t.Fatalf("chmod %s: %v", path, err)
	}
}

// Touch sets the access and modification times of path.
func Touch(t TB, path string, modTime time.Time) {
	t.Helper()
	if err := os.Chtimes(path, modTime, modTime); err != nil {
		t.Fatalf("chtimes %s: %v", path, err)
	}
}
