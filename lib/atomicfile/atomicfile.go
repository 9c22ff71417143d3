// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package atomicfile

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// DefaultMode is the permission a committed file is published with.
const DefaultMode fs.FileMode = 0o644

// File is a staged file that becomes visible at its destination only
// when committed.
type File struct {
	file        *os.File
	destination string
	done        bool
}

// Create stages a new file for destination. The staged file is created
// in destination's directory with a hidden, randomized name.
func Create(destination string) (*File, error) {
	directory, base := filepath.Split(destination)
	if base == "" {
		return nil, fmt.Errorf("destination %q names a directory", destination)
	}
	if directory == "" {
		directory = "."
	}

	file, err := os.CreateTemp(directory, "."+base+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("creating staging file for %s: %w", destination, err)
	}
	return &File{file: file, destination: destination}, nil
}

// Name returns the path of the staged file.
func (f *File) Name() string { return f.file.Name() }

// Destination returns the path the file is published to on Commit.
func (f *File) Destination() string { return f.destination }

// Write writes to the staged file.
func (f *File) Write(p []byte) (int, error) { return f.file.Write(p) }

// Read reads from the staged file at its current offset.
func (f *File) Read(p []byte) (int, error) { return f.file.Read(p) }

// Rewind seeks the staged file back to its start, for reading back
// what was written.
func (f *File) Rewind() error {
	if _, err := f.file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding %s: %w", f.file.Name(), err)
	}
	return nil
}

// Commit flushes the staged file to disk and renames it over the
// destination, replacing any file already there. After Commit returns,
// successfully or not, the File must not be written again. A failed
// Commit leaves the staged file in place for Abort to remove.
func (f *File) Commit() error {
	if f.done {
		return errors.New("staged file already committed or aborted")
	}

	if err := f.file.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", f.file.Name(), err)
	}
	if err := f.file.Chmod(DefaultMode); err != nil {
		return fmt.Errorf("setting mode on %s: %w", f.file.Name(), err)
	}
	if err := f.file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", f.file.Name(), err)
	}
	if err := os.Rename(f.file.Name(), f.destination); err != nil {
		return fmt.Errorf("renaming %s to %s: %w", f.file.Name(), f.destination, err)
	}
	f.done = true

	// Make the rename itself durable. The file is already in place, so
	// a failure here is not reported.
	if parent, err := os.Open(filepath.Dir(f.destination)); err == nil {
		parent.Sync()
		parent.Close()
	}
	return nil
}

// Abort discards the staged file. It is safe to call more than once
// and does nothing after a successful Commit.
func (f *File) Abort() error {
	if f.done {
		return nil
	}
	f.done = true

	// Close may already have happened inside a failed Commit.
	f.file.Close()
	if err := os.Remove(f.file.Name()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing staging file %s: %w", f.file.Name(), err)
	}
	return nil
}

// CheckWritable reports whether the calling process may create files
// in directory.
func CheckWritable(directory string) error {
	info, err := os.Stat(directory)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", directory)
	}
	if err := unix.Access(directory, unix.W_OK|unix.X_OK); err != nil {
		return &fs.PathError{Op: "access", Path: directory, Err: err}
	}
	return nil
}
