// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"errors"
	"fmt"
)

// ErrorKind classifies build failures so that callers can distinguish
// a bad source tree from a broken output location without parsing
// error text.
type ErrorKind string

const (
	// KindRequest indicates the request itself is malformed: an empty
	// source directory or output path.
	KindRequest ErrorKind = "request"

	// KindFilesystem indicates the source tree or the output location
	// could not be read or written: missing or unreadable source
	// directory, an unreadable file encountered mid-walk, an output
	// directory that cannot hold the staged archive.
	KindFilesystem ErrorKind = "filesystem"

	// KindSerialization indicates a failure while writing the
	// compressed container to the staged file.
	KindSerialization ErrorKind = "serialization"

	// KindPublish indicates the final atomic rename failed. The
	// destination is untouched.
	KindPublish ErrorKind = "publish"
)

// Error is a classified build error. It wraps the underlying cause,
// so errors.Is and errors.As walk through it to reach *fs.PathError,
// context.Canceled and friends.
type Error struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// Op names the step that failed ("index", "serialize", ...).
	Op string

	// Path is the file or directory involved, if any.
	Path string

	// Err is the underlying cause.
	Err error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

func requestError(op string, format string, args ...any) *Error {
	return &Error{Kind: KindRequest, Op: op, Err: fmt.Errorf(format, args...)}
}

func filesystemError(op, path string, err error) *Error {
	return &Error{Kind: KindFilesystem, Op: op, Path: path, Err: err}
}

func serializationError(op, path string, err error) *Error {
	return &Error{Kind: KindSerialization, Op: op, Path: path, Err: err}
}

func publishError(op, path string, err error) *Error {
	return &Error{Kind: KindPublish, Op: op, Path: path, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or the
// empty string if there is none.
func KindOf(err error) ErrorKind {
	var archiveError *Error
	if errors.As(err, &archiveError) {
		return archiveError.Kind
	}
	return ""
}

// IsKind reports whether err's chain contains an *Error of the given
// kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
