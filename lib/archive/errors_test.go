// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	withPath := filesystemError("read", "/src/a.txt", fs.ErrPermission)
	if got, want := withPath.Error(), "read /src/a.txt: permission denied"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	withoutPath := requestError("validate", "output path is required")
	if got, want := withoutPath.Error(), "validate: output path is required"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorKindThroughWrapping(t *testing.T) {
	cause := fs.ErrNotExist
	err := fmt.Errorf("building: %w", publishError("publish", "/out.zip", cause))

	if KindOf(err) != KindPublish {
		t.Errorf("KindOf = %q, want %q", KindOf(err), KindPublish)
	}
	if !IsKind(err, KindPublish) || IsKind(err, KindFilesystem) {
		t.Error("IsKind disagrees with KindOf")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is should reach the underlying cause")
	}

	var archiveError *Error
	if !errors.As(err, &archiveError) || archiveError.Path != "/out.zip" {
		t.Errorf("errors.As = %+v", archiveError)
	}
}

func TestKindOfForeignError(t *testing.T) {
	if kind := KindOf(errors.New("plain")); kind != "" {
		t.Errorf("KindOf(plain error) = %q, want empty", kind)
	}
	if kind := KindOf(nil); kind != "" {
		t.Errorf("KindOf(nil) = %q, want empty", kind)
	}
	if serializationError("serialize", "", errors.New("x")).Kind != KindSerialization {
		t.Error("serializationError has the wrong kind")
	}
}
