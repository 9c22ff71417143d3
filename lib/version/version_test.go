// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime"
	"strings"
	"testing"
)

func setBuildInfo(t *testing.T, commit, dirty, buildTime string) {
	t.Helper()
	previousCommit, previousDirty, previousTime := GitCommit, GitDirty, BuildTime
	t.Cleanup(func() {
		GitCommit, GitDirty, BuildTime = previousCommit, previousDirty, previousTime
	})
	GitCommit, GitDirty, BuildTime = commit, dirty, buildTime
}

func TestInfo(t *testing.T) {
	setBuildInfo(t, "abc1234", "false", "2026-01-02T03:04:05Z")
	want := Version + " (abc1234, 2026-01-02T03:04:05Z)"
	if got := Info(); got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}
}

func TestInfoDirty(t *testing.T) {
	setBuildInfo(t, "abc1234", "true", "now")
	if got := Info(); !strings.Contains(got, "abc1234-dirty") {
		t.Errorf("Info() = %q, want a -dirty commit", got)
	}
}

func TestFull(t *testing.T) {
	full := Full()
	if !strings.HasPrefix(full, Info()) {
		t.Errorf("Full() = %q, should start with Info()", full)
	}
	if !strings.Contains(full, runtime.Version()) {
		t.Errorf("Full() = %q, missing Go version", full)
	}
	if !strings.Contains(full, runtime.GOOS+"/"+runtime.GOARCH) {
		t.Errorf("Full() = %q, missing platform", full)
	}
}
