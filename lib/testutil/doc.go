// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for detzip packages.
//
// [WriteTree] materializes a directory-tree fixture from a map of
// relative paths to [Node] values. Permissions are applied with an
// explicit chmod after creation, so the process umask never leaks into
// a fixture, and modification times are applied last, after every
// child has been written, so directory mtimes stick.
//
// [Chmod] and [Touch] change one node of an existing fixture, for tests
// that rebuild after a metadata-only change.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no detzip-internal dependencies.
package testutil
