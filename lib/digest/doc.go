// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package digest computes the MD5, SHA-1 and SHA-256 digests of a byte
// stream in a single pass.
//
// Archive callers use the digests for change detection: SHA-256 is the
// canonical content fingerprint and is usually consumed in standard
// base64 form; MD5 and SHA-1 exist for callers that expect those
// specific digest kinds.
//
// The API surface:
//
//   - [Compute] -- reads a stream in fixed-size chunks, feeding all three
//     hash functions from the same buffer, with constant memory usage
//     regardless of stream length
//   - [File] -- opens a path and calls Compute on it
//   - [Digests] -- the result, with hex and base64 formatting helpers
//
// This package has no dependencies on other detzip packages.
package digest
