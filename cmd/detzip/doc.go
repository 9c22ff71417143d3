// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Detzip builds a byte-reproducible zip archive of a directory tree
// and reports the archive's digests along with the tree paths matching
// a set of search patterns.
//
// The request comes from flags (--source-dir, --output-path, repeated
// --search), from a JSON document named by --request, or from a JSON
// document on stdin, in that order of precedence. Documents may carry
// comments and trailing commas. Their "search" value is either an
// array of strings or a string holding a JSON-encoded array, the form
// external-data-source callers send.
//
// The result is written to stdout as indented JSON. With --format
// external every value is a string and lists are JSON-encoded, so the
// document is a flat string map.
//
// Exit codes:
//
//	0  archive published
//	1  build failed (unreadable source, container write or publish failure)
//	2  usage, configuration or request error
package main
