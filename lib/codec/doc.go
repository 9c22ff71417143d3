// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides detzip's CBOR encoding configuration.
//
// JSON is used on the external boundary (driver requests and results);
// CBOR is used where bytes must be a pure function of a value, such as
// the input to the source fingerprint hash. The encoder uses Core
// Deterministic Encoding (RFC 8949 §4.2): sorted map keys, smallest
// integer encoding, no indefinite-length items. Same logical data
// always produces identical bytes.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// Types that are only ever encoded as CBOR carry `cbor` struct tags.
// fxamacker/cbor falls back to `json` tags when `cbor` tags are absent,
// so types shared with the JSON boundary need only `json` tags. Never
// put both on the same field.
package codec
