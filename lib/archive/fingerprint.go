// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/detzip/lib/codec"
)

// Fingerprint is a 32-byte BLAKE3 digest of a manifest.
type Fingerprint [32]byte

// String returns the lowercase hex encoding.
func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// fingerprintDomainKey separates source fingerprints from any other
// BLAKE3 keyed hash over the same bytes. Fixed forever: changing it
// changes every fingerprint. ASCII of the domain name, zero-padded.
var fingerprintDomainKey = [32]byte{
	'd', 'e', 't', 'z', 'i', 'p', '.', 's', 'o', 'u', 'r', 'c', 'e', '.',
	'f', 'i', 'n', 'g', 'e', 'r', 'p', 'r', 'i', 'n', 't', 0, 0, 0, 0, 0, 0, 0,
}

// Fingerprint hashes the manifest's deterministic CBOR encoding. Two
// trees that agree on every (path, directory, executable, contents)
// tuple have the same fingerprint; it does not depend on the zip
// encoding, so it survives compression changes that would change the
// archive digests.
func (m Manifest) Fingerprint() (Fingerprint, error) {
	encoded, err := codec.Marshal(m)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("encoding manifest: %w", err)
	}

	// NewKeyed only fails for a key that is not 32 bytes.
	hasher, err := blake3.NewKeyed(fingerprintDomainKey[:])
	if err != nil {
		panic("archive: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(encoded)

	var fingerprint Fingerprint
	copy(fingerprint[:], hasher.Sum(nil))
	return fingerprint, nil
}
