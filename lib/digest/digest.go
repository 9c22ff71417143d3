// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// DefaultBufferSize is the chunk size used when the caller passes a
// non-positive buffer size.
const DefaultBufferSize = 64 * 1024

// Digests holds the three digests of one byte stream.
type Digests struct {
	MD5    [md5.Size]byte
	SHA1   [sha1.Size]byte
	SHA256 [sha256.Size]byte
}

// MD5Hex returns the lowercase hex encoding of the MD5 digest.
func (d Digests) MD5Hex() string { return hex.EncodeToString(d.MD5[:]) }

// SHA1Hex returns the lowercase hex encoding of the SHA-1 digest.
func (d Digests) SHA1Hex() string { return hex.EncodeToString(d.SHA1[:]) }

// SHA256Hex returns the lowercase hex encoding of the SHA-256 digest.
func (d Digests) SHA256Hex() string { return hex.EncodeToString(d.SHA256[:]) }

// SHA256Base64 returns the standard (padded) base64 encoding of the raw
// SHA-256 digest.
func (d Digests) SHA256Base64() string {
	return base64.StdEncoding.EncodeToString(d.SHA256[:])
}

// Compute reads r to EOF in chunks of bufferSize bytes and returns its
// digests. A non-positive bufferSize selects DefaultBufferSize.
func Compute(r io.Reader, bufferSize int) (Digests, error) {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	md5Hasher := md5.New()
	sha1Hasher := sha1.New()
	sha256Hasher := sha256.New()
	sink := io.MultiWriter(md5Hasher, sha1Hasher, sha256Hasher)

	// onlyReader hides any WriterTo on r so the copy really goes
	// through the fixed-size buffer.
	buffer := make([]byte, bufferSize)
	if _, err := io.CopyBuffer(sink, onlyReader{r}, buffer); err != nil {
		return Digests{}, fmt.Errorf("reading stream: %w", err)
	}

	var digests Digests
	copy(digests.MD5[:], md5Hasher.Sum(nil))
	copy(digests.SHA1[:], sha1Hasher.Sum(nil))
	copy(digests.SHA256[:], sha256Hasher.Sum(nil))
	return digests, nil
}

// File computes the digests of the file at path.
func File(path string, bufferSize int) (Digests, error) {
	file, err := os.Open(path)
	if err != nil {
		return Digests{}, fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()

	digests, err := Compute(file, bufferSize)
	if err != nil {
		return Digests{}, fmt.Errorf("hashing %s: %w", path, err)
	}
	return digests, nil
}

type onlyReader struct {
	io.Reader
}
