// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
	"github.com/zeebo/blake3"
)

// deflateLevel is the one compression level used for every entry.
// Changing it changes the digest of every archive ever built.
const deflateLevel = 6

// ManifestEntry records what the serializer wrote for one entry. It is
// a pure function of the logical entry (path, kind, executable bit and
// the bytes read), independent of the zip encoding around it.
type ManifestEntry struct {
	Path       string `cbor:"path"`
	Directory  bool   `cbor:"directory"`
	Executable bool   `cbor:"executable"`
	Size       uint64 `cbor:"size"`

	// ContentHash is the BLAKE3 hash of the file bytes as written.
	// Zero for directories.
	ContentHash [32]byte `cbor:"content_hash"`
}

// Manifest lists the entries of an archive in the order they were
// written.
type Manifest []ManifestEntry

// Serialize writes every entry of index, in sorted order, into a zip
// container on w and returns the manifest of what was written.
//
// Entry metadata is normalized so the output bytes depend only on the
// manifest: every timestamp is Epoch, every mode is 0755 or 0644 with
// a regular-file type tag (directories included), and every file is
// deflated at the same fixed level. Directory entries are named with a
// trailing slash and carry no data.
//
// A failure reading a source file is a KindFilesystem error; a failure
// writing to w is a KindSerialization error. On error the bytes already
// written to w are garbage and must be discarded.
func Serialize(ctx context.Context, w io.Writer, index *Index) (Manifest, error) {
	writer := zip.NewWriter(w)
	writer.RegisterCompressor(zip.Deflate, newDeflateWriter)

	manifest := make(Manifest, 0, index.Len())
	for _, entry := range index.Entries() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("serialization interrupted: %w", err)
		}
		record, err := writeEntry(writer, index, entry)
		if err != nil {
			return nil, err
		}
		manifest = append(manifest, record)
	}

	if err := writer.Close(); err != nil {
		return nil, serializationError("serialize", "", fmt.Errorf("writing central directory: %w", err))
	}
	return manifest, nil
}

func newDeflateWriter(out io.Writer) (io.WriteCloser, error) {
	return flate.NewWriter(out, deflateLevel)
}

func writeEntry(writer *zip.Writer, index *Index, entry Entry) (ManifestEntry, error) {
	name := entry.ArchiveName()
	header := &zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: Epoch,
	}
	header.SetMode(entry.Mode())

	out, err := writer.CreateHeader(header)
	if err != nil {
		return ManifestEntry{}, serializationError("serialize", name, err)
	}

	record := ManifestEntry{
		Path:       entry.RelativePath,
		Directory:  entry.IsDirectory,
		Executable: entry.Executable,
	}
	if entry.IsDirectory {
		return record, nil
	}

	file, err := index.Open(entry)
	if err != nil {
		return ManifestEntry{}, filesystemError("read", entry.AbsolutePath, err)
	}
	defer file.Close()

	hasher := blake3.New()
	written, err := io.Copy(io.MultiWriter(out, hasher), sourceReader{file})
	if err != nil {
		var readErr *sourceReadError
		if errors.As(err, &readErr) {
			return ManifestEntry{}, filesystemError("read", entry.AbsolutePath, readErr.err)
		}
		return ManifestEntry{}, serializationError("serialize", name, err)
	}

	record.Size = uint64(written)
	copy(record.ContentHash[:], hasher.Sum(nil))
	return record, nil
}

// sourceReader tags read errors so that a copy failure can be blamed on
// the right side.
type sourceReader struct {
	reader io.Reader
}

type sourceReadError struct {
	err error
}

func (e *sourceReadError) Error() string { return e.err.Error() }
func (e *sourceReadError) Unwrap() error { return e.err }

func (s sourceReader) Read(p []byte) (int, error) {
	n, err := s.reader.Read(p)
	if err != nil && err != io.EOF {
		err = &sourceReadError{err: err}
	}
	return n, err
}
