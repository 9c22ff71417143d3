// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"slices"

	"github.com/bureau-foundation/detzip/lib/atomicfile"
	"github.com/bureau-foundation/detzip/lib/digest"
)

// Request describes one archive build.
type Request struct {
	// SourceDir is the root of the tree to archive. Must exist.
	SourceDir string

	// OutputPath is where the archive is published. Its parent
	// directory must exist and be writable. A file already at this
	// path is replaced only if the build succeeds.
	OutputPath string

	// SearchPatterns are glob patterns reported against the indexed
	// relative paths. They select nothing for the archive itself,
	// which always contains the whole tree.
	SearchPatterns []string
}

// Result describes a published archive.
type Result struct {
	// SourceDir and OutputPath echo the request.
	SourceDir  string
	OutputPath string

	// Digests of the archive bytes as published.
	Digests digest.Digests

	// MatchedPaths are the indexed relative paths matching at least
	// one search pattern, sorted and without duplicates.
	MatchedPaths []string

	// SearchPatterns echoes the request's patterns in their original
	// order.
	SearchPatterns []string

	// EntryCount is the number of entries in the archive.
	EntryCount int

	// ArchiveSize is the archive size in bytes.
	ArchiveSize int64

	// SourceFingerprint is the manifest fingerprint: a digest of the
	// logical tree, independent of the zip encoding.
	SourceFingerprint Fingerprint
}

// Options tunes a build. The zero value is ready to use.
type Options struct {
	// Logger receives progress records. Nil discards them.
	Logger *slog.Logger

	// DigestBufferSize is the chunk size for reading the archive back
	// to digest it. Non-positive selects digest.DefaultBufferSize.
	// It never affects the digests themselves.
	DigestBufferSize int

	// Source, if set, is read instead of the host directory at
	// Request.SourceDir. SourceDir must still name an existing
	// directory; it is used for error messages and absolute paths.
	Source fs.FS
}

// Build indexes the source tree, serializes it into a deterministic zip
// archive, digests the archive and publishes it atomically at the
// output path.
//
// Any failure aborts the whole build. The staged archive is removed on
// every failure path, and the output path is left exactly as it was.
func Build(ctx context.Context, request Request, options Options) (*Result, error) {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if request.SourceDir == "" {
		return nil, requestError("validate", "source directory is required")
	}
	if request.OutputPath == "" {
		return nil, requestError("validate", "output path is required")
	}
	logger = logger.With("source_dir", request.SourceDir, "output_path", request.OutputPath)

	outputDirectory := filepath.Dir(request.OutputPath)
	if err := atomicfile.CheckWritable(outputDirectory); err != nil {
		return nil, filesystemError("check output", outputDirectory, err)
	}

	index, err := indexSource(ctx, request.SourceDir, options.Source)
	if err != nil {
		return nil, err
	}
	logger.Debug("indexed source tree", "entries", index.Len())

	paths := index.Paths()
	matched := MatchPaths(paths, request.SearchPatterns)
	logger.Debug("matched search patterns",
		"patterns", len(request.SearchPatterns), "matches", len(matched))

	staged, err := atomicfile.Create(request.OutputPath)
	if err != nil {
		return nil, filesystemError("stage", request.OutputPath, err)
	}
	defer func() {
		if err := staged.Abort(); err != nil {
			logger.Warn("removing staged archive failed", "staged", staged.Name(), "error", err)
		}
	}()

	manifest, err := Serialize(ctx, staged, index)
	if err != nil {
		return nil, err
	}
	logger.Debug("serialized archive", "staged", staged.Name())

	if err := staged.Rewind(); err != nil {
		return nil, filesystemError("digest", staged.Name(), err)
	}
	counter := &countingReader{reader: staged}
	digests, err := digest.Compute(counter, options.DigestBufferSize)
	if err != nil {
		return nil, filesystemError("digest", staged.Name(), err)
	}

	fingerprint, err := manifest.Fingerprint()
	if err != nil {
		return nil, serializationError("fingerprint", "", err)
	}

	if err := staged.Commit(); err != nil {
		return nil, publishError("publish", request.OutputPath, err)
	}

	logger.Info("published archive",
		"entries", len(manifest),
		"bytes", counter.count,
		"sha256", digests.SHA256Base64(),
	)

	return &Result{
		SourceDir:         request.SourceDir,
		OutputPath:        request.OutputPath,
		Digests:           digests,
		MatchedPaths:      matched,
		SearchPatterns:    slices.Clone(request.SearchPatterns),
		EntryCount:        len(manifest),
		ArchiveSize:       counter.count,
		SourceFingerprint: fingerprint,
	}, nil
}

func indexSource(ctx context.Context, sourceDir string, source fs.FS) (*Index, error) {
	if source == nil {
		return IndexDirectory(ctx, sourceDir)
	}

	// The caller supplied the filesystem; still require the named
	// directory so a typo cannot silently archive nothing.
	absolute, err := checkSourceDirectory(sourceDir)
	if err != nil {
		return nil, err
	}
	return NewIndex(ctx, source, absolute)
}

// countingReader counts the bytes read through it.
type countingReader struct {
	reader io.Reader
	count  int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.reader.Read(p)
	c.count += int64(n)
	return n, err
}
