// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/detzip/lib/archive"
)

// requestDocument is the JSON form of a build request. Unknown keys are
// ignored.
type requestDocument struct {
	SourceDir  string         `json:"source_dir"`
	OutputPath string         `json:"output_path"`
	Search     searchPatterns `json:"search"`
}

// searchPatterns accepts either a JSON array of strings or a string
// holding one. External-data-source callers can only send strings, so
// they send the array JSON-encoded.
type searchPatterns []string

func (s *searchPatterns) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = nil
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var encoded string
		if err := json.Unmarshal(data, &encoded); err != nil {
			return err
		}
		if len(bytes.TrimSpace([]byte(encoded))) == 0 {
			*s = nil
			return nil
		}
		var patterns []string
		if err := json.Unmarshal([]byte(encoded), &patterns); err != nil {
			return fmt.Errorf("search string must hold a JSON array of strings: %w", err)
		}
		*s = patterns
		return nil
	}

	var patterns []string
	if err := json.Unmarshal(data, &patterns); err != nil {
		return fmt.Errorf("search must be an array of strings or a JSON-encoded array: %w", err)
	}
	*s = patterns
	return nil
}

// parseRequest strips JSONC comments and trailing commas from data,
// then decodes it as a request document.
func parseRequest(data []byte) (archive.Request, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return archive.Request{}, errors.New("request document is empty")
	}

	var document requestDocument
	if err := json.Unmarshal(jsonc.ToJSON(data), &document); err != nil {
		return archive.Request{}, fmt.Errorf("parsing request: %w", err)
	}
	return archive.Request{
		SourceDir:      document.SourceDir,
		OutputPath:     document.OutputPath,
		SearchPatterns: document.Search,
	}, nil
}

// requestSource selects where the request comes from.
type requestSource struct {
	// Flag values. Used when either path flag was given.
	sourceDir  string
	outputPath string
	search     []string
	fromFlags  bool

	// requestPath names a request document. "-" means stdin.
	requestPath string
}

// readRequest resolves the request: flags first, then the --request
// file, then stdin.
func readRequest(source requestSource, stdin io.Reader) (archive.Request, error) {
	if source.fromFlags {
		if source.requestPath != "" {
			return archive.Request{}, errors.New("--request cannot be combined with --source-dir or --output-path")
		}
		return archive.Request{
			SourceDir:      source.sourceDir,
			OutputPath:     source.outputPath,
			SearchPatterns: source.search,
		}, nil
	}

	var (
		data []byte
		err  error
	)
	switch source.requestPath {
	case "", "-":
		data, err = io.ReadAll(stdin)
		if err != nil {
			return archive.Request{}, fmt.Errorf("reading request from stdin: %w", err)
		}
	default:
		data, err = os.ReadFile(source.requestPath)
		if err != nil {
			return archive.Request{}, fmt.Errorf("reading request: %w", err)
		}
	}

	request, err := parseRequest(data)
	if err != nil {
		return archive.Request{}, err
	}
	if len(source.search) > 0 {
		request.SearchPatterns = append(request.SearchPatterns, source.search...)
	}
	return request, nil
}
