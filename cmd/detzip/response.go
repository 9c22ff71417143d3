// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/bureau-foundation/detzip/lib/archive"
	"github.com/bureau-foundation/detzip/lib/config"
)

// response is the result document. Lists are never null.
type response struct {
	OutputPath         string   `json:"output_path"`
	OutputMD5          string   `json:"output_md5"`
	OutputSHA          string   `json:"output_sha"`
	OutputBase64SHA256 string   `json:"output_base64sha256"`
	Search             []string `json:"search"`
	SearchResults      []string `json:"search_results"`
	SourceDir          string   `json:"source_dir"`
	SourceFingerprint  string   `json:"source_fingerprint"`
}

func newResponse(result *archive.Result) response {
	search := result.SearchPatterns
	if search == nil {
		search = []string{}
	}
	searchResults := result.MatchedPaths
	if searchResults == nil {
		searchResults = []string{}
	}
	return response{
		OutputPath:         result.OutputPath,
		OutputMD5:          result.Digests.MD5Hex(),
		OutputSHA:          result.Digests.SHA1Hex(),
		OutputBase64SHA256: result.Digests.SHA256Base64(),
		Search:             search,
		SearchResults:      searchResults,
		SourceDir:          result.SourceDir,
		SourceFingerprint:  result.SourceFingerprint.String(),
	}
}

// external returns the response as a flat string map. Lists are
// encoded as JSON arrays with ", " between elements.
func (r response) external() (map[string]string, error) {
	search, err := encodeList(r.Search)
	if err != nil {
		return nil, err
	}
	searchResults, err := encodeList(r.SearchResults)
	if err != nil {
		return nil, err
	}
	return map[string]string{
		"output_path":         r.OutputPath,
		"output_md5":          r.OutputMD5,
		"output_sha":          r.OutputSHA,
		"output_base64sha256": r.OutputBase64SHA256,
		"search":              search,
		"search_results":      searchResults,
		"source_dir":          r.SourceDir,
		"source_fingerprint":  r.SourceFingerprint,
	}, nil
}

func encodeList(values []string) (string, error) {
	encoded := make([]string, len(values))
	for i, value := range values {
		data, err := json.Marshal(value)
		if err != nil {
			return "", fmt.Errorf("encoding %q: %w", value, err)
		}
		encoded[i] = string(data)
	}
	return "[" + strings.Join(encoded, ", ") + "]", nil
}

// writeResponse writes the result document to w as indented JSON in
// the given output format.
func writeResponse(w io.Writer, result *archive.Result, format string) error {
	document := newResponse(result)

	var value any = document
	switch format {
	case config.OutputJSON:
	case config.OutputExternal:
		flat, err := document.external()
		if err != nil {
			return err
		}
		value = flat
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}
	return nil
}
