// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestParseRequest(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		search []string
	}{
		{
			name:   "array",
			input:  `{"source_dir": "src", "output_path": "out.zip", "search": ["*.go", "bin/*"]}`,
			search: []string{"*.go", "bin/*"},
		},
		{
			name:   "encoded string",
			input:  `{"source_dir": "src", "output_path": "out.zip", "search": "[\"*.go\", \"bin/*\"]"}`,
			search: []string{"*.go", "bin/*"},
		},
		{
			name:   "missing",
			input:  `{"source_dir": "src", "output_path": "out.zip"}`,
			search: nil,
		},
		{
			name:   "null",
			input:  `{"source_dir": "src", "output_path": "out.zip", "search": null}`,
			search: nil,
		},
		{
			name:   "empty string",
			input:  `{"source_dir": "src", "output_path": "out.zip", "search": ""}`,
			search: nil,
		},
		{
			name: "jsonc",
			input: `{
				// Archive the sources.
				"source_dir": "src",
				"output_path": "out.zip", /* published atomically */
				"search": ["*.go",],
			}`,
			search: []string{"*.go"},
		},
		{
			name:   "unknown keys ignored",
			input:  `{"source_dir": "src", "output_path": "out.zip", "search": "[]", "extra": "x"}`,
			search: []string{},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			request, err := parseRequest([]byte(test.input))
			if err != nil {
				t.Fatalf("parseRequest: %v", err)
			}
			if request.SourceDir != "src" || request.OutputPath != "out.zip" {
				t.Errorf("paths = %q, %q", request.SourceDir, request.OutputPath)
			}
			if !slices.Equal(request.SearchPatterns, test.search) {
				t.Errorf("SearchPatterns = %#v, want %#v", request.SearchPatterns, test.search)
			}
		})
	}
}

func TestParseRequestErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "  \n", "empty"},
		{"not json", "source_dir=src", "parsing request"},
		{"search number", `{"search": 3}`, "array of strings"},
		{"search string not array", `{"search": "*.go"}`, "JSON array"},
		{"search array of numbers", `{"search": [1, 2]}`, "array of strings"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := parseRequest([]byte(test.input))
			if err == nil {
				t.Fatal("parseRequest should fail")
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("error %q does not mention %q", err, test.want)
			}
		})
	}
}

func TestReadRequestPrecedence(t *testing.T) {
	stdin := strings.NewReader(`{"source_dir": "stdin-src", "output_path": "stdin.zip"}`)

	fromFlags, err := readRequest(requestSource{
		sourceDir:  "flag-src",
		outputPath: "flag.zip",
		search:     []string{"*"},
		fromFlags:  true,
	}, stdin)
	if err != nil {
		t.Fatalf("readRequest(flags): %v", err)
	}
	if fromFlags.SourceDir != "flag-src" || fromFlags.OutputPath != "flag.zip" ||
		!slices.Equal(fromFlags.SearchPatterns, []string{"*"}) {
		t.Errorf("flags request = %+v", fromFlags)
	}

	requestPath := filepath.Join(t.TempDir(), "request.jsonc")
	if err := os.WriteFile(requestPath, []byte(`{"source_dir": "file-src", "output_path": "file.zip", "search": ["a"]}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	fromFile, err := readRequest(requestSource{requestPath: requestPath, search: []string{"b"}}, stdin)
	if err != nil {
		t.Fatalf("readRequest(file): %v", err)
	}
	if fromFile.SourceDir != "file-src" || !slices.Equal(fromFile.SearchPatterns, []string{"a", "b"}) {
		t.Errorf("file request = %+v", fromFile)
	}

	fromStdin, err := readRequest(requestSource{}, stdin)
	if err != nil {
		t.Fatalf("readRequest(stdin): %v", err)
	}
	if fromStdin.SourceDir != "stdin-src" || fromStdin.OutputPath != "stdin.zip" {
		t.Errorf("stdin request = %+v", fromStdin)
	}
}

func TestReadRequestConflict(t *testing.T) {
	_, err := readRequest(requestSource{sourceDir: "src", fromFlags: true, requestPath: "r.json"}, strings.NewReader(""))
	if err == nil {
		t.Fatal("readRequest should reject --request combined with path flags")
	}
}

func TestReadRequestMissingFile(t *testing.T) {
	_, err := readRequest(requestSource{requestPath: filepath.Join(t.TempDir(), "missing.json")}, strings.NewReader(""))
	if err == nil {
		t.Fatal("readRequest should fail for a missing request file")
	}
}
