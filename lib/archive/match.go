// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// Matcher tests relative paths against a set of shell-style patterns.
// A path matches when at least one pattern matches it.
//
// The dialect is fnmatch as found on POSIX hosts: "*" matches any run of
// characters including "/", "?" matches one character, "[...]" and
// "[!...]" are character classes, and every pattern is anchored against
// the whole path. Matching is case-sensitive. Braces and backslashes
// carry no special meaning.
type Matcher struct {
	patterns []string
	globs    []glob.Glob
}

// literal matches a pattern that could not be compiled as a glob.
type literal string

func (l literal) Match(s string) bool { return string(l) == s }

// CompilePatterns compiles patterns into a Matcher. It never fails: a
// pattern the glob compiler rejects is matched literally, the same way
// fnmatch treats a malformed pattern as plain text.
func CompilePatterns(patterns []string) *Matcher {
	matcher := &Matcher{
		patterns: slices.Clone(patterns),
		globs:    make([]glob.Glob, 0, len(patterns)),
	}
	for _, pattern := range patterns {
		// No separators: "*" must cross "/" boundaries.
		compiled, err := glob.Compile(translatePattern(pattern))
		if err != nil {
			matcher.globs = append(matcher.globs, literal(pattern))
			continue
		}
		matcher.globs = append(matcher.globs, compiled)
	}
	return matcher
}

// Patterns returns the patterns the matcher was compiled from, in the
// order they were given.
func (m *Matcher) Patterns() []string {
	return slices.Clone(m.patterns)
}

// Match reports whether path matches at least one pattern.
func (m *Matcher) Match(path string) bool {
	for _, compiled := range m.globs {
		if compiled.Match(path) {
			return true
		}
	}
	return false
}

// Filter returns the paths that match at least one pattern, sorted and
// without duplicates. The result is never nil.
func (m *Matcher) Filter(paths []string) []string {
	matched := make([]string, 0)
	if len(m.globs) == 0 {
		return matched
	}
	for _, path := range paths {
		if m.Match(path) {
			matched = append(matched, path)
		}
	}
	slices.Sort(matched)
	return slices.Compact(matched)
}

// MatchPaths returns the sorted, duplicate-free subset of paths that
// match at least one of patterns. An empty pattern list matches
// nothing.
func MatchPaths(paths, patterns []string) []string {
	return CompilePatterns(patterns).Filter(paths)
}

// translatePattern rewrites an fnmatch pattern into gobwas/glob syntax.
// Outside character classes the characters glob treats specially but
// fnmatch does not ("{", "}", "\") are escaped. A "[" with no closing
// "]" is literal. Classes are rewritten by writeClass.
func translatePattern(pattern string) string {
	runes := []rune(pattern)
	var builder strings.Builder
	builder.Grow(len(pattern))
	for i := 0; i < len(runes); i++ {
		switch c := runes[i]; c {
		case '[':
			end := classEnd(runes, i)
			if end < 0 {
				builder.WriteString(`\[`)
				continue
			}
			writeClass(&builder, runes[i+1:end])
			i = end
		case '{', '}', '\\', ']':
			builder.WriteByte('\\')
			builder.WriteRune(c)
		default:
			builder.WriteRune(c)
		}
	}
	return builder.String()
}

// classEnd returns the index of the "]" closing the class that opens at
// start, or -1. A "]" directly after "[" or "[!" is a class member.
func classEnd(runes []rune, start int) int {
	i := start + 1
	if i < len(runes) && runes[i] == '!' {
		i++
	}
	if i < len(runes) && runes[i] == ']' {
		i++
	}
	for i < len(runes) && runes[i] != ']' {
		i++
	}
	if i >= len(runes) {
		return -1
	}
	return i
}

// writeClass writes an fnmatch class body as a glob character list.
//
// glob accepts either a single range or a plain list per class, so
// ranges are expanded into their members. A reversed range contributes
// nothing. A class left with no members can never match; it is written
// as a NUL, which no path contains.
func writeClass(builder *strings.Builder, body []rune) {
	negated := len(body) > 0 && body[0] == '!'
	if negated {
		body = body[1:]
	}

	var members []rune
	for j := 0; j < len(body); j++ {
		if j+2 < len(body) && body[j+1] == '-' {
			for r := body[j]; r <= body[j+2]; r++ {
				members = append(members, r)
			}
			j += 2
			continue
		}
		members = append(members, body[j])
	}
	slices.Sort(members)
	members = slices.Compact(members)
	if len(members) == 0 {
		members = []rune{0}
	}

	builder.WriteByte('[')
	if negated {
		builder.WriteByte('!')
	}
	switch {
	case len(members) == 1 && members[0] == '-':
		// A lone "-" is written as the range from "-" to "-".
		builder.WriteString("---")
	default:
		if members[0] == '-' {
			members = append(members[1:], '-')
		}
		for _, r := range members {
			switch r {
			case ']', '\\', '-', '!':
				builder.WriteByte('\\')
			}
			builder.WriteRune(r)
		}
	}
	builder.WriteByte(']')
}
