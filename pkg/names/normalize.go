// Rostercheck
// Copyright (c) 2026 The Rostercheck Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Rostercheck.
//
// Rostercheck is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Rostercheck is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Rostercheck.  If not, see <http://www.gnu.org/licenses/>.

// Package names turns free-text person names into comparison keys.
//
// A Key is the only basis for name equality in Rostercheck: two names are the
// same identity when their keys are equal. Keys are built by a fixed, ordered
// pipeline:
//
//	Stage 1: Lowercase
//	Stage 2: Quoted span removal      `Robert "Bob" Johnson` → "robert  johnson"
//	Stage 3: Suffix token removal     "john smith iii" → "john smith "
//	Stage 4: Accent folding           "josé" → "jose"
//	Stage 5: Character filtering      letters, numbers, '_', whitespace and '-' survive
//	Stage 6: Whitespace collapse
//
// The stages do not commute. Normalize re-runs the pipeline until the output
// is stable, so Normalize(Normalize(x)) == Normalize(x) for every input.
package names

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Key is a normalized name used as a comparison key.
type Key string

// String returns the key as a plain string.
func (k Key) String() string {
	return string(k)
}

// IsEmpty reports whether the key carries no name at all.
func (k Key) IsEmpty() bool {
	return k == ""
}

// maxPasses bounds the fixed-point loop. Every pass only removes characters,
// real names settle after two passes.
const maxPasses = 8

// QuoteChars are the characters that open or close an embedded nickname.
const QuoteChars = "\"“”‘’"

var (
	quotedSpanRegex = regexp.MustCompile(`["“”‘’].*?["“”‘’]`)
	whitespaceRegex = regexp.MustCompile(`\s+`)

	suffixTokens = map[string]struct{}{
		"jr":  {},
		"sr":  {},
		"ii":  {},
		"iii": {},
		"iv":  {},
		"v":   {},
	}
)

// Normalize converts a free-text name into its comparison key. It never
// fails; empty or whitespace-only input yields an empty key.
//
// Examples:
//   - "José" → "jose"
//   - `Robert "Bob" Johnson` → "robert johnson"
//   - "John Smith III" → "john smith"
//   - "O'Brien-Smith, Jr." → "obrien-smith"
func Normalize(text string) Key {
	s := text
	for range maxPasses {
		next := normalizePass(s)
		if next == s {
			break
		}
		s = next
	}
	return Key(s)
}

// normalizePass runs Stages 1-6 once.
func normalizePass(s string) string {
	// Stage 1: Lowercase
	s = strings.ToLower(s)

	// Stage 2: Quoted span removal
	s = StripQuotedSpans(s)

	// Stage 3: Suffix token removal
	s = StripSuffixTokens(s)

	// Stage 4: Accent folding
	s = FoldAccents(s)

	// Stage 5: Character filtering
	s = strings.Map(func(r rune) rune {
		if isWordRune(r) || unicode.IsSpace(r) || r == '-' {
			return r
		}
		return -1
	}, s)

	// Stage 6: Whitespace collapse
	return CollapseWhitespace(s)
}

// StripQuotedSpans removes every substring enclosed between two quote
// characters, quotes included. Unpaired quotes are left for Stage 5.
func StripQuotedSpans(s string) string {
	if !strings.ContainsAny(s, QuoteChars) {
		return s
	}
	return quotedSpanRegex.ReplaceAllString(s, "")
}

// StripSuffixTokens drops standalone generational suffixes (jr, sr, ii, iii,
// iv, v). A token is standalone when it is a complete run of word characters,
// so "smith-jr" loses its suffix but "ivan" and "javier" are untouched.
// Matching is case-insensitive.
func StripSuffixTokens(s string) string {
	var result strings.Builder
	result.Grow(len(s))

	rs := []rune(s)
	for i := 0; i < len(rs); {
		if !isWordRune(rs[i]) {
			_, _ = result.WriteRune(rs[i])
			i++
			continue
		}

		j := i
		for j < len(rs) && isWordRune(rs[j]) {
			j++
		}
		word := string(rs[i:j])
		if _, isSuffix := suffixTokens[strings.ToLower(word)]; !isSuffix {
			_, _ = result.WriteString(word)
		}
		i = j
	}

	return result.String()
}

// FoldAccents decomposes accented characters and drops the combining marks,
// leaving the base letters: "Zoë Núñez" → "Zoe Nunez".
// Returns the input unchanged if the transform fails.
func FoldAccents(s string) string {
	if isASCII(s) {
		return s
	}
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	if folded, _, err := transform.String(t, s); err == nil {
		return folded
	}
	return s
}

// CollapseWhitespace replaces whitespace runs with one space and trims both ends.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// Tokens returns the space-separated words of the normalized name.
func Tokens(text string) []string {
	return strings.Fields(Normalize(text).String())
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_'
}

// isASCII checks if a string contains only ASCII characters (bytes < 128).
func isASCII(s string) bool {
	for i := range s {
		if s[i] >= 128 {
			return false
		}
	}
	return true
}
