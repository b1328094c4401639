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

// Package filenames parses photo filenames of the form
// <school>_<last>_<first>.<ext> into match candidates.
package filenames

import (
	"fmt"
	"strings"
)

// DefaultExtension is the image extension checked when none is configured.
const DefaultExtension = "png"

// FormatIssue identifies why a filename failed the naming grammar.
type FormatIssue string

const (
	// UnderscoreCount means the name did not contain exactly two underscores.
	UnderscoreCount FormatIssue = "underscore_count"
	// EmptySegment means one of the school, last or first segments was empty.
	EmptySegment FormatIssue = "empty_segment"
)

// Message returns the user-facing reason for the issue.
func (i FormatIssue) Message(ext string) string {
	switch i {
	case UnderscoreCount:
		return fmt.Sprintf("Must have exactly two underscores: team_last_first.%s", ext)
	case EmptySegment:
		return fmt.Sprintf("Each part of team_last_first.%s must be non-empty", ext)
	default:
		return ""
	}
}

// Candidate is one image filename as parsed. Segments are lowercased and
// otherwise untouched. An invalid candidate keeps whatever segments could be
// read so it can still be reported.
type Candidate struct {
	Filename     string
	SchoolPrefix string
	LastName     string
	FirstName    string
	Issue        FormatIssue
	Message      string
	Valid        bool
}

// FirstNameParts splits the first-name field on its first underscore into the
// given first name and an embedded nickname override, if any.
func (c Candidate) FirstNameParts() (first, nickname string) {
	first, nickname, _ = strings.Cut(c.FirstName, "_")
	return first, nickname
}

// Parser filters and parses filenames for one image extension.
type Parser struct {
	// Extension without the leading dot, compared case-insensitively.
	Extension string
}

// NewParser returns a Parser for ext. A leading dot is tolerated and an empty
// ext falls back to DefaultExtension.
func NewParser(ext string) *Parser {
	return &Parser{Extension: CleanExtension(ext)}
}

// CleanExtension lowercases ext and strips a leading dot.
func CleanExtension(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	if ext == "" {
		return DefaultExtension
	}
	return ext
}

// Parse returns one Candidate per input that ends with the parser's
// extension, in input order. Other names are not candidates and are skipped.
// Duplicates are kept.
func (p *Parser) Parse(filenames []string) []Candidate {
	candidates := make([]Candidate, 0, len(filenames))
	for _, name := range filenames {
		c, ok := p.ParseOne(name)
		if !ok {
			continue
		}
		candidates = append(candidates, c)
	}
	return candidates
}

// ParseOne parses a single filename. The bool is false when the name does not
// carry the image extension.
func (p *Parser) ParseOne(filename string) (Candidate, bool) {
	ext := p.extension()
	base := BaseName(filename)
	suffix := "." + ext
	if len(base) < len(suffix) || !strings.EqualFold(base[len(base)-len(suffix):], suffix) {
		return Candidate{}, false
	}

	stem := base[:len(base)-len(suffix)]
	c := Candidate{Filename: base}

	if strings.Count(stem, "_") != 2 {
		c.Issue = UnderscoreCount
		c.Message = UnderscoreCount.Message(ext)
		return c, true
	}

	parts := strings.SplitN(strings.ToLower(stem), "_", 3)
	c.SchoolPrefix = parts[0]
	c.LastName = parts[1]
	c.FirstName = parts[2]

	if c.SchoolPrefix == "" || c.LastName == "" || c.FirstName == "" {
		c.Issue = EmptySegment
		c.Message = EmptySegment.Message(ext)
		return c, true
	}

	c.Valid = true
	return c, true
}

func (p *Parser) extension() string {
	if p == nil {
		return DefaultExtension
	}
	return CleanExtension(p.Extension)
}

// Parse parses filenames with the default extension.
func Parse(filenames []string) []Candidate {
	return NewParser(DefaultExtension).Parse(filenames)
}

// BaseName returns the last path element of name for either slash style.
func BaseName(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		return name[i+1:]
	}
	return name
}

// SuggestFilename builds a filename that parses as valid for the given parts:
// {prefix}_{last}_{first}.{ext}, or {prefix}_{first}.{ext} when last is
// empty. Parts are lowercased with whitespace collapsed, and underscores
// inside a part become '-' so the result always has three segments.
func SuggestFilename(prefix, last, first, ext string) string {
	segments := make([]string, 0, 3)
	segments = append(segments, segment(prefix))
	if s := segment(last); s != "" {
		segments = append(segments, s)
	}
	segments = append(segments, segment(first))
	return strings.Join(segments, "_") + "." + CleanExtension(ext)
}

func segment(s string) string {
	s = strings.ReplaceAll(strings.ToLower(s), "_", "-")
	return strings.Join(strings.Fields(s), " ")
}
