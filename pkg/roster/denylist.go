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

package roster

import (
	"slices"

	"github.com/rostercheck/rostercheck/pkg/names"
)

// DefaultDenyPhrases are labels that show up next to names on roster pages
// but never name a person.
var DefaultDenyPhrases = []string{
	"coach",
	"coaches",
	"head coach",
	"assistant coach",
	"associate head coach",
	"staff",
	"support staff",
	"bio",
	"full bio",
	"view full bio",
	"roster",
	"director",
	"coordinator",
	"trainer",
	"athletic trainer",
	"strength and conditioning",
	"operations",
	"graduate assistant",
	"volunteer assistant",
	"manager",
	"video",
}

// Denylist rejects display names containing any of its phrases as a whole
// word sequence after normalization. "View Full Bio" is denied by "bio",
// "Biondi" is not.
type Denylist struct {
	phrases [][]string
}

// NewDenylist builds a denylist from phrases. Phrases that normalize to
// nothing are ignored.
func NewDenylist(phrases ...string) *Denylist {
	d := &Denylist{phrases: make([][]string, 0, len(phrases))}
	for _, p := range phrases {
		if words := names.Tokens(p); len(words) > 0 {
			d.phrases = append(d.phrases, words)
		}
	}
	return d
}

// DefaultDenylist returns a denylist of DefaultDenyPhrases.
func DefaultDenylist() *Denylist {
	return NewDenylist(DefaultDenyPhrases...)
}

// Len returns the number of usable phrases.
func (d *Denylist) Len() int {
	if d == nil {
		return 0
	}
	return len(d.phrases)
}

// Denies reports whether displayName contains a denied phrase.
func (d *Denylist) Denies(displayName string) bool {
	if d.Len() == 0 {
		return false
	}
	words := names.Tokens(displayName)
	for _, phrase := range d.phrases {
		if containsRun(words, phrase) {
			return true
		}
	}
	return false
}

func containsRun(words, phrase []string) bool {
	for i := 0; i+len(phrase) <= len(words); i++ {
		if slices.Equal(words[i:i+len(phrase)], phrase) {
			return true
		}
	}
	return false
}
