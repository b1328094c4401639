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

// Package matcher classifies parsed photo filenames against a roster index
// and lists roster players that have no photo.
//
// Each valid candidate is keyed by names.Normalize(first + " " + last) and
// run through an ordered rule list; the first rule that applies wins. The
// default order is:
//
//  1. staff     key is a staff key            → StaffMisfiled
//  2. school    prefix differs from declared  → SchoolMismatch
//  3. primary   key is a player key           → Matched
//  4. nickname  key is a nickname key         → NicknameMismatch
//
// A candidate no rule claims is NotInRoster. Invalid candidates stop at
// InvalidFormat. Match never mutates its inputs and holds no state, so it is
// safe to call concurrently.
package matcher

import (
	"strings"

	"github.com/rostercheck/rostercheck/pkg/filenames"
	"github.com/rostercheck/rostercheck/pkg/names"
	"github.com/rostercheck/rostercheck/pkg/roster"
	"github.com/rs/zerolog/log"
)

// Verdict is the outcome for one candidate.
type Verdict struct {
	Candidate filenames.Candidate
	// Entry is the roster entry the verdict refers to, if any.
	Entry             *roster.Entry
	Key               names.Key
	Reason            string
	SuggestedFilename string
	MatchedName       string
	StaffTitle        string
	Status            Status
}

// MissingEntry is a roster player with no photo among the valid, non-staff
// candidates.
type MissingEntry struct {
	Entry             *roster.Entry
	SuggestedFilename string
}

// Result holds one verdict per candidate in input order, and the missing
// players in roster order.
type Result struct {
	Verdicts []Verdict
	Missing  []MissingEntry
}

// CandidateKey returns the comparison key for a candidate. The first-name
// field is used as parsed, including any embedded nickname segment.
func CandidateKey(c filenames.Candidate) names.Key {
	return names.Normalize(c.FirstName + " " + c.LastName)
}

// Match classifies candidates against idx for the declared school prefix.
// A nil or empty idx is a valid roster with no names in it.
func Match(
	candidates []filenames.Candidate,
	idx *roster.Index,
	schoolPrefix string,
	opts Options,
) Result {
	if err := opts.Validate(); err != nil {
		log.Warn().Err(err).Msg("invalid match precedence, using default")
	}

	m := &run{
		idx:    idx,
		prefix: strings.ToLower(strings.TrimSpace(schoolPrefix)),
		ext:    opts.extension(),
		rules:  opts.rules(),
	}

	result := Result{Verdicts: make([]Verdict, 0, len(candidates))}
	present := make(map[names.Key]struct{}, len(candidates))

	for _, c := range candidates {
		v := m.classify(c)
		if c.Valid && v.Status != StaffMisfiled {
			present[v.Key] = struct{}{}
		}
		result.Verdicts = append(result.Verdicts, v)
	}

	for _, e := range idx.Players() {
		if _, ok := present[e.PrimaryKey]; ok {
			continue
		}
		result.Missing = append(result.Missing, MissingEntry{
			Entry:             e,
			SuggestedFilename: filenames.SuggestFilename(m.prefix, e.LastName, e.FirstName, m.ext),
		})
	}

	log.Debug().
		Int("candidates", len(candidates)).
		Int("missing", len(result.Missing)).
		Str("prefix", m.prefix).
		Msg("matched filenames against roster")

	return result
}

type run struct {
	idx    *roster.Index
	prefix string
	ext    string
	rules  []Rule
}

func (m *run) classify(c filenames.Candidate) Verdict {
	if !c.Valid {
		return Verdict{
			Candidate: c,
			Status:    InvalidFormat,
			Reason:    c.Message,
		}
	}

	key := CandidateKey(c)
	for _, rule := range m.rules {
		if v, ok := m.apply(rule, c, key); ok {
			log.Debug().
				Str("filename", c.Filename).
				Str("key", key.String()).
				Str("rule", string(rule)).
				Stringer("status", v.Status).
				Msg("rule matched")
			return v
		}
	}

	return Verdict{
		Candidate: c,
		Key:       key,
		Status:    NotInRoster,
		Reason:    NotInRoster.Label(),
	}
}

func (m *run) apply(rule Rule, c filenames.Candidate, key names.Key) (Verdict, bool) {
	v := Verdict{Candidate: c, Key: key}

	switch rule {
	case RuleStaff:
		e, ok := m.idx.Staff(key)
		if !ok {
			return v, false
		}
		v.Status = StaffMisfiled
		v.Entry = e
		v.MatchedName = e.DisplayName
		v.StaffTitle = e.Title
		v.Reason = StaffMisfiled.Label() + ": " + e.Title
	case RuleSchool:
		if c.SchoolPrefix == m.prefix {
			return v, false
		}
		v.Status = SchoolMismatch
		v.Reason = SchoolMismatch.Label()
		v.SuggestedFilename = filenames.SuggestFilename(m.prefix, c.LastName, c.FirstName, m.ext)
	case RulePrimary:
		e, ok := m.idx.Player(key)
		if !ok {
			return v, false
		}
		v.Status = Matched
		v.Entry = e
		v.MatchedName = e.DisplayName
		v.Reason = Matched.Label()
	case RuleNickname:
		e, ok := m.idx.Nickname(key)
		if !ok {
			return v, false
		}
		v.Status = NicknameMismatch
		v.Entry = e
		v.MatchedName = e.DisplayName
		v.Reason = NicknameMismatch.Label()
		v.SuggestedFilename = filenames.SuggestFilename(c.SchoolPrefix, c.LastName, e.FirstName, m.ext)
	case RuleFlipped:
		e, ok := m.idx.Player(names.Normalize(c.LastName + " " + c.FirstName))
		if !ok {
			return v, false
		}
		v.Status = FlippedOrder
		v.Entry = e
		v.MatchedName = e.DisplayName
		v.Reason = FlippedOrder.Label()
		v.SuggestedFilename = filenames.SuggestFilename(c.SchoolPrefix, c.FirstName, c.LastName, m.ext)
	default:
		return v, false
	}

	return v, true
}
