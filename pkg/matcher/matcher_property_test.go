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

package matcher

import (
	"testing"

	"github.com/rostercheck/rostercheck/pkg/filenames"
	"github.com/rostercheck/rostercheck/pkg/roster"
	"pgregory.net/rapid"
)

var (
	firstNames = []string{"john", "jane", "pat", "jose", "mary", "jon"}
	lastNames  = []string{"smith", "doe", "riley", "garcia", "lee"}
)

func filenameGen() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		prefix := rapid.SampledFrom([]string{"cal", "ucla", "CAL"}).Draw(t, "prefix")
		last := rapid.SampledFrom(lastNames).Draw(t, "last")
		first := rapid.SampledFrom(firstNames).Draw(t, "first")
		shape := rapid.IntRange(0, 4).Draw(t, "shape")
		switch shape {
		case 0:
			return prefix + last + first + ".png"
		case 1:
			return prefix + "__" + first + ".png"
		case 2:
			return prefix + "_" + last + "_" + first + ".txt"
		default:
			return prefix + "_" + last + "_" + first + ".png"
		}
	})
}

func rawGen() *rapid.Generator[roster.Raw] {
	name := rapid.Custom(func(t *rapid.T) string {
		return rapid.SampledFrom(firstNames).Draw(t, "first") + " " +
			rapid.SampledFrom(lastNames).Draw(t, "last")
	})
	return rapid.Custom(func(t *rapid.T) roster.Raw {
		var raw roster.Raw
		raw.Players = rapid.SliceOfN(name, 0, 8).Draw(t, "players")
		for _, s := range rapid.SliceOfN(name, 0, 3).Draw(t, "staff") {
			raw.Staff = append(raw.Staff, roster.StaffMember{Name: s, Title: "Coach"})
		}
		return raw
	})
}

// TestPropertyMatchTotal verifies every candidate gets exactly one verdict in
// input order.
func TestPropertyMatchTotal(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		files := rapid.SliceOfN(filenameGen(), 0, 20).Draw(t, "files")
		raw := rawGen().Draw(t, "raw")
		flipped := rapid.Bool().Draw(t, "flipped")

		candidates := filenames.Parse(files)
		res := Match(candidates, roster.Build(raw), "cal", Options{DetectFlippedOrder: flipped})

		if len(res.Verdicts) != len(candidates) {
			t.Fatalf("expected %d verdicts, got %d", len(candidates), len(res.Verdicts))
		}
		for i, v := range res.Verdicts {
			if v.Candidate != candidates[i] {
				t.Fatalf("verdict %d out of order: %+v vs %+v", i, v.Candidate, candidates[i])
			}
			if !candidates[i].Valid && v.Status != InvalidFormat {
				t.Fatalf("invalid candidate got %s", v.Status)
			}
			if v.Status == Missing {
				t.Fatalf("Missing used as verdict")
			}
		}
	})
}

// TestPropertyStaffWins verifies a key shared by staff and player is never
// Matched and never reported missing.
func TestPropertyStaffWins(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		first := rapid.SampledFrom(firstNames).Draw(t, "first")
		last := rapid.SampledFrom(lastNames).Draw(t, "last")
		prefix := rapid.SampledFrom([]string{"cal", "ucla"}).Draw(t, "prefix")

		display := first + " " + last
		idx := roster.Build(roster.Raw{
			Players: []string{display},
			Staff:   []roster.StaffMember{{Name: display}},
		})
		res := Match(filenames.Parse([]string{prefix + "_" + last + "_" + first + ".png"}), idx, "cal", Options{})

		if res.Verdicts[0].Status != StaffMisfiled {
			t.Fatalf("expected staff verdict, got %s", res.Verdicts[0].Status)
		}
		if len(res.Missing) != 0 {
			t.Fatalf("staff member reported missing: %+v", res.Missing)
		}
	})
}

// TestPropertyMissingAbsentFromFiles verifies every missing player's key is
// absent from the valid non-staff candidate keys.
func TestPropertyMissingAbsentFromFiles(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		files := rapid.SliceOfN(filenameGen(), 0, 20).Draw(t, "files")
		raw := rawGen().Draw(t, "raw")

		res := Match(filenames.Parse(files), roster.Build(raw), "cal", Options{})

		for _, m := range res.Missing {
			for _, v := range res.Verdicts {
				if v.Candidate.Valid && v.Status != StaffMisfiled && v.Key == m.Entry.PrimaryKey {
					t.Fatalf("%q reported missing but %q has its key", m.Entry.DisplayName, v.Candidate.Filename)
				}
			}
		}
	})
}
