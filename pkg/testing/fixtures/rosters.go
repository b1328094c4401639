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

// Package fixtures holds shared roster and filename samples for tests.
package fixtures

import "github.com/rostercheck/rostercheck/pkg/roster"

const SchoolPrefix = "cal"

// SampleRoster is a small roster covering accents, suffixes, nicknames,
// staff and a denylisted label.
func SampleRoster() roster.Raw {
	return roster.Raw{
		Players: []string{
			"John Smith Jr.",
			`Robert "Bobby" Jones`,
			"José Núñez",
			"Mary O'Brien",
			"Kim Lee",
			"Full Bio",
		},
		Staff: []roster.StaffMember{
			{Name: "Pat Riley", Title: "Head Coach"},
			{Name: "Lee Park"},
		},
	}
}

// SampleFilenames exercises every verdict against SampleRoster except
// FlippedOrder.
func SampleFilenames() []string {
	return []string{
		"cal_smith_john.png",
		"cal_jones_bobby.png",
		"cal_nunez_jose.PNG",
		"stan_obrien_mary.png",
		"cal_riley_pat.png",
		"cal_nobody_some.png",
		"cal-smith-john.png",
		"cal__kim.png",
		"notes.txt",
	}
}
