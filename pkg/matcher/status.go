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
	"fmt"
	"strings"
)

// Status is the outcome assigned to one filename.
type Status int

const (
	InvalidFormat Status = iota
	SchoolMismatch
	Matched
	StaffMisfiled
	NicknameMismatch
	NotInRoster
	// FlippedOrder is only produced when flipped order detection is enabled.
	FlippedOrder
	// Missing marks a roster player with no photo. It is never a verdict.
	Missing
)

var statusNames = map[Status]string{
	InvalidFormat:    "invalid_format",
	SchoolMismatch:   "school_mismatch",
	Matched:          "matched",
	StaffMisfiled:    "staff_misfiled",
	NicknameMismatch: "nickname_mismatch",
	NotInRoster:      "not_in_roster",
	FlippedOrder:     "flipped_order",
	Missing:          "missing",
}

var statusLabels = map[Status]string{
	InvalidFormat:    "Invalid filename format",
	SchoolMismatch:   "School prefix mismatch",
	Matched:          "OK",
	StaffMisfiled:    "Staff photo in player set",
	NicknameMismatch: "Nickname used instead of first name",
	NotInRoster:      "Name not in roster",
	FlippedOrder:     "First and last name swapped",
	Missing:          "Missing photo",
}

// String returns the machine tag, e.g. "not_in_roster".
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Label returns the short human string shown in reports.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return s.String()
}

// IsProblem reports whether the status needs someone to act on it.
func (s Status) IsProblem() bool {
	return s != Matched
}

// MarshalText encodes the machine tag.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a machine tag.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStatus looks up a status by its machine tag.
func ParseStatus(name string) (Status, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range statusNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown status: %q", name)
}

// AllStatuses lists every status in declaration order.
func AllStatuses() []Status {
	return []Status{
		InvalidFormat,
		SchoolMismatch,
		Matched,
		StaffMisfiled,
		NicknameMismatch,
		NotInRoster,
		FlippedOrder,
		Missing,
	}
}
