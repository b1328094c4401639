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

// Package roster builds lookup tables of player and staff name keys from raw
// scraped roster text.
package roster

import (
	"github.com/rostercheck/rostercheck/pkg/names"
)

// Role is the part a person plays on a roster.
type Role string

const (
	RolePlayer Role = "player"
	RoleStaff  Role = "staff"
)

// StaffMember is one raw staff listing. Title may be empty.
type StaffMember struct {
	Name  string `json:"name" yaml:"name" validate:"required"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
}

// Raw is the unprocessed output of a roster source, in page order.
type Raw struct {
	Players []string      `json:"players" yaml:"players"`
	Staff   []StaffMember `json:"staff" yaml:"staff"`
}

// IsEmpty reports whether the source produced no names at all.
func (r Raw) IsEmpty() bool {
	return len(r.Players) == 0 && len(r.Staff) == 0
}

// Entry is one person from the roster. DisplayName is kept verbatim for
// user-facing output; the keys are what matching compares.
type Entry struct {
	DisplayName string
	Role        Role
	FirstName   string
	Nickname    string
	LastName    string
	PrimaryKey  names.Key
	NicknameKey names.Key
	Title       string
}

// HasNickname reports whether the display name carried a quoted nickname.
func (e *Entry) HasNickname() bool {
	return e.Nickname != ""
}

// Counts summarizes the size of each lookup table.
type Counts struct {
	Players   int `json:"players"`
	Nicknames int `json:"nicknames"`
	Staff     int `json:"staff"`
}

// Index holds the three lookup tables. It is read-only once built and safe
// for concurrent readers. A nil *Index behaves as an empty roster.
type Index struct {
	primary  map[names.Key]*Entry
	nickname map[names.Key]*Entry
	staff    map[names.Key]*Entry
	// playerOrder holds primary keys in order of first registration.
	playerOrder []names.Key
}

func newIndex() *Index {
	return &Index{
		primary:  make(map[names.Key]*Entry),
		nickname: make(map[names.Key]*Entry),
		staff:    make(map[names.Key]*Entry),
	}
}

// Player looks up a primary player key.
func (idx *Index) Player(key names.Key) (*Entry, bool) {
	if idx == nil {
		return nil, false
	}
	e, ok := idx.primary[key]
	return e, ok
}

// Nickname looks up a nickname player key.
func (idx *Index) Nickname(key names.Key) (*Entry, bool) {
	if idx == nil {
		return nil, false
	}
	e, ok := idx.nickname[key]
	return e, ok
}

// Staff looks up a staff key.
func (idx *Index) Staff(key names.Key) (*Entry, bool) {
	if idx == nil {
		return nil, false
	}
	e, ok := idx.staff[key]
	return e, ok
}

// Players returns the entries of the primary table in roster order.
func (idx *Index) Players() []*Entry {
	if idx == nil {
		return nil
	}
	players := make([]*Entry, 0, len(idx.playerOrder))
	for _, key := range idx.playerOrder {
		if e, ok := idx.primary[key]; ok {
			players = append(players, e)
		}
	}
	return players
}

// Counts returns the number of keys in each table.
func (idx *Index) Counts() Counts {
	if idx == nil {
		return Counts{}
	}
	return Counts{
		Players:   len(idx.primary),
		Nicknames: len(idx.nickname),
		Staff:     len(idx.staff),
	}
}

// IsEmpty reports whether no player or staff key was registered.
func (idx *Index) IsEmpty() bool {
	c := idx.Counts()
	return c.Players == 0 && c.Staff == 0
}
