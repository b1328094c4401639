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
	"testing"

	"github.com/rostercheck/rostercheck/pkg/names"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlayer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		display      string
		first        string
		nickname     string
		last         string
		primaryKey   names.Key
		nicknameKey  names.Key
		wantNickname bool
	}{
		{
			name:       "plain",
			display:    "John Smith",
			first:      "John",
			last:       "Smith",
			primaryKey: "john smith",
		},
		{
			name:         "straight quoted nickname",
			display:      `John "Jonathan" Smith`,
			first:        "John",
			nickname:     "Jonathan",
			last:         "Smith",
			primaryKey:   "john smith",
			nicknameKey:  "jonathan smith",
			wantNickname: true,
		},
		{
			name:         "curly quoted nickname with multi word last",
			display:      "Robert “Bobby” De La Cruz Jr.",
			first:        "Robert",
			nickname:     "Bobby",
			last:         "De La Cruz Jr.",
			primaryKey:   "robert de la cruz",
			nicknameKey:  "bobby de la cruz",
			wantNickname: true,
		},
		{
			name:       "single word",
			display:    "Pelé",
			first:      "Pelé",
			primaryKey: "pele",
		},
		{
			name:       "extra whitespace",
			display:    "  Mary   Ann  Lee ",
			first:      "Mary",
			last:       "Ann Lee",
			primaryKey: "mary ann lee",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := ParsePlayer(tt.display)
			assert.Equal(t, RolePlayer, e.Role)
			assert.Equal(t, tt.first, e.FirstName)
			assert.Equal(t, tt.nickname, e.Nickname)
			assert.Equal(t, tt.last, e.LastName)
			assert.Equal(t, tt.primaryKey, e.PrimaryKey)
			assert.Equal(t, tt.nicknameKey, e.NicknameKey)
			assert.Equal(t, tt.wantNickname, e.HasNickname())
		})
	}
}

func TestBuildTables(t *testing.T) {
	t.Parallel()

	idx := Build(Raw{
		Players: []string{
			"John Smith",
			`Jon "JJ" Jones`,
			"Jane Doe",
		},
		Staff: []StaffMember{
			{Name: "Pat Riley", Title: "Head Coach"},
			{Name: "Sam Jones"},
		},
	})

	e, ok := idx.Player("john smith")
	require.True(t, ok)
	assert.Equal(t, "John Smith", e.DisplayName)

	e, ok = idx.Player("jon jones")
	require.True(t, ok)
	n, ok := idx.Nickname("jj jones")
	require.True(t, ok)
	assert.Same(t, e, n)

	s, ok := idx.Staff("pat riley")
	require.True(t, ok)
	assert.Equal(t, "Head Coach", s.Title)
	assert.Equal(t, RoleStaff, s.Role)

	s, ok = idx.Staff("sam jones")
	require.True(t, ok)
	assert.Equal(t, DefaultStaffTitle, s.Title)

	assert.Equal(t, Counts{Players: 3, Nicknames: 1, Staff: 2}, idx.Counts())
	assert.False(t, idx.IsEmpty())
}

func TestBuildStaffPrecedence(t *testing.T) {
	t.Parallel()

	idx := Build(Raw{
		Players: []string{"Pat Riley", "John Smith"},
		Staff:   []StaffMember{{Name: "Pat Riley", Title: "Head Coach"}},
	})

	_, ok := idx.Player("pat riley")
	assert.False(t, ok, "staff names must not be registered as players")
	_, ok = idx.Staff("pat riley")
	assert.True(t, ok)
	assert.Len(t, idx.Players(), 1)
}

func TestBuildLastWriteWins(t *testing.T) {
	t.Parallel()

	idx := Build(Raw{
		Players: []string{"Jose Garcia", "Jane Doe", "José García"},
	})

	e, ok := idx.Player("jose garcia")
	require.True(t, ok)
	assert.Equal(t, "José García", e.DisplayName)

	players := idx.Players()
	require.Len(t, players, 2)
	assert.Equal(t, "José García", players[0].DisplayName, "order follows first appearance")
	assert.Equal(t, "Jane Doe", players[1].DisplayName)
}

func TestBuildDenylist(t *testing.T) {
	t.Parallel()

	idx := Build(Raw{
		Players: []string{"View Full Bio", "Head Coach", "John Smith", "Tony Biondi", "   "},
	})

	assert.Equal(t, 2, idx.Counts().Players)
	_, ok := idx.Player("tony biondi")
	assert.True(t, ok)

	b := &Builder{}
	idx = b.Build(Raw{Players: []string{"View Full Bio"}})
	assert.Equal(t, 1, idx.Counts().Players, "nil denylist keeps everything")
}

func TestBuildCustomDefaultTitle(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	b.DefaultTitle = "Support Staff"
	idx := b.Build(Raw{Staff: []StaffMember{{Name: "Pat Riley", Title: "  "}}})

	s, ok := idx.Staff("pat riley")
	require.True(t, ok)
	assert.Equal(t, "Support Staff", s.Title)
}

func TestNilIndex(t *testing.T) {
	t.Parallel()

	var idx *Index
	_, ok := idx.Player("john smith")
	assert.False(t, ok)
	_, ok = idx.Nickname("john smith")
	assert.False(t, ok)
	_, ok = idx.Staff("john smith")
	assert.False(t, ok)
	assert.Empty(t, idx.Players())
	assert.True(t, idx.IsEmpty())
	assert.Equal(t, Counts{}, idx.Counts())
}

func TestBuildEmpty(t *testing.T) {
	t.Parallel()

	idx := Build(Raw{})
	assert.True(t, idx.IsEmpty())
	assert.True(t, Raw{}.IsEmpty())
}

func TestSplitDisplayName(t *testing.T) {
	t.Parallel()

	first, last := SplitDisplayName("Jane Doe")
	assert.Equal(t, "Jane", first)
	assert.Equal(t, "Doe", last)

	first, last = SplitDisplayName("Cher")
	assert.Equal(t, "Cher", first)
	assert.Empty(t, last)
}
