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
	"regexp"
	"strings"

	"github.com/rostercheck/rostercheck/pkg/names"
	"github.com/rs/zerolog/log"
)

// DefaultStaffTitle labels staff listed without a title.
const DefaultStaffTitle = "Staff"

// nicknamePattern splits `First "Nick" Last` into its three parts.
var nicknamePattern = regexp.MustCompile(`^(\S+)\s+["“”‘’](.+?)["“”‘’]\s+(.+)$`)

// Builder turns raw roster text into an Index.
type Builder struct {
	// Denylist filters non-person labels out of the player tables. Nil
	// disables filtering.
	Denylist     *Denylist
	DefaultTitle string
}

// NewBuilder returns a Builder with the default denylist and staff title.
func NewBuilder() *Builder {
	return &Builder{
		Denylist:     DefaultDenylist(),
		DefaultTitle: DefaultStaffTitle,
	}
}

// Build registers staff first, then players. Within a table the last entry
// written for a key wins. Player keys already present in the staff table are
// not registered. Names that normalize to an empty key are skipped.
func (b *Builder) Build(raw Raw) *Index {
	idx := newIndex()

	defaultTitle := DefaultStaffTitle
	if b != nil && strings.TrimSpace(b.DefaultTitle) != "" {
		defaultTitle = strings.TrimSpace(b.DefaultTitle)
	}
	var deny *Denylist
	if b != nil {
		deny = b.Denylist
	}

	for _, s := range raw.Staff {
		display := names.CollapseWhitespace(s.Name)
		key := names.Normalize(display)
		if key.IsEmpty() {
			continue
		}
		title := names.CollapseWhitespace(s.Title)
		if title == "" {
			title = defaultTitle
		}
		first, last := SplitDisplayName(display)
		idx.staff[key] = &Entry{
			DisplayName: display,
			Role:        RoleStaff,
			FirstName:   first,
			LastName:    last,
			PrimaryKey:  key,
			Title:       title,
		}
	}

	for _, p := range raw.Players {
		display := names.CollapseWhitespace(p)
		if display == "" {
			continue
		}
		if deny.Denies(display) {
			log.Debug().Str("name", display).Msg("skipping denylisted roster label")
			continue
		}

		entry := ParsePlayer(display)
		if entry.PrimaryKey.IsEmpty() {
			continue
		}
		if _, isStaff := idx.staff[entry.PrimaryKey]; isStaff {
			log.Debug().Str("name", display).Msg("player name is also staff, keeping staff only")
			continue
		}

		if _, seen := idx.primary[entry.PrimaryKey]; !seen {
			idx.playerOrder = append(idx.playerOrder, entry.PrimaryKey)
		}
		idx.primary[entry.PrimaryKey] = entry

		if !entry.NicknameKey.IsEmpty() {
			if _, isStaff := idx.staff[entry.NicknameKey]; !isStaff {
				idx.nickname[entry.NicknameKey] = entry
			}
		}
	}

	c := idx.Counts()
	log.Debug().
		Int("players", c.Players).
		Int("nicknames", c.Nicknames).
		Int("staff", c.Staff).
		Msg("built roster index")

	return idx
}

// Build builds an Index with the default Builder settings.
func Build(raw Raw) *Index {
	return NewBuilder().Build(raw)
}

// ParsePlayer reads one player display name. A name with a quoted nickname
// after its first token gets both a primary and a nickname key; any other
// name gets a primary key only.
func ParsePlayer(display string) *Entry {
	display = names.CollapseWhitespace(display)
	entry := &Entry{
		DisplayName: display,
		Role:        RolePlayer,
	}

	if m := nicknamePattern.FindStringSubmatch(display); m != nil {
		entry.FirstName = m[1]
		entry.Nickname = strings.TrimSpace(m[2])
		entry.LastName = m[3]
		entry.PrimaryKey = names.Normalize(m[1] + " " + m[3])
		entry.NicknameKey = names.Normalize(entry.Nickname + " " + m[3])
		return entry
	}

	entry.FirstName, entry.LastName = SplitDisplayName(display)
	entry.PrimaryKey = names.Normalize(display)
	return entry
}

// SplitDisplayName splits on the first space: the first token is the first
// name and the remainder the last name, which is empty for one-word names.
func SplitDisplayName(display string) (first, last string) {
	display = names.CollapseWhitespace(display)
	first, last, _ = strings.Cut(display, " ")
	return first, last
}
