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

package scraper

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rostercheck/rostercheck/pkg/names"
	"github.com/rostercheck/rostercheck/pkg/roster"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	SidearmName = "sidearm"

	viewFullBio = " - View Full Bio"
	coachItem   = "sidearm-roster-coach"
	coachName   = "sidearm-roster-coach-name"
	coachTitle  = "sidearm-roster-coach-title"
	tablePlayer = "sidearm-table-player-name"
)

var bioHrefPattern = regexp.MustCompile(`/roster/.*/\d+`)

// playerNameClasses mark elements whose whole text is a player name on the
// common athletics site templates.
var playerNameClasses = []string{
	"s-text-regular-bold",
	"roster-list-item__title",
	"player-name",
}

// SidearmScraper reads roster pages built on the SIDEARM Sports templates
// used by most college athletics sites.
//
// Players come from links to bio pages (preferring the "Name - View Full
// Bio" aria-label) and from the known player name classes. Staff come from
// li.sidearm-roster-coach blocks.
type SidearmScraper struct {
	Fetcher Fetcher
}

// NewSidearmScraper returns a SidearmScraper using f.
func NewSidearmScraper(f Fetcher) *SidearmScraper {
	return &SidearmScraper{Fetcher: f}
}

func (s *SidearmScraper) Info() Info {
	return Info{
		Name:        SidearmName,
		Description: "SIDEARM Sports roster pages (bio links, roster cards, coach lists)",
	}
}

func (s *SidearmScraper) Scrape(ctx context.Context, url string) (roster.Raw, error) {
	body, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		return roster.Raw{}, fmt.Errorf("failed to fetch roster page: %w", err)
	}
	return s.Parse(body)
}

// Parse extracts names from a fetched page.
func (s *SidearmScraper) Parse(body []byte) (roster.Raw, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return roster.Raw{}, fmt.Errorf("failed to parse roster html: %w", err)
	}

	inCoachItem := func(n *html.Node) bool {
		return closest(n, elementWithClass(atom.Li, coachItem)) != nil
	}

	players := newOrderedSet()

	for _, a := range findAll(doc, isElement(atom.A)) {
		if !bioHrefPattern.MatchString(attr(a, "href")) {
			continue
		}
		if label := attr(a, "aria-label"); strings.Contains(label, viewFullBio) {
			name, _, _ := strings.Cut(label, viewFullBio)
			players.add(names.CollapseWhitespace(name))
			continue
		}
		if inCoachItem(a) {
			continue
		}
		players.add(text(a))
	}

	for _, n := range findAll(doc, isPlayerNameNode) {
		if inCoachItem(n) {
			continue
		}
		players.add(text(n))
	}

	var staff []roster.StaffMember
	seenStaff := newOrderedSet()
	for _, li := range findAll(doc, elementWithClass(atom.Li, coachItem)) {
		nameDiv := findFirst(li, withClass(coachName))
		if nameDiv == nil {
			continue
		}
		nameNode := nameDiv
		if p := findFirst(nameDiv, isElement(atom.P)); p != nil {
			nameNode = p
		}
		name := text(nameNode)
		if !seenStaff.add(name) {
			continue
		}

		member := roster.StaffMember{Name: name}
		if t := findFirst(li, withClass(coachTitle)); t != nil {
			member.Title = text(t)
		}
		staff = append(staff, member)
	}

	log.Debug().
		Int("players", len(players.items)).
		Int("staff", len(staff)).
		Msg("sidearm scrape complete")

	return roster.Raw{Players: players.items, Staff: staff}, nil
}

func isPlayerNameNode(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if n.DataAtom == atom.Td && hasClass(n, tablePlayer) {
		return true
	}
	for _, class := range playerNameClasses {
		if hasClass(n, class) {
			return true
		}
	}
	return false
}
