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
	"slices"
	"strings"

	"github.com/rostercheck/rostercheck/pkg/roster"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const TableName = "table"

var (
	nameHeaders      = []string{"name", "full name", "player", "player name"}
	firstNameHeaders = []string{"first", "first name"}
	lastNameHeaders  = []string{"last", "last name"}
	titleHeaders     = []string{"title", "position", "role"}
	staffMarkers     = []string{"staff", "coach", "coaches"}
)

// TableScraper reads rosters laid out as HTML tables. A table is a staff
// table when its caption, id, class or nearest preceding heading mentions
// staff or coaches; every other table with a name column is a player table.
type TableScraper struct {
	Fetcher Fetcher
}

// NewTableScraper returns a TableScraper using f.
func NewTableScraper(f Fetcher) *TableScraper {
	return &TableScraper{Fetcher: f}
}

func (s *TableScraper) Info() Info {
	return Info{
		Name:        TableName,
		Description: "Generic roster tables with a name column",
	}
}

func (s *TableScraper) Scrape(ctx context.Context, url string) (roster.Raw, error) {
	body, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		return roster.Raw{}, fmt.Errorf("failed to fetch roster page: %w", err)
	}
	return s.Parse(body)
}

type tableColumns struct {
	name  int
	first int
	last  int
	title int
}

// Parse extracts names from a fetched page.
func (s *TableScraper) Parse(body []byte) (roster.Raw, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return roster.Raw{}, fmt.Errorf("failed to parse roster html: %w", err)
	}

	players := newOrderedSet()
	staffSeen := newOrderedSet()
	var staff []roster.StaffMember

	for _, table := range findAll(doc, isElement(atom.Table)) {
		rows := findAll(table, isElement(atom.Tr))
		if len(rows) < 2 {
			continue
		}
		header := cellTexts(rows[0])
		cols, ok := columnsFor(header)
		if !ok {
			continue
		}
		isStaff := isStaffTable(table)

		for _, row := range rows[1:] {
			cells := cellTexts(row)
			name := cols.nameFrom(cells)
			if name == "" {
				continue
			}
			if !isStaff {
				players.add(name)
				continue
			}
			if !staffSeen.add(name) {
				continue
			}
			member := roster.StaffMember{Name: name}
			if cols.title >= 0 && cols.title < len(cells) {
				member.Title = cells[cols.title]
			}
			staff = append(staff, member)
		}
	}

	log.Debug().
		Int("players", len(players.items)).
		Int("staff", len(staff)).
		Msg("table scrape complete")

	return roster.Raw{Players: players.items, Staff: staff}, nil
}

func columnsFor(header []string) (tableColumns, bool) {
	cols := tableColumns{name: -1, first: -1, last: -1, title: -1}
	for i, h := range header {
		h = strings.ToLower(h)
		switch {
		case cols.name < 0 && slices.Contains(nameHeaders, h):
			cols.name = i
		case cols.first < 0 && slices.Contains(firstNameHeaders, h):
			cols.first = i
		case cols.last < 0 && slices.Contains(lastNameHeaders, h):
			cols.last = i
		case cols.title < 0 && slices.Contains(titleHeaders, h):
			cols.title = i
		}
	}
	return cols, cols.name >= 0 || (cols.first >= 0 && cols.last >= 0)
}

func (c tableColumns) nameFrom(cells []string) string {
	if c.name >= 0 {
		if c.name < len(cells) {
			return cells[c.name]
		}
		return ""
	}
	if c.first >= len(cells) || c.last >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[c.first] + " " + cells[c.last])
}

func cellTexts(row *html.Node) []string {
	var cells []string
	for c := row.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.DataAtom == atom.Td || c.DataAtom == atom.Th) {
			cells = append(cells, text(c))
		}
	}
	return cells
}

func isStaffTable(table *html.Node) bool {
	labels := []string{attr(table, "id"), attr(table, "class"), attr(table, "aria-label")}
	if caption := findFirst(table, isElement(atom.Caption)); caption != nil {
		labels = append(labels, text(caption))
	}
	if heading := precedingHeading(table); heading != nil {
		labels = append(labels, text(heading))
	}
	for _, label := range labels {
		label = strings.ToLower(label)
		for _, marker := range staffMarkers {
			if strings.Contains(label, marker) {
				return true
			}
		}
	}
	return false
}

func isHeading(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	default:
		return false
	}
}

// precedingHeading finds the closest heading before n among its earlier
// siblings and those of its ancestors.
func precedingHeading(n *html.Node) *html.Node {
	for cur := n; cur != nil; cur = cur.Parent {
		for sib := cur.PrevSibling; sib != nil; sib = sib.PrevSibling {
			if isHeading(sib) {
				return sib
			}
			if sib.Type == html.ElementNode {
				var last *html.Node
				walk(sib, func(c *html.Node) bool {
					if isHeading(c) {
						last = c
					}
					return true
				})
				if last != nil {
					return last
				}
			}
		}
	}
	return nil
}
