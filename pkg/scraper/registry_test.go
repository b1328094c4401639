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
	"context"
	"testing"

	"github.com/rostercheck/rostercheck/pkg/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedScraper struct {
	name  string
	calls int
}

func (s *namedScraper) Info() Info {
	return Info{Name: s.name}
}

func (s *namedScraper) Scrape(context.Context, string) (roster.Raw, error) {
	s.calls++
	return roster.Raw{Players: []string{s.name}}, nil
}

func TestRegistryFor(t *testing.T) {
	t.Parallel()

	r, err := NewDefaultRegistry(staticFetcher(""), map[string]string{
		"gobears.com":          SidearmName,
		"stats.gobears.com":    TableName,
		".example.edu":         TableName,
		"athletics.school.org": AutoName,
	})
	require.NoError(t, err)

	tests := []struct {
		url  string
		want string
	}{
		{url: "https://gobears.com/sports/roster", want: SidearmName},
		{url: "https://www.gobears.com/sports/roster", want: SidearmName},
		{url: "https://stats.gobears.com/roster", want: TableName},
		{url: "https://EXAMPLE.edu/team", want: TableName},
		{url: "https://notgobears.com/roster", want: AutoName},
		{url: "https://unknown.org/roster", want: AutoName},
		{url: "::not a url", want: AutoName},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()
			s, err := r.For(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Info().Name)
		})
	}
}

func TestRegistryUnknownStrategy(t *testing.T) {
	t.Parallel()

	_, err := NewDefaultRegistry(staticFetcher(""), map[string]string{"x.com": "magic"})
	require.ErrorIs(t, err, ErrUnknownStrategy)

	r := NewRegistry("missing")
	_, err = r.For("https://example.com")
	require.ErrorIs(t, err, ErrUnknownStrategy)

	require.Error(t, r.Route("  ", "missing"))
}

func TestRegistryScrapeAndReroute(t *testing.T) {
	t.Parallel()

	a := &namedScraper{name: "a"}
	b := &namedScraper{name: "b"}
	r := NewRegistry("a")
	r.Register(a)
	r.Register(b)

	raw, err := r.Scrape(context.Background(), "https://team.example.com/roster")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, raw.Players)

	require.NoError(t, r.Route("example.com", "b"))
	raw, err = r.Scrape(context.Background(), "https://team.example.com/roster")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, raw.Players)

	require.NoError(t, r.Route("example.com", "a"))
	_, err = r.Scrape(context.Background(), "https://team.example.com/roster")
	require.NoError(t, err)

	assert.Equal(t, 2, a.calls)
	assert.Equal(t, 1, b.calls)
	assert.Equal(t, []string{"a", "b"}, r.Names())

	got, ok := r.Get("b")
	require.True(t, ok)
	assert.Same(t, b, got)
}
