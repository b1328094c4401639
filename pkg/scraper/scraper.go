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

// Package scraper reads raw player and staff names from roster web pages.
//
// Scraping heuristics live behind the Scraper interface so site-specific
// markup never leaks into matching. A Registry picks a strategy per host and
// Cached avoids refetching the same page during a session.
package scraper

import (
	"context"

	"github.com/rostercheck/rostercheck/pkg/roster"
)

// Scraper is the interface for all roster scraping strategies.
type Scraper interface {
	// Scrape fetches url and returns the names found, in page order.
	Scrape(ctx context.Context, url string) (roster.Raw, error)

	// Info returns scraper metadata.
	Info() Info
}

// Info contains scraper metadata.
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Fetcher retrieves page bodies. *httpclient.Client satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, url string) ([]byte, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f(ctx, url)
}

// Parser extracts names from an already fetched page.
type Parser interface {
	Parse(body []byte) (roster.Raw, error)
}

// orderedSet collects strings once each, keeping first-seen order.
type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

func (s *orderedSet) add(item string) bool {
	if item == "" {
		return false
	}
	if _, ok := s.seen[item]; ok {
		return false
	}
	s.seen[item] = struct{}{}
	s.items = append(s.items, item)
	return true
}
