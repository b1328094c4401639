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
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/rostercheck/rostercheck/pkg/helpers/syncutil"
	"github.com/rostercheck/rostercheck/pkg/roster"
	"github.com/rs/zerolog/log"
)

var ErrUnknownStrategy = errors.New("unknown scraper strategy")

type route struct {
	suffix string
	name   string
}

// Registry holds named scrapers and routes page URLs to them by host
// suffix. URLs matching no route use the fallback strategy.
type Registry struct {
	scrapers map[string]Scraper
	fallback string
	routes   []route
	mu       syncutil.RWMutex
}

func NewRegistry(fallback string) *Registry {
	return &Registry{
		scrapers: make(map[string]Scraper),
		fallback: fallback,
	}
}

// NewDefaultRegistry registers the built-in strategies with auto as the
// fallback, then applies host routes such as {"gobears.com": "sidearm"}.
func NewDefaultRegistry(f Fetcher, routes map[string]string) (*Registry, error) {
	r := NewRegistry(AutoName)
	r.Register(NewAutoScraper(f))
	r.Register(NewSidearmScraper(f))
	r.Register(NewTableScraper(f))

	// sorted so route order and errors are stable
	suffixes := make([]string, 0, len(routes))
	for suffix := range routes {
		suffixes = append(suffixes, suffix)
	}
	sort.Strings(suffixes)
	for _, suffix := range suffixes {
		if err := r.Route(suffix, routes[suffix]); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds s under its Info name, replacing any earlier scraper of
// the same name.
func (r *Registry) Register(s Scraper) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scrapers[s.Info().Name] = s
}

// Route sends hosts ending in suffix to the named strategy. Longer
// suffixes win over shorter ones.
func (r *Registry) Route(suffix, name string) error {
	suffix = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(suffix)), ".")
	if suffix == "" {
		return errors.New("empty host suffix")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.scrapers[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownStrategy, name)
	}
	for i := range r.routes {
		if r.routes[i].suffix == suffix {
			r.routes[i].name = name
			return nil
		}
	}
	r.routes = append(r.routes, route{suffix: suffix, name: name})
	sort.SliceStable(r.routes, func(i, j int) bool {
		return len(r.routes[i].suffix) > len(r.routes[j].suffix)
	})
	return nil
}

func (r *Registry) Get(name string) (Scraper, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.scrapers[name]
	return s, ok
}

// Names lists registered strategies in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.scrapers))
	for name := range r.scrapers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// For returns the scraper that handles pageURL.
func (r *Registry) For(pageURL string) (Scraper, error) {
	host := ""
	if u, err := url.Parse(pageURL); err == nil {
		host = strings.ToLower(u.Hostname())
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	name := r.fallback
	for _, rt := range r.routes {
		if host == rt.suffix || strings.HasSuffix(host, "."+rt.suffix) {
			name = rt.name
			break
		}
	}

	s, ok := r.scrapers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, name)
	}
	return s, nil
}

func (r *Registry) Info() Info {
	return Info{
		Name:        "registry",
		Description: "Routes pages to a strategy by host",
	}
}

// Scrape picks a strategy for url and runs it.
func (r *Registry) Scrape(ctx context.Context, pageURL string) (roster.Raw, error) {
	s, err := r.For(pageURL)
	if err != nil {
		return roster.Raw{}, err
	}
	log.Debug().
		Str("url", pageURL).
		Str("strategy", s.Info().Name).
		Msg("scraping roster")
	return s.Scrape(ctx, pageURL)
}
