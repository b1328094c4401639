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

	"github.com/rostercheck/rostercheck/pkg/roster"
	"github.com/rs/zerolog/log"
)

const AutoName = "auto"

// AutoScraper fetches a page once and hands it to each parser in turn,
// returning the first non-empty result.
type AutoScraper struct {
	Fetcher Fetcher
	Parsers []Parser
}

// NewAutoScraper tries the Sidearm layout first, then generic tables.
func NewAutoScraper(f Fetcher) *AutoScraper {
	return &AutoScraper{
		Fetcher: f,
		Parsers: []Parser{NewSidearmScraper(f), NewTableScraper(f)},
	}
}

func (s *AutoScraper) Info() Info {
	return Info{
		Name:        AutoName,
		Description: "Try every known page layout until one yields names",
	}
}

func (s *AutoScraper) Scrape(ctx context.Context, url string) (roster.Raw, error) {
	body, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		return roster.Raw{}, fmt.Errorf("failed to fetch roster page: %w", err)
	}
	return s.Parse(body)
}

// Parse returns the first non-empty result. Parser errors are only
// returned when no parser produced names.
func (s *AutoScraper) Parse(body []byte) (roster.Raw, error) {
	var errs []error
	for _, p := range s.Parsers {
		raw, err := p.Parse(body)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !raw.IsEmpty() {
			log.Debug().Msgf("auto scraper: parser %T found names", p)
			return raw, nil
		}
	}
	if len(errs) > 0 {
		return roster.Raw{}, errors.Join(errs...)
	}
	return roster.Raw{}, nil
}
