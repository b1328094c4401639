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

package cli

import (
	"fmt"

	"github.com/rostercheck/rostercheck/pkg/check"
	"github.com/rostercheck/rostercheck/pkg/config"
	"github.com/rostercheck/rostercheck/pkg/scraper"
	"github.com/rostercheck/rostercheck/pkg/shared/httpclient"
)

// services is the scraper stack shared by check and serve.
type services struct {
	client  *httpclient.Client
	cache   *scraper.Cached
	checker *check.Checker
}

// newServices wires the HTTP client, scraper registry and checker. A
// positive cache TTL in config puts a scrape cache in front of the
// registry when cached is set.
func newServices(cfg *config.Instance, cached bool) (*services, error) {
	client := httpclient.NewClientFromConfig(cfg)

	reg, err := scraper.NewDefaultRegistry(client, cfg.ScraperStrategies())
	if err != nil {
		return nil, fmt.Errorf("failed to set up scrapers: %w", err)
	}

	svc := &services{client: client}
	var s scraper.Scraper = reg
	if ttl := cfg.CacheTTL(); cached && ttl > 0 {
		svc.cache = scraper.NewCached(reg, ttl, nil)
		s = svc.cache
	}
	svc.checker = check.New(cfg, s)
	return svc, nil
}

func (s *services) Close() {
	if s.cache != nil {
		s.cache.Close()
	}
}
