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

package config

import (
	"maps"
	"time"
)

const (
	DefaultScraperTimeout    = 20 * time.Second
	DefaultRequestsPerMinute = 30
	DefaultCacheTTL          = 10 * time.Minute
	DefaultMaxPageBytes      = 8 << 20
	DefaultUserAgent         = "Mozilla/5.0 (compatible; rostercheck/1.0)"
)

type Scraper struct {
	TimeoutSeconds    *int              `toml:"timeout_seconds,omitempty"`
	RequestsPerMinute *int              `toml:"requests_per_minute,omitempty"`
	CacheTTLSeconds   *int              `toml:"cache_ttl_seconds,omitempty"`
	MaxPageBytes      *int64            `toml:"max_page_bytes,omitempty"`
	Strategies        map[string]string `toml:"strategies,omitempty"`
	UserAgent         string            `toml:"user_agent,omitempty"`
}

func (c *Instance) ScraperTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Scraper.TimeoutSeconds == nil || *c.vals.Scraper.TimeoutSeconds <= 0 {
		return DefaultScraperTimeout
	}
	return time.Duration(*c.vals.Scraper.TimeoutSeconds) * time.Second
}

func (c *Instance) RequestsPerMinute() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Scraper.RequestsPerMinute == nil || *c.vals.Scraper.RequestsPerMinute <= 0 {
		return DefaultRequestsPerMinute
	}
	return *c.vals.Scraper.RequestsPerMinute
}

// CacheTTL returns how long scraped rosters are reused. Zero disables the
// cache.
func (c *Instance) CacheTTL() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Scraper.CacheTTLSeconds == nil {
		return DefaultCacheTTL
	}
	if *c.vals.Scraper.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(*c.vals.Scraper.CacheTTLSeconds) * time.Second
}

func (c *Instance) SetCacheTTL(ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	secs := int(ttl / time.Second)
	c.vals.Scraper.CacheTTLSeconds = &secs
}

func (c *Instance) MaxPageBytes() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Scraper.MaxPageBytes == nil || *c.vals.Scraper.MaxPageBytes <= 0 {
		return DefaultMaxPageBytes
	}
	return *c.vals.Scraper.MaxPageBytes
}

func (c *Instance) UserAgent() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Scraper.UserAgent == "" {
		return DefaultUserAgent
	}
	return c.vals.Scraper.UserAgent
}

// ScraperStrategies maps host suffixes to scraper strategy names.
func (c *Instance) ScraperStrategies() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.vals.Scraper.Strategies)
}
