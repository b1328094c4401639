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
	"slices"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rostercheck/rostercheck/pkg/helpers/syncutil"
	"github.com/rostercheck/rostercheck/pkg/roster"
	"github.com/rs/zerolog/log"
)

type cacheEntry struct {
	expires time.Time
	raw     roster.Raw
}

// Cached wraps a Scraper and reuses successful results for a URL until
// they expire. A background goroutine evicts expired entries until Close.
type Cached struct {
	next    Scraper
	clock   clockwork.Clock
	entries map[string]cacheEntry
	done    chan struct{}
	wg      sync.WaitGroup
	ttl     time.Duration
	mu      syncutil.Mutex
	once    sync.Once
}

// NewCached starts a cache in front of next. The eviction sweep runs once
// per ttl.
func NewCached(next Scraper, ttl time.Duration, clock clockwork.Clock) *Cached {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	c := &Cached{
		next:    next,
		clock:   clock,
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		done:    make(chan struct{}),
	}
	c.wg.Add(1)
	go c.evictLoop()
	return c
}

func (c *Cached) evictLoop() {
	defer c.wg.Done()
	ticker := c.clock.NewTicker(c.ttl)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.Chan():
			if n := c.evict(); n > 0 {
				log.Debug().Int("count", n).Msg("evicted cached rosters")
			}
		}
	}
}

func (c *Cached) evict() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.clock.Now()
	n := 0
	for url, e := range c.entries {
		if !now.Before(e.expires) {
			delete(c.entries, url)
			n++
		}
	}
	return n
}

func (c *Cached) Info() Info {
	return c.next.Info()
}

// Scrape returns a cached copy when one is fresh, otherwise scrapes and
// stores the result. Errors and empty results are not cached.
func (c *Cached) Scrape(ctx context.Context, url string) (roster.Raw, error) {
	c.mu.Lock()
	e, ok := c.entries[url]
	c.mu.Unlock()
	if ok && c.clock.Now().Before(e.expires) {
		log.Debug().Str("url", url).Msg("roster cache hit")
		return cloneRaw(e.raw), nil
	}

	raw, err := c.next.Scrape(ctx, url)
	if err != nil {
		return raw, err
	}
	if !raw.IsEmpty() {
		c.mu.Lock()
		c.entries[url] = cacheEntry{
			raw:     cloneRaw(raw),
			expires: c.clock.Now().Add(c.ttl),
		}
		c.mu.Unlock()
	}
	return raw, nil
}

// Len returns the number of cached pages, including expired ones not yet
// swept.
func (c *Cached) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Close stops the eviction goroutine. It is safe to call more than once.
func (c *Cached) Close() {
	c.once.Do(func() {
		close(c.done)
	})
	c.wg.Wait()
}

func cloneRaw(raw roster.Raw) roster.Raw {
	return roster.Raw{
		Players: slices.Clone(raw.Players),
		Staff:   slices.Clone(raw.Staff),
	}
}
