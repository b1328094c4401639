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

// Package check runs a full roster photo check: it lists the photo files,
// loads the roster, matches the two and assembles a report.
package check

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rostercheck/rostercheck/pkg/config"
	"github.com/rostercheck/rostercheck/pkg/filenames"
	"github.com/rostercheck/rostercheck/pkg/listing"
	"github.com/rostercheck/rostercheck/pkg/matcher"
	"github.com/rostercheck/rostercheck/pkg/report"
	"github.com/rostercheck/rostercheck/pkg/roster"
	"github.com/rostercheck/rostercheck/pkg/scraper"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNoSchoolPrefix = errors.New("school prefix is required")
	ErrNoRosterSource = errors.New("a roster url, roster file or inline roster is required")
	ErrNoLister       = errors.New("no photo source given")
)

// Request describes one check. Exactly one roster source is used, in the
// order Roster, RosterFile, RosterURL.
type Request struct {
	Lister listing.Lister
	Roster *roster.Raw
	// DetectFlippedOrder overrides the config setting when set.
	DetectFlippedOrder *bool
	SchoolPrefix       string
	RosterURL          string
	RosterFile         string
}

func (r Request) rosterSource() string {
	switch {
	case r.Roster != nil:
		return "inline"
	case r.RosterFile != "":
		return r.RosterFile
	default:
		return r.RosterURL
	}
}

// Validate checks that the request names a prefix, a photo source and a
// roster source.
func (r Request) Validate() error {
	if strings.TrimSpace(r.SchoolPrefix) == "" {
		return ErrNoSchoolPrefix
	}
	if r.Lister == nil {
		return ErrNoLister
	}
	if r.Roster == nil && r.RosterFile == "" && strings.TrimSpace(r.RosterURL) == "" {
		return ErrNoRosterSource
	}
	return nil
}

// Checker holds what every check shares.
type Checker struct {
	Scraper scraper.Scraper
	Fs      afero.Fs
	Config  *config.Instance
	Clock   clockwork.Clock
}

// New returns a Checker reading roster files from the OS filesystem.
func New(cfg *config.Instance, s scraper.Scraper) *Checker {
	return &Checker{
		Scraper: s,
		Fs:      afero.NewOsFs(),
		Config:  cfg,
		Clock:   clockwork.NewRealClock(),
	}
}

// Run lists files and loads the roster concurrently, then matches them.
// Listing failures and unreadable roster files are returned as errors. A
// roster page that cannot be scraped is treated as an empty roster and
// noted in the report warnings.
func (c *Checker) Run(ctx context.Context, req Request) (*report.Report, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ext := filenames.DefaultExtension
	if c.Config != nil {
		ext = filenames.CleanExtension(c.Config.ImageExtension())
	}

	var (
		files      []string
		raw        roster.Raw
		rosterWarn string
	)
	g, groupCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		files, err = req.Lister.List(groupCtx)
		if err != nil {
			return fmt.Errorf("failed to list photos: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		raw, rosterWarn, err = c.loadRoster(groupCtx, req)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var warnings []string
	if rosterWarn != "" {
		warnings = append(warnings, rosterWarn)
	}

	candidates := filenames.NewParser(ext).Parse(files)
	switch {
	case len(candidates) == 0:
		warnings = append(warnings, fmt.Sprintf("No .%s files found.", ext))
	case !anyValid(candidates):
		warnings = append(warnings, fmt.Sprintf(
			"No filenames matched the expected pattern 'teamabbr_lastname_firstname.%s'. "+
				"Double-check the files in the folder.", ext))
	}

	idx := c.builder().Build(raw)
	if idx.IsEmpty() && rosterWarn == "" {
		warnings = append(warnings,
			"No names detected from the roster page. Try another URL or check the site structure.")
	}

	res := matcher.Match(candidates, idx, req.SchoolPrefix, c.matchOptions(ext, req.DetectFlippedOrder))

	rep := report.Assemble(res, report.Meta{
		GeneratedAt:  c.now(),
		SchoolPrefix: strings.ToLower(strings.TrimSpace(req.SchoolPrefix)),
		RosterSource: req.rosterSource(),
		Warnings:     warnings,
		Roster:       idx.Counts(),
	})

	log.Info().
		Str("id", rep.ID.String()).
		Int("files", rep.Summary.Files).
		Int("problems", rep.Summary.Problems).
		Int("missing", rep.Summary.Missing).
		Msg("check complete")

	return rep, nil
}

func (c *Checker) loadRoster(ctx context.Context, req Request) (roster.Raw, string, error) {
	switch {
	case req.Roster != nil:
		return *req.Roster, "", nil
	case req.RosterFile != "":
		fs := c.Fs
		if fs == nil {
			fs = afero.NewOsFs()
		}
		raw, err := roster.LoadFile(fs, req.RosterFile)
		if err != nil {
			return roster.Raw{}, "", err
		}
		return raw, "", nil
	}

	if c.Scraper == nil {
		return roster.Raw{}, "", errors.New("no roster scraper configured")
	}

	raw, err := c.Scraper.Scrape(ctx, strings.TrimSpace(req.RosterURL))
	if err != nil {
		if ctx.Err() != nil {
			return roster.Raw{}, "", ctx.Err()
		}
		log.Warn().Err(err).Str("url", req.RosterURL).Msg("roster scrape failed")
		return roster.Raw{}, fmt.Sprintf("Could not load the roster page: %v", err), nil
	}
	return raw, "", nil
}

func (c *Checker) builder() *roster.Builder {
	b := roster.NewBuilder()
	if c.Config == nil {
		return b
	}
	if phrases := c.Config.Denylist(); len(phrases) > 0 {
		b.Denylist = roster.NewDenylist(phrases...)
	}
	b.DefaultTitle = c.Config.DefaultStaffTitle()
	return b
}

func (c *Checker) matchOptions(ext string, flipped *bool) matcher.Options {
	opts := matcher.Options{Extension: ext}
	if flipped != nil {
		opts.DetectFlippedOrder = *flipped
	}
	if c.Config == nil {
		return opts
	}
	if flipped == nil {
		opts.DetectFlippedOrder = c.Config.DetectFlippedOrder()
	}
	if names := c.Config.MatchPrecedence(); len(names) > 0 {
		rules, err := matcher.ParseRules(names)
		if err != nil {
			log.Warn().Err(err).Msg("invalid match precedence in config, using default")
		} else {
			opts.Precedence = rules
		}
	}
	return opts
}

func (c *Checker) now() time.Time {
	if c.Clock == nil {
		return time.Now()
	}
	return c.Clock.Now()
}

func anyValid(candidates []filenames.Candidate) bool {
	for _, cand := range candidates {
		if cand.Valid {
			return true
		}
	}
	return false
}
