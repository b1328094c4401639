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

package check

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rostercheck/rostercheck/pkg/config"
	"github.com/rostercheck/rostercheck/pkg/listing"
	"github.com/rostercheck/rostercheck/pkg/matcher"
	"github.com/rostercheck/rostercheck/pkg/report"
	"github.com/rostercheck/rostercheck/pkg/roster"
	"github.com/rostercheck/rostercheck/pkg/testing/fixtures"
	"github.com/rostercheck/rostercheck/pkg/testing/helpers"
	"github.com/rostercheck/rostercheck/pkg/testing/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const rosterURL = "https://gobears.com/sports/roster"

func newChecker(t *testing.T, s *mocks.MockScraper) (*Checker, clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC))
	return &Checker{
		Scraper: s,
		Fs:      helpers.NewMemoryFS().Fs,
		Config:  config.NewDefaultConfig(config.BaseDefaults),
		Clock:   clock,
	}, clock
}

func statuses(rep *report.Report) map[string]matcher.Status {
	out := make(map[string]matcher.Status)
	for _, row := range rep.Rows {
		if row.Filename != "" {
			out[row.Filename] = row.Code
		}
	}
	return out
}

func missingNames(rep *report.Report) []string {
	var out []string
	for _, row := range rep.Rows {
		if row.Code == matcher.Missing {
			out = append(out, row.MatchedName)
		}
	}
	return out
}

func TestRunSampleRoster(t *testing.T) {
	t.Parallel()

	s := mocks.NewMockScraper(fixtures.SampleRoster())
	c, clock := newChecker(t, s)

	rep, err := c.Run(context.Background(), Request{
		SchoolPrefix: "CAL",
		RosterURL:    rosterURL,
		Lister:       mocks.NewMockLister(fixtures.SampleFilenames()...),
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]matcher.Status{
		"cal_smith_john.png":   matcher.Matched,
		"cal_jones_bobby.png":  matcher.NicknameMismatch,
		"cal_nunez_jose.PNG":   matcher.Matched,
		"stan_obrien_mary.png": matcher.SchoolMismatch,
		"cal_riley_pat.png":    matcher.StaffMisfiled,
		"cal_nobody_some.png":  matcher.NotInRoster,
		"cal-smith-john.png":   matcher.InvalidFormat,
		"cal__kim.png":         matcher.InvalidFormat,
	}, statuses(rep))
	assert.Equal(t, []string{`Robert "Bobby" Jones`, "Kim Lee"}, missingNames(rep))

	assert.Equal(t, "cal", rep.SchoolPrefix)
	assert.Equal(t, rosterURL, rep.RosterSource)
	assert.Equal(t, clock.Now(), rep.GeneratedAt)
	assert.Equal(t, roster.Counts{Players: 5, Nicknames: 1, Staff: 2}, rep.Roster)
	assert.Empty(t, rep.Warnings)
	assert.Equal(t, 8, rep.Summary.Files)
	assert.True(t, rep.HasProblems())

	s.AssertCalled(t, "Scrape", mock.Anything, rosterURL)
}

func TestRunScrapeFailureDegrades(t *testing.T) {
	t.Parallel()

	s := &mocks.MockScraper{}
	s.On("Scrape", mock.Anything, rosterURL).Return(roster.Raw{}, errors.New("status 503"))
	c, _ := newChecker(t, s)

	rep, err := c.Run(context.Background(), Request{
		SchoolPrefix: "cal",
		RosterURL:    rosterURL,
		Lister:       listing.Static{"cal_smith_john.png"},
	})
	require.NoError(t, err)
	require.Len(t, rep.Rows, 1)
	assert.Equal(t, matcher.NotInRoster, rep.Rows[0].Code)
	require.Len(t, rep.Warnings, 1)
	assert.Contains(t, rep.Warnings[0], "status 503")
}

func TestRunWarnings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		files []string
		raw   roster.Raw
		want  []string
	}{
		{
			name:  "no image files",
			files: []string{"notes.txt"},
			raw:   fixtures.SampleRoster(),
			want:  []string{"No .png files found."},
		},
		{
			name:  "nothing matches pattern",
			files: []string{"photo1.png", "team-smith-john.png"},
			raw:   fixtures.SampleRoster(),
			want: []string{"No filenames matched the expected pattern " +
				"'teamabbr_lastname_firstname.png'. Double-check the files in the folder."},
		},
		{
			name:  "empty roster",
			files: []string{"cal_smith_john.png"},
			raw:   roster.Raw{Players: []string{"View Full Bio"}},
			want: []string{
				"No names detected from the roster page. Try another URL or check the site structure.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, _ := newChecker(t, mocks.NewMockScraper(tt.raw))
			rep, err := c.Run(context.Background(), Request{
				SchoolPrefix: "cal",
				RosterURL:    rosterURL,
				Lister:       listing.Static(tt.files),
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, rep.Warnings)
		})
	}
}

func TestRunListingError(t *testing.T) {
	t.Parallel()

	boom := errors.New("permission denied")
	l := &mocks.MockLister{}
	l.On("List", mock.Anything).Return(nil, boom)

	c, _ := newChecker(t, mocks.NewMockScraper(fixtures.SampleRoster()))
	_, err := c.Run(context.Background(), Request{
		SchoolPrefix: "cal",
		RosterURL:    rosterURL,
		Lister:       l,
	})
	require.ErrorIs(t, err, boom)
}

func TestRunRosterFile(t *testing.T) {
	t.Parallel()

	fs := helpers.NewMemoryFS()
	require.NoError(t, fs.CreateRosterYAML("/rosters/cal.yaml", fixtures.SampleRoster()))

	s := &mocks.MockScraper{}
	c, _ := newChecker(t, s)
	c.Fs = fs.Fs

	rep, err := c.Run(context.Background(), Request{
		SchoolPrefix: "cal",
		RosterFile:   "/rosters/cal.yaml",
		Lister:       listing.Static{"cal_lee_kim.png"},
	})
	require.NoError(t, err)
	assert.Equal(t, matcher.Matched, rep.Rows[0].Code)
	assert.Equal(t, "/rosters/cal.yaml", rep.RosterSource)
	s.AssertNotCalled(t, "Scrape", mock.Anything, mock.Anything)

	_, err = c.Run(context.Background(), Request{
		SchoolPrefix: "cal",
		RosterFile:   "/rosters/missing.yaml",
		Lister:       listing.Static{"cal_lee_kim.png"},
	})
	require.Error(t, err)
}

func TestRunInlineRosterAndConfig(t *testing.T) {
	t.Parallel()

	c, _ := newChecker(t, nil)
	c.Scraper = nil
	c.Config.SetDetectFlippedOrder(true)
	c.Config.SetImageExtension("jpg")

	raw := roster.Raw{Players: []string{"John Smith"}}
	rep, err := c.Run(context.Background(), Request{
		SchoolPrefix: "cal",
		Roster:       &raw,
		Lister:       listing.Static{"cal_john_smith.jpg", "cal_smith_john.png"},
	})
	require.NoError(t, err)
	require.Len(t, rep.Rows, 2)
	assert.Equal(t, matcher.FlippedOrder, rep.Rows[0].Code)
	assert.Equal(t, "cal_smith_john.jpg", rep.Rows[0].SuggestedFilename)
	assert.Equal(t, matcher.Missing, rep.Rows[1].Code)
	assert.Equal(t, "inline", rep.RosterSource)
}

func TestRequestValidate(t *testing.T) {
	t.Parallel()

	l := listing.Static{}
	assert.ErrorIs(t, Request{Lister: l, RosterURL: rosterURL}.Validate(), ErrNoSchoolPrefix)
	assert.ErrorIs(t, Request{SchoolPrefix: "cal", RosterURL: rosterURL}.Validate(), ErrNoLister)
	assert.ErrorIs(t, Request{SchoolPrefix: "cal", Lister: l}.Validate(), ErrNoRosterSource)
	assert.NoError(t, Request{SchoolPrefix: "cal", Lister: l, RosterURL: rosterURL}.Validate())

	c, _ := newChecker(t, nil)
	_, err := c.Run(context.Background(), Request{})
	require.ErrorIs(t, err, ErrNoSchoolPrefix)
}

func TestRunFlippedOverride(t *testing.T) {
	t.Parallel()

	c, _ := newChecker(t, mocks.NewMockScraper(roster.Raw{Players: []string{"John Smith"}}))
	req := Request{
		SchoolPrefix: "cal",
		RosterURL:    rosterURL,
		Lister:       listing.Static{"cal_john_smith.png"},
	}

	rep, err := c.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, matcher.NotInRoster, rep.Rows[0].Code)

	enabled := true
	req.DetectFlippedOrder = &enabled
	rep, err = c.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, matcher.FlippedOrder, rep.Rows[0].Code)
}
