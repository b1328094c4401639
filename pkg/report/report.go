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

// Package report flattens match results into rows for presentation.
package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/rostercheck/rostercheck/pkg/matcher"
	"github.com/rostercheck/rostercheck/pkg/roster"
)

// Row is one line of the report. Missing-photo rows have no Filename.
type Row struct {
	Filename          string         `csv:"filename" json:"filename,omitempty"`
	FirstName         string         `csv:"first_name" json:"firstName,omitempty"`
	LastName          string         `csv:"last_name" json:"lastName,omitempty"`
	Status            string         `csv:"status" json:"status"`
	Code              matcher.Status `csv:"-" json:"code"`
	Reason            string         `csv:"reason" json:"reason,omitempty"`
	SuggestedFilename string         `csv:"suggested_filename" json:"suggestedFilename,omitempty"`
	MatchedName       string         `csv:"roster_name" json:"rosterName,omitempty"`
}

// Summary counts rows by status.
type Summary struct {
	ByStatus map[string]int `json:"byStatus"`
	Files    int            `json:"files"`
	Problems int            `json:"problems"`
	Missing  int            `json:"missing"`
}

// Report is the full output of one check.
type Report struct {
	GeneratedAt  time.Time     `json:"generatedAt"`
	SchoolPrefix string        `json:"schoolPrefix"`
	RosterSource string        `json:"rosterSource,omitempty"`
	Rows         []Row         `json:"rows"`
	Warnings     []string      `json:"warnings,omitempty"`
	Summary      Summary       `json:"summary"`
	Roster       roster.Counts `json:"roster"`
	ID           uuid.UUID     `json:"id"`
}

// Meta describes the check a result came from.
type Meta struct {
	GeneratedAt  time.Time
	SchoolPrefix string
	RosterSource string
	Warnings     []string
	Roster       roster.Counts
}

// Assemble builds a report with one row per verdict, in order, followed by
// one row per missing player.
func Assemble(res matcher.Result, meta Meta) *Report {
	generated := meta.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}

	r := &Report{
		ID:           uuid.New(),
		GeneratedAt:  generated.UTC(),
		SchoolPrefix: meta.SchoolPrefix,
		RosterSource: meta.RosterSource,
		Roster:       meta.Roster,
		Warnings:     append([]string(nil), meta.Warnings...),
		Rows:         make([]Row, 0, len(res.Verdicts)+len(res.Missing)),
		Summary:      Summary{ByStatus: make(map[string]int)},
	}

	for _, v := range res.Verdicts {
		r.Rows = append(r.Rows, verdictRow(v))
		r.Summary.Files++
		r.Summary.ByStatus[v.Status.String()]++
		if v.Status.IsProblem() {
			r.Summary.Problems++
		}
	}

	for _, m := range res.Missing {
		r.Rows = append(r.Rows, missingRow(m))
		r.Summary.Missing++
		r.Summary.ByStatus[matcher.Missing.String()]++
	}

	return r
}

func verdictRow(v matcher.Verdict) Row {
	return Row{
		Filename:          v.Candidate.Filename,
		FirstName:         v.Candidate.FirstName,
		LastName:          v.Candidate.LastName,
		Status:            v.Status.Label(),
		Code:              v.Status,
		Reason:            v.Reason,
		SuggestedFilename: v.SuggestedFilename,
		MatchedName:       v.MatchedName,
	}
}

func missingRow(m matcher.MissingEntry) Row {
	row := Row{
		Status:            matcher.Missing.Label(),
		Code:              matcher.Missing,
		SuggestedFilename: m.SuggestedFilename,
	}
	if m.Entry != nil {
		row.FirstName = m.Entry.FirstName
		row.LastName = m.Entry.LastName
		row.MatchedName = m.Entry.DisplayName
	}
	return row
}

// HasProblems reports whether any file or roster player needs attention.
func (r *Report) HasProblems() bool {
	return r.Summary.Problems > 0 || r.Summary.Missing > 0
}
