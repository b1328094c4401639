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

// Package models holds the JSON request and response bodies of the HTTP API.
package models

import (
	"github.com/rostercheck/rostercheck/pkg/names"
	"github.com/rostercheck/rostercheck/pkg/roster"
)

const (
	PathHealth    = "/health"
	PathCheck     = "/api/v1/check"
	PathNormalize = "/api/v1/normalize"
	PathStatuses  = "/api/v1/statuses"
)

// CheckRequest asks for one check. Photos come from either Filenames or
// DriveFolderURL, and the roster from either RosterURL or Roster.
type CheckRequest struct {
	Roster             *roster.Raw `json:"roster,omitempty" validate:"omitempty"`
	DetectFlippedOrder *bool       `json:"detectFlippedOrder,omitempty"`
	SchoolPrefix       string      `json:"schoolPrefix" validate:"required,prefix"`
	RosterURL          string      `json:"rosterUrl,omitempty" validate:"omitempty,http_url"`
	DriveFolderURL     string      `json:"driveFolderUrl,omitempty" validate:"omitempty,drivefolder"`
	Filenames          []string    `json:"filenames,omitempty" validate:"omitempty,max=5000,dive,required,max=255"`
}

// NormalizeRequest asks for the comparison keys of raw names.
type NormalizeRequest struct {
	Names []string `json:"names" validate:"required,min=1,max=1000,dive,max=500"`
}

type NormalizedName struct {
	Input string    `json:"input"`
	Key   names.Key `json:"key"`
}

type NormalizeResponse struct {
	Results []NormalizedName `json:"results"`
}

type StatusInfo struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Problem bool   `json:"problem"`
}

type StatusesResponse struct {
	Statuses []StatusInfo `json:"statuses"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}
