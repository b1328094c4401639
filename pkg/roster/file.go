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

package roster

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedRosterFile is returned for roster files that are neither
// YAML nor CSV.
var ErrUnsupportedRosterFile = errors.New("unsupported roster file type")

// FileRow is one line of a CSV roster file.
type FileRow struct {
	Name  string `csv:"name"`
	Role  string `csv:"role"`
	Title string `csv:"title"`
}

// LoadFile reads a roster saved to disk instead of scraped. YAML files hold
// a Raw document:
//
//	players:
//	  - John Smith
//	  - John "Jonathan" Smith
//	staff:
//	  - name: Pat Riley
//	    title: Head Coach
//
// CSV files have a name,role,title header where role is player or staff
// (empty means player).
func LoadFile(fs afero.Fs, path string) (Raw, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Raw{}, fmt.Errorf("failed to read roster file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var raw Raw
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Raw{}, fmt.Errorf("failed to parse roster yaml %s: %w", path, err)
		}
		return raw, nil
	case ".csv":
		var rows []FileRow
		if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
			return Raw{}, fmt.Errorf("failed to parse roster csv %s: %w", path, err)
		}
		return rawFromRows(rows)
	default:
		return Raw{}, fmt.Errorf("%w: %s", ErrUnsupportedRosterFile, path)
	}
}

func rawFromRows(rows []FileRow) (Raw, error) {
	var raw Raw
	for i, row := range rows {
		switch Role(strings.ToLower(strings.TrimSpace(row.Role))) {
		case "", RolePlayer:
			raw.Players = append(raw.Players, row.Name)
		case RoleStaff:
			raw.Staff = append(raw.Staff, StaffMember{Name: row.Name, Title: row.Title})
		default:
			return Raw{}, fmt.Errorf("roster csv row %d: unknown role %q", i+2, row.Role)
		}
	}
	return raw, nil
}
