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

// Package listing produces the filenames a check runs against, from a local
// folder, a public Google Drive folder or an in-memory list.
package listing

import (
	"context"
	"slices"
	"strings"
)

// Lister returns filenames in a stable order.
type Lister interface {
	List(ctx context.Context) ([]string, error)
}

// Static is a fixed list of filenames.
type Static []string

func (s Static) List(context.Context) ([]string, error) {
	return slices.Clone([]string(s)), nil
}

// hasExtension reports whether name ends in "."+ext, ignoring case. An
// empty ext matches everything.
func hasExtension(name, ext string) bool {
	if ext == "" {
		return true
	}
	suffix := "." + strings.ToLower(ext)
	return len(name) > len(suffix) && strings.HasSuffix(strings.ToLower(name), suffix)
}
