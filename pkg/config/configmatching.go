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

import "slices"

const (
	DefaultImageExtension = "png"
	DefaultStaffTitle     = "Staff"
)

type Matching struct {
	DetectFlippedOrder *bool    `toml:"detect_flipped_order,omitempty"`
	ImageExtension     string   `toml:"image_extension"`
	DefaultStaffTitle  string   `toml:"default_staff_title,omitempty"`
	Precedence         []string `toml:"precedence,omitempty"`
	Denylist           []string `toml:"denylist,omitempty,multiline"`
}

func (c *Instance) ImageExtension() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Matching.ImageExtension == "" {
		return DefaultImageExtension
	}
	return c.vals.Matching.ImageExtension
}

func (c *Instance) SetImageExtension(ext string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Matching.ImageExtension = ext
}

// MatchPrecedence returns the configured rule names, nil for the default order.
func (c *Instance) MatchPrecedence() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.vals.Matching.Precedence)
}

func (c *Instance) DetectFlippedOrder() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Matching.DetectFlippedOrder == nil {
		return false
	}
	return *c.vals.Matching.DetectFlippedOrder
}

func (c *Instance) SetDetectFlippedOrder(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Matching.DetectFlippedOrder = &enabled
}

// Denylist returns the configured deny phrases, nil for the built-in list.
func (c *Instance) Denylist() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.vals.Matching.Denylist)
}

func (c *Instance) DefaultStaffTitle() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Matching.DefaultStaffTitle == "" {
		return DefaultStaffTitle
	}
	return c.vals.Matching.DefaultStaffTitle
}
