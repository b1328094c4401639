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

package matcher

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/rostercheck/rostercheck/pkg/filenames"
)

// ErrUnknownRule is returned when a precedence names a rule that does not exist.
var ErrUnknownRule = errors.New("unknown match rule")

// ErrDuplicateRule is returned when a precedence lists a rule twice.
var ErrDuplicateRule = errors.New("duplicate match rule")

// Rule is one check in the precedence list. The first rule that applies to a
// candidate decides its verdict.
type Rule string

const (
	// RuleStaff yields StaffMisfiled when the key is a staff key.
	RuleStaff Rule = "staff"
	// RuleSchool yields SchoolMismatch when the prefix differs.
	RuleSchool Rule = "school"
	// RulePrimary yields Matched when the key is a primary player key.
	RulePrimary Rule = "primary"
	// RuleNickname yields NicknameMismatch when the key is a nickname key.
	RuleNickname Rule = "nickname"
	// RuleFlipped yields FlippedOrder when last-then-first is a primary key.
	RuleFlipped Rule = "flipped"
)

var knownRules = []Rule{RuleStaff, RuleSchool, RulePrimary, RuleNickname, RuleFlipped}

// DefaultPrecedence is the order structural errors are reported before name
// lookups: staff, school, primary, nickname.
var DefaultPrecedence = []Rule{RuleStaff, RuleSchool, RulePrimary, RuleNickname}

// ParseRule looks up a rule by name, case-insensitively.
func ParseRule(name string) (Rule, error) {
	r := Rule(strings.ToLower(strings.TrimSpace(name)))
	if !slices.Contains(knownRules, r) {
		return "", fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	return r, nil
}

// ParseRules parses a precedence list from rule names.
func ParseRules(names []string) ([]Rule, error) {
	rules := make([]Rule, 0, len(names))
	for _, n := range names {
		r, err := ParseRule(n)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// Options tune a Match call. The zero value uses DefaultPrecedence, the
// default image extension and no flipped order detection.
type Options struct {
	// Extension used when building suggested filenames.
	Extension string
	// Precedence overrides DefaultPrecedence when non-empty.
	Precedence []Rule
	// DetectFlippedOrder appends RuleFlipped to the precedence if absent.
	DetectFlippedOrder bool
}

// Validate checks the precedence for unknown or repeated rules.
func (o Options) Validate() error {
	seen := make(map[Rule]struct{}, len(o.Precedence))
	for _, r := range o.Precedence {
		if !slices.Contains(knownRules, r) {
			return fmt.Errorf("%w: %q", ErrUnknownRule, string(r))
		}
		if _, dup := seen[r]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateRule, string(r))
		}
		seen[r] = struct{}{}
	}
	return nil
}

func (o Options) rules() []Rule {
	rules := DefaultPrecedence
	if len(o.Precedence) > 0 && o.Validate() == nil {
		rules = o.Precedence
	}
	if o.DetectFlippedOrder && !slices.Contains(rules, RuleFlipped) {
		rules = append(slices.Clone(rules), RuleFlipped)
	}
	return rules
}

func (o Options) extension() string {
	return filenames.CleanExtension(o.Extension)
}
