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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusStrings(t *testing.T) {
	t.Parallel()

	for _, s := range AllStatuses() {
		assert.NotEmpty(t, s.Label(), s.String())
		parsed, err := ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	assert.Equal(t, "status(99)", Status(99).String())
	assert.Equal(t, "Name not in roster", NotInRoster.Label())
	assert.False(t, Matched.IsProblem())
	assert.True(t, StaffMisfiled.IsProblem())

	_, err := ParseStatus("nope")
	require.Error(t, err)
}

func TestStatusJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(map[string]Status{"status": NicknameMismatch})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"nickname_mismatch"}`, string(data))

	var decoded map[string]Status
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, NicknameMismatch, decoded["status"])
}
