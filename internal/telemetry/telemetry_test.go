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

package telemetry

import (
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty string", input: "", expected: ""},
		{name: "no username in path", input: "/usr/local/bin/rostercheck", expected: "/usr/local/bin/rostercheck"},
		{
			name:     "linux home path",
			input:    "/home/sam/.config/rostercheck/config.toml",
			expected: "/home/<user>/.config/rostercheck/config.toml",
		},
		{
			name:     "macos users path lowercase",
			input:    "/users/sam/Documents/photos",
			expected: "/Users/<user>/Documents/photos",
		},
		{
			name:     "windows path different drive",
			input:    "D:\\Users\\admin\\rostercheck\\logs",
			expected: "C:\\Users\\<user>\\rostercheck\\logs",
		},
		{
			name:     "multiple paths in message",
			input:    "copying /home/alice/src to /home/bob/dst",
			expected: "copying /home/<user>/src to /home/<user>/dst",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizePath(tt.input))
		})
	}
}

func TestSanitizeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "photo filename",
			input:    "failed to read cal_smith_john.png",
			expected: "failed to read <photo>",
		},
		{
			name:     "photo in user folder",
			input:    "open /home/sam/photos/cal_doe_jane.PNG: permission denied",
			expected: "open /home/<user>/photos/<photo>: permission denied",
		},
		{
			name:     "url query",
			input:    "GET https://drive.google.com/embeddedfolderview?id=abc123#list failed: 404",
			expected: "GET https://drive.google.com/embeddedfolderview failed: 404",
		},
		{
			name:     "plain message",
			input:    "roster scrape failed",
			expected: "roster scrape failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizeText(tt.input))
		})
	}
}

func TestSanitizeEvent(t *testing.T) {
	t.Parallel()

	event := &sentry.Event{
		ServerName: "sams-laptop",
		Message:    "bad file /home/sam/cal_smith_john.png",
		Extra:      map[string]any{"path": "/Users/sam/x", "count": 3},
		Exception: []sentry.Exception{{
			Value: "open cal_doe_jane.png",
			Stacktrace: &sentry.Stacktrace{Frames: []sentry.Frame{{
				AbsPath:  "/home/sam/src/rostercheck/pkg/check/check.go",
				Filename: "pkg/check/check.go",
			}}},
		}},
	}

	got := sanitizeEvent(event)
	require.NotNil(t, got)
	assert.Empty(t, got.ServerName)
	assert.Equal(t, "bad file /home/<user>/<photo>", got.Message)
	assert.Equal(t, "/Users/<user>/x", got.Extra["path"])
	assert.Equal(t, 3, got.Extra["count"])
	assert.Equal(t, "open <photo>", got.Exception[0].Value)
	assert.Equal(t, "/home/<user>/src/rostercheck/pkg/check/check.go",
		got.Exception[0].Stacktrace.Frames[0].AbsPath)
}

func TestInitDisabled(t *testing.T) {
	t.Parallel()

	require.NoError(t, Init(Options{Enabled: false, DSN: "https://k@example.com/1"}))
	require.NoError(t, Init(Options{Enabled: true}))
	assert.False(t, Enabled(), "telemetry should stay disabled")
	Close()
	Flush()
}
