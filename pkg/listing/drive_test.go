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

package listing

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fetchFunc func(ctx context.Context, url string) ([]byte, error)

func (f fetchFunc) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f(ctx, url)
}

const embeddedView = `<html><head>
<script>var files = ["hidden_file_name.png"];</script>
<style>.x{content:"style.png"}</style>
</head><body>
<div class="flip-entries">
  <div class="flip-entry"><div class="flip-entry-title">cal_smith_john.png</div></div>
  <div class="flip-entry"><div class="flip-entry-title">cal_doe_jane.PNG</div></div>
  <div class="flip-entry"><div class="flip-entry-title">notes.txt</div></div>
  <div class="flip-entry"><div class="flip-entry-title">cal_smith_john.png</div></div>
  <div class="flip-entry"><div class="flip-entry-title">cal_o&#39;brien_mary.png</div></div>
</div>
</body></html>`

func TestFolderID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want string
	}{
		{url: "https://drive.google.com/drive/folders/1AbC_d-E?usp=sharing", want: "1AbC_d-E"},
		{url: "https://drive.google.com/drive/u/0/folders/XYZ123", want: "XYZ123"},
		{url: "https://drive.google.com/open?id=QQQ", want: "QQQ"},
		{url: "  https://drive.google.com/drive/folders/abc  ", want: "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()
			got, err := FolderID(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "https://example.com/photos", "::::"} {
		_, err := FolderID(bad)
		require.ErrorIs(t, err, ErrNoFolderID, bad)
	}
}

func TestDriveListFirstView(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var urls []string
	d := &Drive{
		Client: fetchFunc(func(_ context.Context, url string) ([]byte, error) {
			mu.Lock()
			urls = append(urls, url)
			mu.Unlock()
			return []byte(embeddedView), nil
		}),
		FolderURL: "https://drive.google.com/drive/folders/abc?usp=sharing",
		Extension: "png",
	}

	files, err := d.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"cal_smith_john.png", "cal_doe_jane.PNG", "cal_o'brien_mary.png"}, files)
	assert.Equal(t, []string{"https://drive.google.com/embeddedfolderview?id=abc#list"}, urls)
}

func TestDriveListFallsBack(t *testing.T) {
	t.Parallel()

	d := &Drive{
		Client: fetchFunc(func(_ context.Context, url string) ([]byte, error) {
			switch {
			case strings.Contains(url, "embeddedfolderview"):
				return nil, errors.New("status 404")
			case strings.Contains(url, "/drive/folders/"):
				return []byte("<html><body>Sign in</body></html>"), nil
			default:
				return []byte(embeddedView), nil
			}
		}),
		FolderURL: "https://drive.google.com/open?id=abc",
		Extension: "png",
	}

	files, err := d.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, files, 3)
}

func TestDriveListNothingShared(t *testing.T) {
	t.Parallel()

	d := &Drive{
		Client: fetchFunc(func(context.Context, string) ([]byte, error) {
			return []byte("<html><body>Request access</body></html>"), nil
		}),
		FolderURL: "https://drive.google.com/drive/folders/abc",
		Extension: "png",
	}

	files, err := d.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDriveListErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("network down")
	d := &Drive{
		Client: fetchFunc(func(context.Context, string) ([]byte, error) {
			return nil, boom
		}),
		FolderURL: "https://drive.google.com/drive/folders/abc",
		Extension: "png",
	}
	_, err := d.List(context.Background())
	require.ErrorIs(t, err, boom)

	d.FolderURL = "https://example.com/nope"
	_, err = d.List(context.Background())
	require.ErrorIs(t, err, ErrNoFolderID)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.FolderURL = "https://drive.google.com/drive/folders/abc"
	_, err = d.List(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
