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
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const driveHost = "https://drive.google.com"

var (
	ErrNoFolderID = errors.New("could not recognize a Google Drive folder ID from the URL")

	folderPathPattern = regexp.MustCompile(`/folders/([a-zA-Z0-9_-]+)`)
)

// Fetcher retrieves page bodies. *httpclient.Client satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Drive lists files in a public ("anyone with the link") Google Drive
// folder by scraping its HTML views, without the Drive API.
type Drive struct {
	Client    Fetcher
	FolderURL string
	Extension string
}

// FolderID extracts the folder id from URLs like
//
//	https://drive.google.com/drive/folders/<id>?usp=sharing
//	https://drive.google.com/drive/u/0/folders/<id>
//	https://drive.google.com/open?id=<id>
func FolderID(folderURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(folderURL))
	if err != nil {
		return "", ErrNoFolderID
	}
	if m := folderPathPattern.FindStringSubmatch(u.Path); m != nil {
		return m[1], nil
	}
	if id := u.Query().Get("id"); id != "" {
		return id, nil
	}
	return "", ErrNoFolderID
}

// pageURLs returns the views to try, most reliable first.
func pageURLs(id string) []string {
	escaped := url.QueryEscape(id)
	return []string{
		driveHost + "/embeddedfolderview?id=" + escaped + "#list",
		driveHost + "/embeddedfolderview?id=" + escaped + "#grid",
		driveHost + "/drive/folders/" + escaped,
		driveHost + "/drive/u/0/folders/" + escaped,
	}
}

// List returns the filenames from the first view that shows any. An empty
// result with no error means every view loaded but none listed files,
// usually because the folder is not shared publicly.
func (d *Drive) List(ctx context.Context) ([]string, error) {
	id, err := FolderID(d.FolderURL)
	if err != nil {
		return nil, err
	}

	var errs []error
	loaded := false
	for _, page := range pageURLs(id) {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		body, err := d.Client.Fetch(ctx, page)
		if err != nil {
			log.Debug().Err(err).Str("url", page).Msg("drive view failed")
			errs = append(errs, err)
			continue
		}
		loaded = true

		files := filenamesFromHTML(bytes.NewReader(body), d.Extension)
		if len(files) > 0 {
			log.Debug().
				Str("folder", id).
				Str("url", page).
				Int("files", len(files)).
				Msg("listed drive folder")
			return files, nil
		}
	}

	if !loaded {
		return nil, fmt.Errorf("failed to load drive folder %s: %w", id, errors.Join(errs...))
	}
	log.Info().Str("folder", id).Msg(
		"no files found in drive folder, check it is shared with anyone with the link",
	)
	return nil, nil
}

// filenamesFromHTML collects visible text runs ending in ext, once each in
// document order.
func filenamesFromHTML(r io.Reader, ext string) []string {
	z := html.NewTokenizer(r)
	seen := make(map[string]struct{})
	var files []string
	skip := 0

	for {
		switch z.Next() {
		case html.ErrorToken:
			return files
		case html.StartTagToken:
			name, _ := z.TagName()
			if a := atom.Lookup(name); a == atom.Script || a == atom.Style {
				skip++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if a := atom.Lookup(name); (a == atom.Script || a == atom.Style) && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip > 0 {
				continue
			}
			t := strings.TrimSpace(string(z.Text()))
			if t == "" || !hasExtension(t, ext) {
				continue
			}
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			files = append(files, t)
		}
	}
}
