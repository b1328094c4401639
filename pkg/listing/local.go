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
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Local lists image files in a directory. Names are relative to Dir and
// use forward slashes when Recursive is set.
type Local struct {
	Fs        afero.Fs
	Dir       string
	Extension string
	Recursive bool
}

// NewLocal lists dir on the OS filesystem.
func NewLocal(dir, ext string, recursive bool) *Local {
	return &Local{
		Fs:        afero.NewOsFs(),
		Dir:       dir,
		Extension: ext,
		Recursive: recursive,
	}
}

func (l *Local) fs() afero.Fs {
	if l.Fs == nil {
		return afero.NewOsFs()
	}
	return l.Fs
}

func (l *Local) List(ctx context.Context) ([]string, error) {
	afs := l.fs()

	info, err := afs.Stat(l.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read image folder: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("image folder is not a directory: %s", l.Dir)
	}

	var files []string
	switch {
	case !l.Recursive:
		files, err = l.listFlat(afs)
	case isOsFs(afs):
		files, err = l.walkFast(ctx)
	default:
		files, err = l.walkAfero(ctx, afs)
	}
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	log.Debug().
		Str("dir", l.Dir).
		Bool("recursive", l.Recursive).
		Int("files", len(files)).
		Msg("listed local image files")
	return files, nil
}

func (l *Local) listFlat(afs afero.Fs) ([]string, error) {
	entries, err := afero.ReadDir(afs, l.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read image folder: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !hasExtension(e.Name(), l.Extension) {
			continue
		}
		files = append(files, e.Name())
	}
	return files, nil
}

func (l *Local) walkAfero(ctx context.Context, afs afero.Fs) ([]string, error) {
	var files []string
	err := afero.Walk(afs, l.Dir, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if info.IsDir() || !hasExtension(info.Name(), l.Extension) {
			return nil
		}
		rel, err := filepath.Rel(l.Dir, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk image folder: %w", err)
	}
	return files, nil
}

// walkFast uses fastwalk, whose callback runs on several goroutines.
func (l *Local) walkFast(ctx context.Context) ([]string, error) {
	var (
		mu    sync.Mutex
		files []string
	)
	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, l.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("skipping unreadable path")
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || !hasExtension(d.Name(), l.Extension) {
			return nil
		}
		rel, err := filepath.Rel(l.Dir, path)
		if err != nil {
			return err
		}
		mu.Lock()
		files = append(files, filepath.ToSlash(rel))
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk image folder: %w", err)
	}
	return files, nil
}

func isOsFs(afs afero.Fs) bool {
	_, ok := afs.(*afero.OsFs)
	return ok
}
