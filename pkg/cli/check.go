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

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rostercheck/rostercheck/pkg/check"
	"github.com/rostercheck/rostercheck/pkg/listing"
	"github.com/rostercheck/rostercheck/pkg/report"
	"github.com/spf13/cobra"
)

// ErrProblemsFound is returned by check --fail-on-problems when any file or
// roster player needs attention.
var ErrProblemsFound = errors.New("problems found")

type checkFlags struct {
	dir            string
	drive          string
	prefix         string
	rosterURL      string
	rosterFile     string
	format         string
	output         string
	ext            string
	recursive      bool
	flipped        bool
	failOnProblems bool
}

func newCheckCommand(a *app) *cobra.Command {
	var f checkFlags

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check a folder of photos against a roster",
		Example: "  rostercheck check --dir ./photos --prefix cal --roster-url https://example.edu/roster\n" +
			"  rostercheck check --drive https://drive.google.com/drive/folders/ID --prefix cal --roster-file roster.yaml",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var flipped *bool
			if cmd.Flags().Changed("flipped") {
				flipped = &f.flipped
			}
			return a.runCheck(cmd.Context(), &f, flipped)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.dir, "dir", "", "local folder of photos")
	flags.BoolVar(&f.recursive, "recursive", false, "include photos in subfolders of --dir")
	flags.StringVar(&f.drive, "drive", "", "public Google Drive folder URL")
	flags.StringVar(&f.prefix, "prefix", "", "expected school prefix, e.g. cal")
	flags.StringVar(&f.rosterURL, "roster-url", "", "roster page to scrape")
	flags.StringVar(&f.rosterFile, "roster-file", "", "roster file (.yaml, .yml or .csv)")
	flags.StringVar(&f.format, "format", string(report.FormatTable), "output format: table, csv or json")
	flags.StringVarP(&f.output, "output", "o", "", "write the report to a file instead of stdout")
	flags.StringVar(&f.ext, "ext", "", "photo extension, overrides the config")
	flags.BoolVar(&f.flipped, "flipped", false, "detect first and last name written in swapped order")
	flags.BoolVar(&f.failOnProblems, "fail-on-problems", false, "exit with an error when problems are found")

	_ = cmd.MarkFlagRequired("prefix")
	cmd.MarkFlagsMutuallyExclusive("dir", "drive")
	cmd.MarkFlagsOneRequired("dir", "drive")
	cmd.MarkFlagsMutuallyExclusive("roster-url", "roster-file")
	cmd.MarkFlagsOneRequired("roster-url", "roster-file")

	return cmd
}

func (a *app) runCheck(ctx context.Context, f *checkFlags, flipped *bool) error {
	format, err := report.ParseFormat(f.format)
	if err != nil {
		return err
	}

	cfg, err := a.setup(false)
	if err != nil {
		return err
	}
	if f.ext != "" {
		cfg.SetImageExtension(f.ext)
	}

	svc, err := newServices(cfg, false)
	if err != nil {
		return err
	}
	defer svc.Close()
	svc.checker.Fs = a.opts.Fs

	var lister listing.Lister
	if f.drive != "" {
		lister = &listing.Drive{
			Client:    svc.client,
			FolderURL: f.drive,
			Extension: cfg.ImageExtension(),
		}
	} else {
		lister = &listing.Local{
			Fs:        a.opts.Fs,
			Dir:       f.dir,
			Extension: cfg.ImageExtension(),
			Recursive: f.recursive,
		}
	}

	rep, err := svc.checker.Run(ctx, check.Request{
		Lister:             lister,
		SchoolPrefix:       f.prefix,
		RosterURL:          f.rosterURL,
		RosterFile:         f.rosterFile,
		DetectFlippedOrder: flipped,
	})
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if err := a.writeReport(rep, format, f.output); err != nil {
		return err
	}

	// table output already ends with the warnings
	if format != report.FormatTable || f.output != "" {
		for _, w := range rep.Warnings {
			_, _ = fmt.Fprintf(a.opts.Err, "warning: %s\n", w)
		}
	}

	if f.failOnProblems && rep.HasProblems() {
		return fmt.Errorf("%w: %d files, %d missing photos",
			ErrProblemsFound, rep.Summary.Problems, rep.Summary.Missing)
	}
	return nil
}

func (a *app) writeReport(rep *report.Report, format report.Format, path string) (err error) {
	var out io.Writer = a.opts.Out
	if path != "" {
		file, createErr := a.opts.Fs.Create(path)
		if createErr != nil {
			return fmt.Errorf("failed to create report file: %w", createErr)
		}
		defer func() {
			if closeErr := file.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("failed to close report file: %w", closeErr)
			}
		}()
		out = file
	}
	return rep.Write(out, format) //nolint:wrapcheck // writers wrap their own errors
}
