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

// Package cli implements the rostercheck command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/rostercheck/rostercheck/internal/telemetry"
	"github.com/rostercheck/rostercheck/pkg/config"
	"github.com/rostercheck/rostercheck/pkg/helpers"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// Options control where the CLI reads config and writes output and logs.
type Options struct {
	Out       io.Writer
	Err       io.Writer
	Fs        afero.Fs
	ConfigDir string
	// LogDir holds the rotating log file. Empty disables file logging.
	LogDir string
}

// DefaultOptions uses stdio and the per-user xdg directories.
func DefaultOptions() Options {
	return Options{
		Out:       os.Stdout,
		Err:       os.Stderr,
		Fs:        afero.NewOsFs(),
		ConfigDir: config.ConfigDir(),
		LogDir:    config.StateDir(),
	}
}

type app struct {
	cfg   *config.Instance
	opts  Options
	debug bool
}

// NewRootCommand builds the command tree.
func NewRootCommand(opts Options) *cobra.Command {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	a := &app{opts: opts}

	root := &cobra.Command{
		Use:           config.AppName,
		Short:         "Check team photo filenames against a published roster",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(opts.Out)
	root.SetErr(opts.Err)
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "write debug logs to stderr")

	root.AddCommand(
		newCheckCommand(a),
		newServeCommand(a),
		newNormalizeCommand(),
		newConfigCommand(a),
		newVersionCommand(),
	)
	return root
}

// Execute runs the command line in args and flushes error reporting before
// returning.
func Execute(ctx context.Context, opts Options, args []string) error {
	root := NewRootCommand(opts)
	root.SetArgs(args)
	defer telemetry.Close()
	return root.ExecuteContext(ctx) //nolint:wrapcheck // cobra errors are already user facing
}

// setup initializes logging, loads the user config and starts opt-in error
// reporting. It runs once per process.
func (a *app) setup(console bool) (*config.Instance, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}

	var writers []io.Writer
	if console || a.debug {
		writers = append(writers, helpers.ConsoleWriter(a.opts.Err))
	}
	if err := helpers.InitLogging(a.opts.LogDir, a.debug, writers...); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	cfg, err := config.NewConfig(a.opts.ConfigDir, config.BaseDefaults)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if a.debug || cfg.DebugLogging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if err := telemetry.Init(telemetry.Options{
		Enabled:    cfg.ErrorReporting(),
		DSN:        cfg.SentryDSN(),
		AppVersion: config.AppVersion,
	}); err != nil {
		log.Warn().Err(err).Msg("failed to initialize error reporting")
	}

	log.Debug().Str("config", cfg.Path()).Str("version", config.AppVersion).Msg("config loaded")
	a.cfg = cfg
	return cfg, nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and exit",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Rostercheck v%s (%s/%s)\n",
				config.AppVersion, runtime.GOOS, runtime.GOARCH)
		},
	}
}

func newConfigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the config file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path, creating it with defaults if missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.setup(false)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cfg.Path())
			return nil
		},
	})
	return cmd
}
