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
	"os"
	"os/signal"
	"syscall"

	"github.com/rostercheck/rostercheck/pkg/api"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newServeCommand(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.setup(true)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.SetAPIPort(port)
			}

			svc, err := newServices(cfg, true)
			if err != nil {
				return err
			}
			defer svc.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Info().Str("listen", cfg.APIListen()).Msg("starting api server")
			return api.NewServer(cfg, svc.checker, svc.client).ListenAndServe(ctx) //nolint:wrapcheck // already wrapped
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "port to listen on, overrides the config")
	return cmd
}
