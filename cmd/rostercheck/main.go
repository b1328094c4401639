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

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rostercheck/rostercheck/pkg/cli"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env if present, e.g. ROSTERCHECK_CFG
	_ = godotenv.Load(".env")

	defer func() {
		if err := recover(); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Panic: %s\n", err)
			log.Fatal().Msgf("panic: %v", err)
		}
	}()

	if err := cli.Execute(context.Background(), cli.DefaultOptions(), os.Args[1:]); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
