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
	"encoding/json"
	"fmt"

	"github.com/rostercheck/rostercheck/pkg/names"
	"github.com/spf13/cobra"
)

type normalizedName struct {
	Input string `json:"input"`
	Key   string `json:"key"`
}

func newNormalizeCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "normalize <name>...",
		Short: "Print the matching key for each name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if asJSON {
				rows := make([]normalizedName, 0, len(args))
				for _, arg := range args {
					rows = append(rows, normalizedName{Input: arg, Key: names.Normalize(arg).String()})
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(rows); err != nil {
					return fmt.Errorf("failed to encode names: %w", err)
				}
				return nil
			}
			for _, arg := range args {
				_, _ = fmt.Fprintf(out, "%s\t%s\n", arg, names.Normalize(arg))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of tab separated lines")
	return cmd
}
