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

package config

import (
	"maps"
	"net/url"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
)

// CredentialEntry holds credentials for roster pages or folders behind a
// login.
type CredentialEntry struct {
	Username string `toml:"username"`
	Password string `toml:"password"`
	Bearer   string `toml:"bearer"`
}

// authRootFormat is the ["url"] at root level format.
type authRootFormat map[string]CredentialEntry

// authCredsFormat is the [creds."url"] format.
type authCredsFormat struct {
	Creds map[string]CredentialEntry `toml:"creds"`
}

// LoadAuthFromData parses auth.toml data. Both formats may be mixed in
// one file:
//
//	["https://staging.gobears.com/sports"]
//	username = "editor"
//	password = "secret"
//
//	[creds."https://drive.example.edu"]
//	bearer = "token"
func LoadAuthFromData(data []byte) map[string]CredentialEntry {
	result := make(map[string]CredentialEntry)

	var root authRootFormat
	if err := toml.Unmarshal(data, &root); err == nil {
		for k, v := range root {
			if k != "creds" {
				result[k] = v
			}
		}
	}

	var creds authCredsFormat
	if err := toml.Unmarshal(data, &creds); err == nil {
		maps.Copy(result, creds.Creds)
	}

	return result
}

// isSchemelessKey returns true if the key does not contain a scheme (no "://").
func isSchemelessKey(key string) bool {
	return !strings.Contains(key, "://")
}

// LookupAuth finds credentials for a URL.
//
// Keys with a scheme match on scheme, host and path prefix; the longest
// matching path wins. Keys without a scheme ("host" or "host:port") match
// the request host and are only used when no scheme key matched.
func LookupAuth(creds map[string]CredentialEntry, reqURL string) *CredentialEntry {
	if len(creds) == 0 {
		return nil
	}

	u, err := url.Parse(reqURL)
	if err != nil {
		log.Warn().Msgf("invalid auth request url: %s", reqURL)
		return nil
	}

	var (
		best    *CredentialEntry
		bestLen = -1
	)
	for k, v := range creds {
		if isSchemelessKey(k) {
			continue
		}
		defURL, err := url.Parse(k)
		if err != nil {
			log.Error().Msgf("invalid auth config url: %s", k)
			continue
		}
		if !strings.EqualFold(defURL.Scheme, u.Scheme) ||
			!strings.EqualFold(defURL.Host, u.Host) ||
			!strings.HasPrefix(u.Path, defURL.Path) {
			continue
		}
		if len(defURL.Path) > bestLen {
			entry := v
			best = &entry
			bestLen = len(defURL.Path)
		}
	}
	if best != nil {
		return best
	}

	for k, v := range creds {
		if isSchemelessKey(k) && (strings.EqualFold(k, u.Host) || strings.EqualFold(k, u.Hostname())) {
			return &v
		}
	}

	return nil
}
