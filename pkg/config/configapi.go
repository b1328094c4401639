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
	"net"
	"slices"
	"strconv"
	"time"
)

const (
	DefaultAPIPort      = 7480
	DefaultAPIRateLimit = 60
)

type API struct {
	Port                  *int     `toml:"port,omitempty"`
	RequestTimeoutSeconds *int     `toml:"request_timeout_seconds,omitempty"`
	RequestsPerMinute     *int     `toml:"requests_per_minute,omitempty"`
	Listen                string   `toml:"listen,omitempty"`
	AllowedOrigins        []string `toml:"allowed_origins,omitempty"`
	AllowedIPs            []string `toml:"allowed_ips,omitempty"`
}

func (c *Instance) APIPort() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.apiPortLocked()
}

// apiPortLocked returns the API port. Caller must hold mu (read or write).
func (c *Instance) apiPortLocked() int {
	if c.vals.API.Port == nil {
		return DefaultAPIPort
	}
	return *c.vals.API.Port
}

func (c *Instance) SetAPIPort(port int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.API.Port = &port
}

// APIListen returns the host:port the API server binds to.
func (c *Instance) APIListen() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return net.JoinHostPort(c.vals.API.Listen, strconv.Itoa(c.apiPortLocked()))
}

func (c *Instance) AllowedOrigins() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.vals.API.AllowedOrigins)
}

func (c *Instance) APIRequestTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.API.RequestTimeoutSeconds == nil || *c.vals.API.RequestTimeoutSeconds <= 0 {
		return APIRequestTimeout
	}
	return time.Duration(*c.vals.API.RequestTimeoutSeconds) * time.Second
}

// AllowedIPs returns the IPs and CIDRs allowed to call the API. Empty
// allows everyone.
func (c *Instance) AllowedIPs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.vals.API.AllowedIPs)
}

// APIRateLimit returns the per-client request limit per minute.
func (c *Instance) APIRateLimit() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.API.RequestsPerMinute == nil || *c.vals.API.RequestsPerMinute <= 0 {
		return DefaultAPIRateLimit
	}
	return *c.vals.API.RequestsPerMinute
}
