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

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIPFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		allowed  []string
		prefixes int
	}{
		{name: "empty list", allowed: nil, prefixes: 0},
		{name: "single IP", allowed: []string{"192.168.1.1"}, prefixes: 1},
		{name: "single CIDR", allowed: []string{"192.168.1.0/24"}, prefixes: 1},
		{name: "mixed", allowed: []string{"192.168.1.1", "10.0.0.0/8", "::1"}, prefixes: 3},
		{name: "invalid skipped", allowed: []string{"invalid", "10.0.0.1"}, prefixes: 1},
		{name: "host with port", allowed: []string{"192.168.1.1:7480"}, prefixes: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := NewIPFilter(tt.allowed)
			assert.Len(t, f.prefixes, tt.prefixes)
			assert.Equal(t, tt.prefixes > 0, f.Enabled())
		})
	}
}

func TestIPFilterIsAllowed(t *testing.T) {
	t.Parallel()

	f := NewIPFilter([]string{"192.168.1.10", "10.0.0.0/8", "2001:db8::/32"})

	tests := []struct {
		addr string
		want bool
	}{
		{addr: "192.168.1.10:5555", want: true},
		{addr: "192.168.1.11:5555", want: false},
		{addr: "10.20.30.40:80", want: true},
		{addr: "[2001:db8::5]:443", want: true},
		{addr: "[::ffff:10.1.1.1]:80", want: true},
		{addr: "[2001:db9::5]:443", want: false},
		{addr: "not-an-ip", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, f.IsAllowed(tt.addr))
		})
	}

	assert.True(t, NewIPFilter(nil).IsAllowed("8.8.8.8:53"))
	var nilFilter *IPFilter
	assert.True(t, nilFilter.IsAllowed("8.8.8.8:53"))
}

func TestHTTPIPFilterMiddleware(t *testing.T) {
	t.Parallel()

	handler := HTTPIPFilterMiddleware(NewIPFilter([]string{"127.0.0.1"}))(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
	req.RemoteAddr = "127.0.0.1:40000"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
	req.RemoteAddr = "192.168.5.5:40000"
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestParseRemoteIP(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "192.168.1.100", ParseRemoteIP("192.168.1.100:12345").String())
	assert.Equal(t, "192.168.1.100", ParseRemoteIP("192.168.1.100").String())
	assert.Equal(t, "2001:db8::1", ParseRemoteIP("[2001:db8::1]:8080").String())
	assert.Nil(t, ParseRemoteIP("garbage"))
}
