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

package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rostercheck/rostercheck/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	t.Parallel()

	headers := make(chan http.Header, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers <- r.Header.Clone()
		_, _ = w.Write([]byte("<html>roster</html>"))
	}))
	t.Cleanup(srv.Close)

	c := NewClientWithOptions(Options{
		UserAgent: "rostercheck-test",
		Lookup: func(string) *config.CredentialEntry {
			return &config.CredentialEntry{Username: "user", Password: "pass"}
		},
	})

	body, err := c.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "<html>roster</html>", string(body))
	h := <-headers
	assert.Equal(t, "rostercheck-test", h.Get("User-Agent"))
	assert.Equal(t, "Basic dXNlcjpwYXNz", h.Get("Authorization"))
}

func TestFetchBearer(t *testing.T) {
	t.Parallel()

	auth := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		auth <- r.Header.Get("Authorization")
	}))
	t.Cleanup(srv.Close)

	c := NewClientWithOptions(Options{
		Lookup: func(string) *config.CredentialEntry {
			return &config.CredentialEntry{Bearer: "tok"}
		},
	})
	_, err := c.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", <-auth)
}

func TestFetchStatusError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	_, err := NewClient().Fetch(context.Background(), srv.URL)
	require.ErrorIs(t, err, ErrStatus)
	assert.Contains(t, err.Error(), "404")
}

func TestFetchBodyTooLarge(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 100)))
	}))
	t.Cleanup(srv.Close)

	c := NewClientWithOptions(Options{MaxBodyBytes: 10})
	_, err := c.Fetch(context.Background(), srv.URL)
	require.ErrorIs(t, err, ErrBodyTooLarge)
}

func TestFetchCancelledContext(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient().Fetch(ctx, srv.URL)
	require.Error(t, err)
}

func TestRateLimiterConfigured(t *testing.T) {
	t.Parallel()

	c := NewClientWithOptions(Options{RequestsPerMinute: 60, Timeout: time.Second})
	transport, ok := c.Transport.(*AuthTransport)
	require.True(t, ok)
	require.NotNil(t, transport.Limiter)
	assert.InDelta(t, 1.0, float64(transport.Limiter.Limit()), 0.001)
	assert.Equal(t, time.Second, c.Timeout)

	transport, ok = NewClient().Transport.(*AuthTransport)
	require.True(t, ok)
	assert.Nil(t, transport.Limiter)
}

func TestNewClientFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewDefaultConfig(config.BaseDefaults)
	c := NewClientFromConfig(cfg)
	assert.Equal(t, config.DefaultScraperTimeout, c.Timeout)
	assert.Equal(t, int64(config.DefaultMaxPageBytes), c.MaxBodyBytes)
}
