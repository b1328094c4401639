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
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rostercheck/rostercheck/pkg/config"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	// DefaultTimeoutSeconds is the default timeout for HTTP requests
	DefaultTimeoutSeconds = 30
	// DefaultMaxBodyBytes caps how much of a page is read.
	DefaultMaxBodyBytes = 8 << 20
)

var (
	// ErrBodyTooLarge is returned when a page exceeds the size limit.
	ErrBodyTooLarge = errors.New("response body too large")
	// ErrStatus is returned for non-200 responses.
	ErrStatus = errors.New("unexpected status code")
)

// CredentialLookup returns credentials for a URL, or nil.
type CredentialLookup func(reqURL string) *config.CredentialEntry

// AuthTransport adds credentials from auth.toml and a User-Agent to every
// request, and waits on the limiter before sending.
type AuthTransport struct {
	Base      http.RoundTripper
	Lookup    CredentialLookup
	Limiter   *rate.Limiter
	UserAgent string
}

// RoundTrip implements http.RoundTripper interface with automatic authentication
func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = DefaultTransport
	}

	if t.Limiter != nil {
		if err := t.Limiter.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	req = req.Clone(req.Context())
	if t.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", t.UserAgent)
	}

	if t.Lookup != nil {
		if creds := t.Lookup(req.URL.String()); creds != nil {
			if creds.Bearer != "" {
				req.Header.Set("Authorization", "Bearer "+creds.Bearer)
			} else if creds.Username != "" {
				auth := base64.StdEncoding.EncodeToString([]byte(creds.Username + ":" + creds.Password))
				req.Header.Set("Authorization", "Basic "+auth)
			}
		}
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform HTTP round trip: %w", err)
	}
	return resp, nil
}

// DefaultTransport provides a configured transport with connection pooling and reasonable timeouts
var DefaultTransport = &http.Transport{
	Proxy: http.ProxyFromEnvironment,
	DialContext: (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	ResponseHeaderTimeout: 30 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
	MaxIdleConns:          100,
	MaxIdleConnsPerHost:   10,
	IdleConnTimeout:       90 * time.Second,
}

// Client provides an HTTP client with authentication and sensible defaults
type Client struct {
	*http.Client
	MaxBodyBytes int64
}

// Options configure NewClientWithOptions.
type Options struct {
	Base              http.RoundTripper
	Lookup            CredentialLookup
	UserAgent         string
	Timeout           time.Duration
	MaxBodyBytes      int64
	RequestsPerMinute int
}

// NewClient creates a new HTTP client with default settings and no limiter.
func NewClient() *Client {
	return NewClientWithOptions(Options{})
}

// NewClientWithTimeout creates a new HTTP client with a custom timeout
func NewClientWithTimeout(timeout time.Duration) *Client {
	return NewClientWithOptions(Options{Timeout: timeout})
}

// NewClientWithOptions creates a client from explicit options. A
// RequestsPerMinute of zero disables rate limiting.
func NewClientWithOptions(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeoutSeconds * time.Second
	}
	maxBody := opts.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}

	transport := &AuthTransport{
		Base:      opts.Base,
		Lookup:    opts.Lookup,
		UserAgent: opts.UserAgent,
	}
	if opts.RequestsPerMinute > 0 {
		burst := max(1, opts.RequestsPerMinute/10)
		transport.Limiter = rate.NewLimiter(rate.Limit(float64(opts.RequestsPerMinute)/60.0), burst)
	}

	return &Client{
		Client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		MaxBodyBytes: maxBody,
	}
}

// NewClientFromConfig creates a new HTTP client using the scraper settings.
func NewClientFromConfig(cfg *config.Instance) *Client {
	return NewClientWithOptions(Options{
		Lookup:            cfg.LookupAuth,
		UserAgent:         cfg.UserAgent(),
		Timeout:           cfg.ScraperTimeout(),
		MaxBodyBytes:      cfg.MaxPageBytes(),
		RequestsPerMinute: cfg.RequestsPerMinute(),
	})
}

// Fetch GETs url and returns the body. Non-200 responses and bodies larger
// than MaxBodyBytes are errors.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error getting url: %w", err)
	}
	if resp == nil {
		return nil, errors.New("received nil response")
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("error closing response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	limit := c.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("error reading body: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, limit)
	}

	log.Debug().Str("url", url).Int("bytes", len(body)).Msg("fetched page")
	return body, nil
}
