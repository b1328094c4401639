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

package mocks

import (
	"context"
	"fmt"

	"github.com/rostercheck/rostercheck/pkg/roster"
	"github.com/rostercheck/rostercheck/pkg/scraper"
	"github.com/stretchr/testify/mock"
)

// MockScraper is a mock implementation of the Scraper interface using testify/mock
type MockScraper struct {
	mock.Mock
}

func (m *MockScraper) Scrape(ctx context.Context, url string) (roster.Raw, error) {
	args := m.Called(ctx, url)
	raw, _ := args.Get(0).(roster.Raw)
	if err := args.Error(1); err != nil {
		return raw, fmt.Errorf("mock operation failed: %w", err)
	}
	return raw, nil
}

// Info returns scraper metadata
func (m *MockScraper) Info() scraper.Info {
	args := m.Called()
	if info, ok := args.Get(0).(scraper.Info); ok {
		return info
	}
	return scraper.Info{Name: "mock"}
}

// NewMockScraper returns a scraper that answers every URL with raw.
func NewMockScraper(raw roster.Raw) *MockScraper {
	m := &MockScraper{}
	m.On("Scrape", mock.Anything, mock.Anything).Return(raw, nil)
	m.On("Info").Return(scraper.Info{Name: "mock"}).Maybe()
	return m
}

// MockFetcher is a mock page fetcher.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	args := m.Called(ctx, url)
	body, _ := args.Get(0).([]byte)
	if err := args.Error(1); err != nil {
		return nil, fmt.Errorf("mock operation failed: %w", err)
	}
	return body, nil
}
