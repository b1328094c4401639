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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestAPIListen_NoRecursiveLock guards against APIListen calling APIPort
// while holding the read lock. With -tags=deadlock, go-deadlock panics on
// recursive locks.
func TestAPIListen_NoRecursiveLock(t *testing.T) {
	t.Parallel()

	cfg := &Instance{}

	done := make(chan struct{})
	go func() {
		_ = cfg.APIListen()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("APIListen() deadlocked - recursive RLock bug has regressed")
	}
}

// TestConcurrentAccess verifies getters and setters are safe for concurrent use.
func TestConcurrentAccess(t *testing.T) {
	t.Parallel()

	cfg := NewDefaultConfig(BaseDefaults)

	done := make(chan struct{})
	for i := range 10 {
		go func() {
			for range 100 {
				_ = cfg.APIPort()
				_ = cfg.APIListen()
				_ = cfg.ImageExtension()
				_ = cfg.CacheTTL()
				if i%2 == 0 {
					cfg.SetDetectFlippedOrder(true)
				}
			}
			done <- struct{}{}
		}()
	}

	for range 10 {
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("concurrent access deadlocked")
		}
	}
}

func TestAPIListen_DefaultPort(t *testing.T) {
	t.Parallel()

	cfg := &Instance{}
	assert.Equal(t, ":7480", cfg.APIListen())
}

func TestAPIListen_CustomListen(t *testing.T) {
	t.Parallel()

	cfg := &Instance{}
	cfg.vals.API.Listen = "127.0.0.1"
	port := 9000
	cfg.vals.API.Port = &port
	assert.Equal(t, "127.0.0.1:9000", cfg.APIListen())
}
