// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time abstraction for the
// register polling and retry loops that talk to firmware.
//
// Production code holds a Clock field instead of calling time.Now or
// time.Sleep directly:
//
//	type SMU struct {
//	    clock clock.Clock
//	    // ...
//	}
//
// In tests, Fake() returns a clock whose time moves only when the code
// under test sleeps or when the test calls Advance. Every Sleep is
// recorded, so a test can assert that a retry waited exactly once:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	smu := amdsmu.New(bus, amdsmu.Options{Clock: c})
//	// ... exercise ...
//	if got := c.Sleeps(); len(got) != 1 { ... }
package clock
