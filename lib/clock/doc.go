// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source so that polling
// loops can be tested without real waits.
//
// Production code holds a [Clock] and calls Now, After or NewTicker on
// it instead of the time package. [Real] delegates to the time package.
// [Fake] returns a [FakeClock] whose time moves only on Advance:
//
//	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	go poller.Run(ctx)
//	fake.WaitForTimers(1)       // the poller has created its ticker
//	fake.Advance(time.Minute)   // deliver exactly one tick
package clock
