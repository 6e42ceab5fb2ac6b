// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rocketchat

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bureau-foundation/rocketdesk/lib/clock"
)

// PollerConfig holds configuration for a Poller.
type PollerConfig struct {
	// Interval between refreshes. Required.
	Interval time.Duration

	// Clock drives the ticker. If nil, clock.Real() is used.
	Clock clock.Clock

	// Logger is used for structured logging. If nil, slog.Default() is used.
	Logger *slog.Logger

	// OnRefresh, if set, is called after every refresh attempt with its
	// result. A tick skipped because the session is not logged in
	// reports ErrNotLoggedIn.
	OnRefresh func(error)
}

// Poller refreshes a Session's listings on a fixed interval. Refresh
// errors are logged and polling continues; the previous listings stay
// in the Store.
type Poller struct {
	session   *Session
	interval  time.Duration
	clock     clock.Clock
	logger    *slog.Logger
	onRefresh func(error)
}

// NewPoller creates a Poller for session.
func NewPoller(session *Session, config PollerConfig) (*Poller, error) {
	if session == nil {
		return nil, fmt.Errorf("rocketchat: poller requires a session")
	}
	if config.Interval <= 0 {
		return nil, fmt.Errorf("rocketchat: poll interval must be positive, got %v", config.Interval)
	}

	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Poller{
		session:   session,
		interval:  config.Interval,
		clock:     clk,
		logger:    logger,
		onRefresh: config.OnRefresh,
	}, nil
}

// Run refreshes once immediately and then on every tick until ctx is
// cancelled, returning ctx.Err().
func (p *Poller) Run(ctx context.Context) error {
	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	var err error
	if p.session.IsLoggedIn() {
		err = p.session.Refresh(ctx)
		if err != nil && ctx.Err() == nil {
			p.logger.Warn("refreshing room listings", "error", err)
		}
	} else {
		err = ErrNotLoggedIn
		p.logger.Debug("skipping refresh, not logged in")
	}

	if p.onRefresh != nil {
		p.onRefresh(err)
	}
}
