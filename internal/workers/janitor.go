// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/go-eas-sync/internal/logger"
	"github.com/MKhiriev/go-eas-sync/internal/metrics"
	"github.com/MKhiriev/go-eas-sync/internal/store"
)

// Janitor removes the state of devices that have not synchronized for
// longer than maxAge. A returning device starts over with a full resync.
type Janitor struct {
	states   store.StateStore
	interval time.Duration
	maxAge   time.Duration
	clock    clockwork.Clock
	logger   *logger.Logger
}

func NewJanitor(states store.StateStore, interval, maxAge time.Duration, clock clockwork.Clock, logger *logger.Logger) *Janitor {
	return &Janitor{
		states:   states,
		interval: interval,
		maxAge:   maxAge,
		clock:    clock,
		logger:   logger,
	}
}

// Run sweeps once per interval. Sweep errors are logged and do not stop
// the janitor.
func (j *Janitor) Run(ctx context.Context) error {
	ticker := j.clock.NewTicker(j.interval)
	defer ticker.Stop()

	j.logger.Info().Dur("interval", j.interval).Dur("max_age", j.maxAge).Msg("janitor started")
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.Chan():
			if _, err := j.Sweep(ctx); err != nil && !errors.Is(err, context.Canceled) {
				j.logger.Error().Err(err).Msg("janitor sweep failed")
			}
		}
	}
}

// Sweep removes idle devices once and returns how many were removed.
func (j *Janitor) Sweep(ctx context.Context) (int, error) {
	before := j.clock.Now().Add(-j.maxAge)
	devices, err := j.states.ListIdleDevices(ctx, before)
	if err != nil {
		return 0, err
	}

	removed := 0
	var errs []error
	for _, device := range devices {
		if err = j.states.DeleteDevice(ctx, device); err != nil {
			errs = append(errs, err)
			continue
		}
		removed++
		j.logger.Info().Str("device", device).Msg("removed idle device state")
	}

	metrics.ReportJanitorRemoved(removed)
	return removed, errors.Join(errs...)
}
