// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-eas-sync/internal/config"
	"github.com/MKhiriev/go-eas-sync/internal/logger"
	"github.com/MKhiriev/go-eas-sync/internal/store"
)

type Workers struct {
	workers []Worker
}

// NewWorkers creates the configured workers. A zero janitor interval turns
// the janitor off.
func NewWorkers(states store.StateStore, cfg config.Workers, clock clockwork.Clock, logger *logger.Logger) *Workers {
	w := &Workers{}
	if cfg.JanitorInterval > 0 && cfg.JanitorMaxAge > 0 {
		w.workers = append(w.workers, NewJanitor(states, cfg.JanitorInterval, cfg.JanitorMaxAge, clock, logger))
	}
	return w
}

// Run runs every worker until ctx is done. The first failure stops the
// others.
func (w *Workers) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, worker := range w.workers {
		g.Go(func() error { return worker.Run(gctx) })
	}
	return g.Wait()
}
