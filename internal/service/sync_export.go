// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-eas-sync/internal/backend"
	"github.com/MKhiriev/go-eas-sync/internal/logger"
	"github.com/MKhiriev/go-eas-sync/internal/metrics"
	"github.com/MKhiriev/go-eas-sync/models"
)

func (e *SyncEngine) openExporter(ctx context.Context, req *Request, p *models.SyncParameters, state []byte) (backend.Exporter, error) {
	exp, err := req.Session.Exporter(ctx, p.BackendFolderID)
	if err != nil {
		return nil, fmt.Errorf("error opening exporter for %s: %w", p.FolderID, err)
	}
	if err = exp.Configure(state, p.ExportOptions()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	return exp, nil
}

// exportChanges streams at most one window of backend changes into cy.
// When changes are left over, the collection is flagged MoreAvailable and
// its folder stat is discarded so the next request exports again.
func (e *SyncEngine) exportChanges(ctx context.Context, req *Request, coll *SyncCollections, cy *syncCycle, budget *Budget) error {
	p := cy.params
	if !coll.Request(p.FolderID).GetChanges {
		return nil
	}
	log := logger.FromContext(ctx).With().Str("folder_id", p.FolderID).Logger()
	ctx, span := tracer.Start(ctx, "Sync.export")
	defer span.End()

	stat, err := req.Session.FolderStat(ctx, p.BackendFolderID)
	if err != nil {
		return fmt.Errorf("error reading folder stat of %s: %w", p.FolderID, err)
	}
	now := e.clock.Now()
	if !cy.initial && !cy.actions.HasChanges() && !p.ResumeNeeded && p.FolderStatValid(now) && stat == p.FolderStat {
		return nil
	}

	exp, err := e.openExporter(ctx, req, p, cy.state)
	if errors.Is(err, ErrInvalidState) {
		log.Warn().Err(err).Msg("exporter rejected the sync state")
		return e.invalidate(ctx, req, cy)
	}
	if err != nil {
		return err
	}

	window := coll.WindowSize(p.FolderID)
	reason := "window"
	if window == 0 {
		reason = "global_window"
	}
	for len(cy.changes) < window {
		if r, over := budget.Exceeded(); over {
			log.Warn().Str("reason", r).Int("streamed", len(cy.changes)).Msg("export budget exhausted")
			reason = r
			break
		}
		change, ok, err := exp.Next(ctx)
		if err != nil {
			return fmt.Errorf("error exporting %s: %w", p.FolderID, err)
		}
		if !ok {
			break
		}
		cy.changes = append(cy.changes, change)
	}

	remaining, err := exp.ChangeCount(ctx)
	if err != nil {
		return fmt.Errorf("error counting changes of %s: %w", p.FolderID, err)
	}
	if remaining > 0 {
		cy.more = true
		p.ResumeNeeded = true
		p.InvalidateFolderStat()
		metrics.ReportMoreAvailable(reason)
	} else if !cy.more {
		p.ResumeNeeded = false
		p.FolderStat = stat
		p.FolderStatTimeout = now.Add(e.cfg.FolderStatTTL)
	}

	if cy.state, err = exp.State(); err != nil {
		return fmt.Errorf("error reading exporter state of %s: %w", p.FolderID, err)
	}
	coll.AddStreamed(len(cy.changes))
	metrics.ReportExported(string(p.ContentClass), len(cy.changes))
	return nil
}

// issueSyncKey saves the state reached by this request under the next
// synckey and leaves that key pending until the device echoes it. Exported
// changes alone need a new key; a request that neither imported nor
// exported anything keeps the current one.
func (e *SyncEngine) issueSyncKey(ctx context.Context, req *Request, cy *syncCycle) error {
	if !cy.active() {
		return nil
	}
	p := cy.params
	if !cy.initial && !cy.actions.HasChanges() && len(cy.changes) == 0 {
		cy.syncKey = p.SyncKey
		return nil
	}

	next := cy.counter + 1
	if err := e.states.SetSyncState(ctx, req.DeviceKey(), p.FolderID, next, cy.state); err != nil {
		return fmt.Errorf("error saving sync state of %s: %w", p.FolderID, err)
	}
	if cy.actions.HasChanges() {
		if err := e.states.SetFailState(ctx, req.DeviceKey(), p.FolderID, cy.counter, cy.actions); err != nil {
			return fmt.Errorf("error saving failstate of %s: %w", p.FolderID, err)
		}
	}
	p.NewSyncKey = p.SyncKeyFor(next)
	p.LastSynced = e.clock.Now()
	cy.syncKey = p.NewSyncKey
	return nil
}
