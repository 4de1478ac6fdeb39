// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-eas-sync/internal/backend"
	"github.com/MKhiriev/go-eas-sync/internal/logger"
	"github.com/MKhiriev/go-eas-sync/internal/store"
	"github.com/MKhiriev/go-eas-sync/models"
)

// currentCounter is the synckey counter whose state describes what the
// device has or is about to have.
func currentCounter(p *models.SyncParameters) int64 {
	key := p.SyncKey
	if p.HasNewSyncKey() {
		key = p.NewSyncKey
	}
	_, counter, _ := models.ParseSyncKey(key)
	return counter
}

// CountChanges returns how many backend changes folderID has for the
// device. An unchanged folder stat answers without opening an exporter,
// unless a previous export stopped early.
func (c *SyncCollections) CountChanges(ctx context.Context, folderID string) (int, error) {
	p, ok := c.collections[folderID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownCollection, folderID)
	}

	stat, err := c.req.Session.FolderStat(ctx, p.BackendFolderID)
	if err != nil {
		return 0, err
	}
	now := c.clock.Now()
	if !p.ResumeNeeded && p.FolderStatValid(now) && stat == p.FolderStat {
		return 0, nil
	}

	var state []byte
	if counter := currentCounter(p); counter > 0 {
		state, err = c.states.SyncState(ctx, c.req.DeviceKey(), folderID, counter)
		if errors.Is(err, store.ErrStateNotFound) {
			return 0, fmt.Errorf("%w: no state for folder %s counter %d", ErrInvalidState, folderID, counter)
		}
		if err != nil {
			return 0, err
		}
	}

	exporter, err := c.req.Session.Exporter(ctx, p.BackendFolderID)
	if err != nil {
		return 0, err
	}
	if err = exporter.Configure(state, p.ExportOptions()); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	n, err := exporter.ChangeCount(ctx)
	if err != nil {
		return 0, err
	}
	if n == 0 && !p.ResumeNeeded {
		p.FolderStat = stat
		p.FolderStatTimeout = now.Add(c.opts.StatTTL)
	}
	return n, nil
}

// CheckForChanges blocks for up to lifetime until any collection of the
// registry changes. It returns true as soon as a change is detected and
// false when the lifetime elapses without one.
//
// The wait is split into slices of at most pollInterval. With a backend
// changes sink each slice waits on the sink; otherwise it sleeps, unless
// allowFallbackPoll is false, in which case a single detection pass is
// made. Collections registered with Watch are checked for writes by other
// requests on every slice; a stale collection ends the wait with
// ErrStaleCollections.
func (c *SyncCollections) CheckForChanges(ctx context.Context, lifetime, pollInterval time.Duration, allowFallbackPoll bool) (bool, error) {
	deadline := c.clock.Now().Add(lifetime)
	log := logger.FromContext(ctx)

	sink, hasSink := c.req.Session.ChangesSink()
	if hasSink {
		ids := make([]string, 0, len(c.order))
		for _, id := range c.order {
			ids = append(ids, c.collections[id].BackendFolderID)
		}
		if err := sink.Watch(ctx, ids); err != nil {
			_ = sink.Close()
			if errors.Is(err, backend.ErrSinkObsolete) {
				return false, ErrObsoleteConnection
			}
			return false, err
		}
		defer sink.Close()
	}

	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		changed, err := c.detect(ctx)
		if err != nil {
			return false, err
		}
		if changed {
			return true, nil
		}

		stale, err := c.StaleCollections(ctx)
		if err != nil {
			return false, err
		}
		if len(stale) > 0 {
			log.Info().Strs("folders", stale).Msg("watched collections were changed by another request")
			return false, ErrStaleCollections
		}

		remaining := deadline.Sub(c.clock.Now())
		if remaining <= 0 {
			return false, nil
		}
		wait := remaining
		if pollInterval > 0 {
			wait = min(pollInterval, remaining)
		}

		switch {
		case hasSink:
			notified, err := sink.Wait(ctx, wait)
			if errors.Is(err, backend.ErrSinkObsolete) {
				return false, ErrObsoleteConnection
			}
			if err != nil {
				return false, err
			}
			if len(notified) > 0 {
				log.Debug().Strs("backend_folders", notified).Msg("backend notification")
			}
		case !allowFallbackPoll:
			return false, nil
		default:
			timer := c.clock.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return false, ctx.Err()
			case <-timer.Chan():
			}
		}
	}
}

// detect runs one detection pass over all collections. A folder whose
// state is broken or that disappeared from the backend counts as changed so
// the device is steered into a Sync that repairs it.
func (c *SyncCollections) detect(ctx context.Context) (bool, error) {
	clear(c.changes)
	changed := false
	for _, id := range c.order {
		n, err := c.CountChanges(ctx, id)
		switch {
		case errors.Is(err, ErrInvalidState), errors.Is(err, backend.ErrNotFound), errors.Is(err, backend.ErrStateCorrupt):
			logger.FromContext(ctx).Warn().Err(err).Str("folder_id", id).Msg("forcing resync of folder")
			n = 1
		case err != nil:
			return false, err
		}
		if n > 0 {
			c.changes[id] = n
			changed = true
		}
	}
	return changed, nil
}

// GetChangedFolderIDs returns the pending change count of every folder
// found changed by the last detection pass.
func (c *SyncCollections) GetChangedFolderIDs() map[string]int {
	out := make(map[string]int, len(c.changes))
	for id, n := range c.changes {
		out[id] = n
	}
	return out
}

// ── Integrity tokens ─────────────────────────────────────────────────────────

// Watch gives every collection a fresh integrity token and persists it.
// StaleCollections later compares the stored tokens against these.
func (c *SyncCollections) Watch(ctx context.Context) error {
	for _, id := range c.order {
		p := c.collections[id]
		p.UUID = c.uuids.Generate()
		if err := c.states.SaveParameters(ctx, c.req.DeviceKey(), p); err != nil {
			return fmt.Errorf("error saving watched collection %s: %w", id, err)
		}
		c.tokens[id] = watchToken{uuid: p.UUID, counter: p.UUIDCounter}
	}
	return nil
}

// StaleCollections returns the watched collections that another request
// saved since Watch.
func (c *SyncCollections) StaleCollections(ctx context.Context) ([]string, error) {
	if len(c.tokens) == 0 {
		return nil, nil
	}
	c.stale = c.stale[:0]
	for _, id := range c.order {
		tok, ok := c.tokens[id]
		if !ok {
			continue
		}
		stored, err := c.states.Parameters(ctx, c.req.DeviceKey(), id)
		switch {
		case errors.Is(err, store.ErrStateNotFound), errors.Is(err, ErrInvalidState):
			c.stale = append(c.stale, id)
			continue
		case err != nil:
			return nil, err
		}
		if stored.UUID != tok.uuid || stored.UUIDCounter != tok.counter {
			c.stale = append(c.stale, id)
		}
	}
	return append([]string(nil), c.stale...), nil
}

func (c *SyncCollections) isStale(folderID string) bool {
	for _, id := range c.stale {
		if id == folderID {
			return true
		}
	}
	return false
}
