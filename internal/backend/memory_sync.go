// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/MKhiriev/go-eas-sync/models"
)

// syncState is the blob shared by the importer and exporter of a folder:
// the version of every item the device has.
type syncState struct {
	Items map[string]uint64 `json:"items"`
}

func newSyncState() syncState {
	return syncState{Items: make(map[string]uint64)}
}

func decodeSyncState(blob []byte) (syncState, error) {
	st := newSyncState()
	if len(blob) == 0 {
		return st, nil
	}
	if err := json.Unmarshal(blob, &st); err != nil {
		return syncState{}, fmt.Errorf("%w: %v", ErrStateCorrupt, err)
	}
	if st.Items == nil {
		st.Items = make(map[string]uint64)
	}
	return st, nil
}

func (s syncState) encode() ([]byte, error) {
	return json.Marshal(s)
}

type memoryImporter struct {
	backend  *MemoryBackend
	user     string
	folderID string
	state    syncState
	opts     models.ImportOptions
}

func (i *memoryImporter) Configure(state []byte, opts models.ImportOptions) error {
	st, err := decodeSyncState(state)
	if err != nil {
		return err
	}
	i.state = st
	i.opts = opts
	return nil
}

func (i *memoryImporter) ImportChange(ctx context.Context, serverID string, item models.Item) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	b := i.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	u, f, err := b.folder(i.user, i.folderID)
	if err != nil {
		return "", err
	}

	if serverID == "" {
		id := b.put(f, "", item, b.clock.Now())
		i.state.Items[id] = f.items[id].version
		b.notify(u, i.folderID)
		return id, nil
	}

	existing, ok := f.items[serverID]
	if !ok {
		return "", fmt.Errorf("%w: item %s", ErrNotFound, serverID)
	}
	seen, known := i.state.Items[serverID]
	if i.opts.Conflict == models.ConflictServerWins && known && seen != existing.version {
		return "", fmt.Errorf("%w: item %s", ErrConflict, serverID)
	}
	b.put(f, serverID, item, existing.received)
	i.state.Items[serverID] = existing.version
	b.notify(u, i.folderID)
	return serverID, nil
}

func (i *memoryImporter) ImportDeletion(ctx context.Context, serverID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b := i.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	u, f, err := b.folder(i.user, i.folderID)
	if err != nil {
		return err
	}
	existing, ok := f.items[serverID]
	if !ok {
		return fmt.Errorf("%w: item %s", ErrNotFound, serverID)
	}

	delete(f.items, serverID)
	f.version++
	delete(i.state.Items, serverID)
	b.notify(u, i.folderID)

	if i.opts.DeletesAsMoves {
		if trash, ok := u.deletedItemsFolder(); ok && trash.folder.ID != i.folderID {
			b.put(trash, serverID, existing.item, existing.received)
			b.notify(u, trash.folder.ID)
		}
	}
	return nil
}

func (i *memoryImporter) Acknowledge(ctx context.Context, serverID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b := i.backend
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, f, err := b.folder(i.user, i.folderID)
	if err != nil {
		return err
	}
	if it, ok := f.items[serverID]; ok {
		i.state.Items[serverID] = it.version
	} else {
		delete(i.state.Items, serverID)
	}
	return nil
}

func (i *memoryImporter) State() ([]byte, error) {
	return i.state.encode()
}

type memoryExporter struct {
	backend  *MemoryBackend
	user     string
	folderID string
	state    syncState
	opts     models.ExportOptions

	pending  []pendingChange
	computed bool
	pos      int
}

type pendingChange struct {
	change  models.Change
	version uint64
}

func (e *memoryExporter) Configure(state []byte, opts models.ExportOptions) error {
	st, err := decodeSyncState(state)
	if err != nil {
		return err
	}
	e.state = st
	e.opts = opts
	e.pending = nil
	e.computed = false
	e.pos = 0
	return nil
}

func (e *memoryExporter) ChangeCount(ctx context.Context) (int, error) {
	if err := e.compute(ctx); err != nil {
		return 0, err
	}
	return len(e.pending) - e.pos, nil
}

func (e *memoryExporter) Next(ctx context.Context) (models.Change, bool, error) {
	if err := e.compute(ctx); err != nil {
		return models.Change{}, false, err
	}
	if e.pos >= len(e.pending) {
		return models.Change{}, false, nil
	}

	p := e.pending[e.pos]
	e.pos++
	switch p.change.Type {
	case models.ChangeAdd, models.ChangeModify:
		e.state.Items[p.change.ServerID] = p.version
	default:
		delete(e.state.Items, p.change.ServerID)
	}
	return p.change, true, nil
}

func (e *memoryExporter) State() ([]byte, error) {
	return e.state.encode()
}

// compute diffs the folder against the state once per configuration.
func (e *memoryExporter) compute(ctx context.Context) error {
	if e.computed {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	b := e.backend
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, f, err := b.folder(e.user, e.folderID)
	if err != nil {
		return err
	}

	cutoff := filterCutoff(e.opts, b.clock.Now())
	var adds, modifies, deletes []pendingChange
	for _, it := range sortedItems(f) {
		seen, known := e.state.Items[it.id]
		tooOld := !cutoff.IsZero() && it.received.Before(cutoff)
		switch {
		case known && tooOld:
			deletes = append(deletes, pendingChange{change: models.Change{Type: models.ChangeSoftDelete, ServerID: it.id}})
		case known && seen != it.version:
			modifies = append(modifies, pendingChange{change: models.Change{Type: models.ChangeModify, ServerID: it.id, Item: it.item}, version: it.version})
		case !known && !tooOld:
			adds = append(adds, pendingChange{change: models.Change{Type: models.ChangeAdd, ServerID: it.id, Item: it.item}, version: it.version})
		}
	}

	gone := make([]string, 0)
	for id := range e.state.Items {
		if _, ok := f.items[id]; !ok {
			gone = append(gone, id)
		}
	}
	sort.Strings(gone)
	for _, id := range gone {
		deletes = append(deletes, pendingChange{change: models.Change{Type: models.ChangeDelete, ServerID: id}})
	}

	e.pending = append(append(adds, modifies...), deletes...)
	e.computed = true
	return nil
}

// filterCutoff returns the oldest receive time a device asked for, or zero
// when every item is wanted.
func filterCutoff(opts models.ExportOptions, now time.Time) time.Time {
	if opts.Class != models.ClassEmail && opts.Class != models.ClassCalendar {
		return time.Time{}
	}
	day := 24 * time.Hour
	switch opts.FilterType {
	case models.FilterOneDay:
		return now.Add(-day)
	case models.FilterThreeDays:
		return now.Add(-3 * day)
	case models.FilterOneWeek:
		return now.Add(-7 * day)
	case models.FilterTwoWeeks:
		return now.Add(-14 * day)
	case models.FilterOneMonth:
		return now.AddDate(0, -1, 0)
	case models.FilterThreeMonths:
		return now.AddDate(0, -3, 0)
	case models.FilterSixMonths:
		return now.AddDate(0, -6, 0)
	}
	return time.Time{}
}
