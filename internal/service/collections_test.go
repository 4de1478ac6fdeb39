// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-eas-sync/models"
)

func (f *fixture) collections(opts CollectionsOptions) *SyncCollections {
	return NewSyncCollections(f.states, f.req, f.clock, opts)
}

// ── Registry ─────────────────────────────────────────────────────────────────

func TestSyncCollections_AddCollectionOnce(t *testing.T) {
	f := newFixture(t)
	c := f.collections(CollectionsOptions{})

	require.NoError(t, c.AddCollection(&models.SyncParameters{FolderID: inboxID}))
	require.NoError(t, c.AddCollection(&models.SyncParameters{FolderID: contactsID}))
	assert.ErrorIs(t, c.AddCollection(&models.SyncParameters{FolderID: inboxID}), ErrDuplicateCollection)

	assert.Equal(t, 2, c.Len())
	got := c.Collections()
	assert.Equal(t, inboxID, got[0].FolderID)
	assert.Equal(t, contactsID, got[1].FolderID)
}

func TestSyncCollections_SaveUnknown(t *testing.T) {
	f := newFixture(t)
	err := f.collections(CollectionsOptions{}).SaveCollection(f.ctx, "42")
	assert.ErrorIs(t, err, ErrUnknownCollection)
}

func TestSyncCollections_SaveAllSkipsStale(t *testing.T) {
	f := newFixture(t)
	f.syncTo(inboxID)
	f.syncTo(contactsID)

	c := f.collections(CollectionsOptions{})
	require.NoError(t, c.LoadAllCollections(f.ctx, LoadOptions{}))
	require.NoError(t, c.Watch(f.ctx))

	// another request saves the inbox meanwhile
	other := f.collections(CollectionsOptions{})
	_, err := other.LoadCollection(f.ctx, inboxID, false, false)
	require.NoError(t, err)
	require.NoError(t, other.SaveCollection(f.ctx, inboxID))
	newer, err := f.states.Parameters(f.ctx, f.req.DeviceKey(), inboxID)
	require.NoError(t, err)

	stale, err := c.StaleCollections(f.ctx)
	require.NoError(t, err)
	require.Equal(t, []string{inboxID}, stale)

	contacts, _ := c.GetCollection(contactsID)
	contacts.WindowSize = 7
	require.NoError(t, c.SaveAllCollections(f.ctx))

	p, err := f.states.Parameters(f.ctx, f.req.DeviceKey(), inboxID)
	require.NoError(t, err)
	assert.Equal(t, newer.UUIDCounter, p.UUIDCounter, "the stale inbox is not overwritten")
	p, err = f.states.Parameters(f.ctx, f.req.DeviceKey(), contactsID)
	require.NoError(t, err)
	assert.Equal(t, 7, p.WindowSize)
}

func TestSyncCollections_LoadCollection(t *testing.T) {
	f := newFixture(t)
	f.putItems("inbox", "one")
	key := f.syncTo(inboxID)

	c := f.collections(CollectionsOptions{})
	p, err := c.LoadCollection(f.ctx, inboxID, true, true)
	require.NoError(t, err)
	assert.Equal(t, key, p.SyncKey)
	state, ok := c.LoadedState(inboxID)
	assert.True(t, ok)
	assert.NotEmpty(t, state)

	// the device lost the folder
	delete(f.req.Device.Folders, inboxID)
	_, err = f.collections(CollectionsOptions{}).LoadCollection(f.ctx, inboxID, false, true)
	assert.ErrorIs(t, err, ErrWrongHierarchy)
}

func TestSyncCollections_LoadAllOnlyConfirmed(t *testing.T) {
	f := newFixture(t)
	f.syncTo(inboxID)
	// contacts has an issued but unconfirmed key
	f.sync(models.SyncCollectionRequest{SyncKey: models.SyncKeyInitial, CollectionID: contactsID})

	c := f.collections(CollectionsOptions{})
	require.NoError(t, c.LoadAllCollections(f.ctx, LoadOptions{OnlyConfirmed: true}))
	assert.Equal(t, 1, c.Len())
	_, ok := c.GetCollection(inboxID)
	assert.True(t, ok)
}

// ── Windowing ────────────────────────────────────────────────────────────────

func TestSyncCollections_WindowSize(t *testing.T) {
	f := newFixture(t)
	c := f.collections(CollectionsOptions{DefaultWindowSize: 100, MaxWindowSize: 50, GlobalWindowSize: 80})
	require.NoError(t, c.AddCollection(&models.SyncParameters{FolderID: inboxID, WindowSize: 20}))
	require.NoError(t, c.AddCollection(&models.SyncParameters{FolderID: contactsID}))

	assert.Equal(t, 20, c.WindowSize(inboxID), "remembered size")
	assert.Equal(t, 50, c.WindowSize(contactsID), "default capped by the maximum")

	c.SetRequest(inboxID, CollectionRequest{WindowSize: 5})
	assert.Equal(t, 5, c.WindowSize(inboxID))

	c.AddStreamed(70)
	assert.Equal(t, 10, c.RemainingGlobalWindow())
	assert.Equal(t, 10, c.WindowSize(contactsID))

	c.AddStreamed(30)
	assert.Equal(t, 0, c.RemainingGlobalWindow())
	assert.Equal(t, 0, c.WindowSize(contactsID))
}

func TestSyncCollections_SetGlobalWindowSize(t *testing.T) {
	f := newFixture(t)

	c := f.collections(CollectionsOptions{GlobalWindowSize: 100})
	c.SetGlobalWindowSize(200)
	assert.Equal(t, 100, c.RemainingGlobalWindow(), "never raised above the cap")
	c.SetGlobalWindowSize(30)
	assert.Equal(t, 30, c.RemainingGlobalWindow())

	unbounded := f.collections(CollectionsOptions{})
	assert.Equal(t, -1, unbounded.RemainingGlobalWindow())
	unbounded.SetGlobalWindowSize(7)
	assert.Equal(t, 7, unbounded.RemainingGlobalWindow())
}

// ── Budget ───────────────────────────────────────────────────────────────────

func TestBudget(t *testing.T) {
	clock := clockwork.NewFakeClock()
	heap := uint64(10)
	b := NewBudget(clock, time.Minute, 100, func() uint64 { return heap })

	_, exceeded := b.Exceeded()
	assert.False(t, exceeded)

	heap = 100
	reason, exceeded := b.Exceeded()
	assert.True(t, exceeded)
	assert.Equal(t, "memory", reason)

	heap = 0
	clock.Advance(time.Minute)
	reason, exceeded = b.Exceeded()
	assert.True(t, exceeded)
	assert.Equal(t, "time", reason)
}

func TestBudget_Unbounded(t *testing.T) {
	clock := clockwork.NewFakeClock()
	b := NewBudget(clock, 0, 0, func() uint64 { return 1 << 40 })
	clock.Advance(24 * time.Hour)
	_, exceeded := b.Exceeded()
	assert.False(t, exceeded)
}
