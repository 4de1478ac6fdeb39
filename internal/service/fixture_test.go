// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-eas-sync/internal/backend"
	"github.com/MKhiriev/go-eas-sync/internal/config"
	"github.com/MKhiriev/go-eas-sync/internal/logger"
	"github.com/MKhiriev/go-eas-sync/internal/store"
	"github.com/MKhiriev/go-eas-sync/models"
)

const (
	testUser     = "alice"
	testPassword = "secret"

	inboxID    = "1"
	contactsID = "2"
)

// fixture is one device of one user synchronizing against the memory
// backend. Its hierarchy is already synchronized: the inbox is folder "1"
// and the contacts folder "2".
type fixture struct {
	t       *testing.T
	ctx     context.Context
	clock   *clockwork.FakeClock
	backend *backend.MemoryBackend
	store   store.StateStore
	states  *StateManager
	devices DeviceService
	engine  *SyncEngine
	ping    *Heartbeat
	folders *FolderSyncer
	req     *Request
}

func testSyncConfig() config.Sync {
	return config.Sync{
		MaxWindowSize:     512,
		GlobalWindowSize:  512,
		DefaultWindowSize: 100,
		FolderStatTTL:     time.Hour,
		IgnoredClasses:    []string{"SMS"},
		MaxCollections:    10,
	}
}

func testPingConfig() config.Ping {
	return config.Ping{
		MinLifetime:         time.Minute,
		MaxLifetime:         59 * time.Minute,
		PollInterval:        30 * time.Second,
		MaxFolders:          10,
		ExcludedFolderTypes: []int{int(models.FolderTypeOutbox)},
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, testSyncConfig(), testPingConfig())
}

func newFixtureWith(t *testing.T, syncCfg config.Sync, pingCfg config.Ping) *fixture {
	t.Helper()
	ctx := context.Background()
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))

	b := backend.NewMemoryBackend(clock)
	require.NoError(t, b.AddUser(testUser, testPassword))
	require.NoError(t, b.AddFolder(testUser, models.BackendFolder{ID: "inbox", Name: "Inbox", Type: models.FolderTypeInbox}))
	require.NoError(t, b.AddFolder(testUser, models.BackendFolder{ID: "contacts", Name: "Contacts", Type: models.FolderTypeContacts}))
	sess, err := b.Logon(ctx, testUser, testPassword)
	require.NoError(t, err)

	st := store.NewMemoryStateStore()
	states := NewStateManager(st, logger.Nop())
	devices := NewDeviceManager(states, clock, logger.Nop())

	rc := models.RequestContext{User: testUser, DeviceID: "dev-1", DeviceType: "iPhone", ProtocolVersion: "14.1"}
	device, err := devices.Load(ctx, rc)
	require.NoError(t, err)

	f := &fixture{
		t:       t,
		ctx:     ctx,
		clock:   clock,
		backend: b,
		store:   st,
		states:  states,
		devices: devices,
		engine:  NewSyncEngine(states, devices, clock, syncCfg, pingCfg, logger.Nop()),
		ping:    NewHeartbeat(states, devices, clock, pingCfg, syncCfg, logger.Nop()),
		folders: NewFolderSyncer(states, devices, logger.Nop()),
		req:     &Request{RequestContext: rc, Session: sess, Device: device},
	}
	f.engine.SetMemorySampler(func() uint64 { return 0 })

	resp, err := f.folders.FolderSync(ctx, f.req, &models.FolderSyncRequest{SyncKey: models.SyncKeyInitial})
	require.NoError(t, err)
	require.Len(t, resp.Adds, 2)
	return f
}

func (f *fixture) putItems(folderID string, subjects ...string) []string {
	f.t.Helper()
	ids := make([]string, 0, len(subjects))
	for _, s := range subjects {
		id, err := f.backend.PutItem(testUser, folderID, "", models.Item{
			Class:      models.ClassEmail,
			Properties: []models.Property{{Name: "Email:Subject", Value: s}},
		}, time.Time{})
		require.NoError(f.t, err)
		ids = append(ids, id)
		// distinct receive times keep the export order stable
		f.clock.Advance(time.Second)
	}
	return ids
}

// recorder collects what the engine writes for one Sync response.
type recorder struct {
	started     bool
	closed      bool
	status      int
	limit       int
	collections []models.SyncCollectionResponse
}

func (r *recorder) Started() bool { return r.started }

func (r *recorder) WriteStatus(status, limit int) error {
	r.started = true
	r.status, r.limit = status, limit
	return nil
}

func (r *recorder) WriteCollection(c models.SyncCollectionResponse) error {
	r.started = true
	r.collections = append(r.collections, c)
	return nil
}

func (r *recorder) Close() error {
	r.closed = true
	return nil
}

func (r *recorder) collection(t *testing.T, id string) models.SyncCollectionResponse {
	t.Helper()
	for _, c := range r.collections {
		if c.CollectionID == id {
			return c
		}
	}
	require.Failf(t, "missing collection", "collection %s not in response", id)
	return models.SyncCollectionResponse{}
}

func (f *fixture) syncRequest(sreq *models.SyncRequest) *recorder {
	f.t.Helper()
	w := &recorder{}
	require.NoError(f.t, f.engine.Sync(f.ctx, f.req, sreq, w))
	return w
}

func (f *fixture) sync(collections ...models.SyncCollectionRequest) *recorder {
	f.t.Helper()
	return f.syncRequest(&models.SyncRequest{Collections: collections})
}

// syncTo brings folderID to a confirmed synckey and returns it.
func (f *fixture) syncTo(folderID string) string {
	f.t.Helper()
	key := models.SyncKeyInitial
	for range 10 {
		c := f.sync(models.SyncCollectionRequest{SyncKey: key, CollectionID: folderID}).collection(f.t, folderID)
		require.Equal(f.t, models.SyncStatusSuccess, c.Status)
		if c.SyncKey == key && !c.MoreAvailable {
			return key
		}
		key = c.SyncKey
	}
	require.FailNow(f.t, "folder did not settle")
	return ""
}
