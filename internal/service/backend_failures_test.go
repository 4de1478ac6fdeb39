// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-eas-sync/internal/backend"
	"github.com/MKhiriev/go-eas-sync/internal/mock"
	"github.com/MKhiriev/go-eas-sync/models"
)

// scriptedSession serves the memory backend but hands out the given
// importer, exporter or changes sink instead of the real ones. A non-empty
// folder limits the scripted importer and exporter to that backend folder.
type scriptedSession struct {
	backend.Session
	folder   string
	importer backend.Importer
	exporter backend.Exporter
	sink     backend.ChangesSink
}

func (s *scriptedSession) scripts(folderID string) bool {
	return s.folder == "" || s.folder == folderID
}

func (s *scriptedSession) Importer(ctx context.Context, folderID string) (backend.Importer, error) {
	if s.importer != nil && s.scripts(folderID) {
		return s.importer, nil
	}
	return s.Session.Importer(ctx, folderID)
}

func (s *scriptedSession) Exporter(ctx context.Context, folderID string) (backend.Exporter, error) {
	if s.exporter != nil && s.scripts(folderID) {
		return s.exporter, nil
	}
	return s.Session.Exporter(ctx, folderID)
}

func (s *scriptedSession) ChangesSink() (backend.ChangesSink, bool) {
	if s.sink != nil {
		return s.sink, true
	}
	return s.Session.ChangesSink()
}

func (f *fixture) script(s *scriptedSession) {
	s.Session = f.req.Session
	f.req.Session = s
}

// ── Importer and exporter failures ───────────────────────────────────────────

func TestSync_ImportConflictIsReported(t *testing.T) {
	f := newFixture(t)
	key := f.syncTo(inboxID)

	ctrl := gomock.NewController(t)
	imp := mock.NewMockImporter(ctrl)
	imp.EXPECT().Configure(gomock.Any(), gomock.Any()).Return(nil)
	imp.EXPECT().ImportChange(gomock.Any(), "", gomock.Any()).Return("", backend.ErrConflict)
	imp.EXPECT().State().Return([]byte("after-import"), nil)

	exp := mock.NewMockExporter(ctrl)
	exp.EXPECT().Configure(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	exp.EXPECT().Next(gomock.Any()).Return(models.Change{}, false, nil).AnyTimes()
	exp.EXPECT().ChangeCount(gomock.Any()).Return(0, nil).AnyTimes()
	exp.EXPECT().State().Return([]byte("after-import"), nil).AnyTimes()

	f.script(&scriptedSession{importer: imp, exporter: exp})

	c := f.sync(models.SyncCollectionRequest{
		SyncKey:      key,
		CollectionID: inboxID,
		Commands: []models.ClientCommand{{
			Type:     models.CommandAdd,
			ClientID: "c-1",
			Item:     models.Item{Properties: []models.Property{{Name: "Email:Subject", Value: "draft"}}},
		}},
	}).collection(t, inboxID)

	assert.Equal(t, models.SyncStatusSuccess, c.Status)
	require.Len(t, c.Responses, 1)
	assert.Equal(t, "c-1", c.Responses[0].ClientID)
	assert.Equal(t, models.SyncStatusConflict, c.Responses[0].Status)
	assert.NotEqual(t, key, c.SyncKey)
}

func TestSync_ExporterRejectingStateForcesResync(t *testing.T) {
	f := newFixture(t)
	key := f.syncTo(inboxID)
	f.putItems("inbox", "new")

	ctrl := gomock.NewController(t)
	exp := mock.NewMockExporter(ctrl)
	exp.EXPECT().Configure(gomock.Any(), gomock.Any()).Return(errors.New("unreadable cursor"))
	f.script(&scriptedSession{exporter: exp})

	c := f.sync(models.SyncCollectionRequest{SyncKey: key, CollectionID: inboxID}).collection(t, inboxID)

	assert.Equal(t, models.SyncStatusInvalidSyncKey, c.Status)
	assert.Equal(t, models.SyncKeyInitial, c.SyncKey)
	assert.Empty(t, c.Changes)
}

func TestSync_ExportFailureIsFatal(t *testing.T) {
	f := newFixture(t)
	key := f.syncTo(inboxID)
	f.putItems("inbox", "new")

	boom := errors.New("backend went away")
	ctrl := gomock.NewController(t)
	exp := mock.NewMockExporter(ctrl)
	exp.EXPECT().Configure(gomock.Any(), gomock.Any()).Return(nil)
	exp.EXPECT().Next(gomock.Any()).Return(models.Change{}, false, boom)
	f.script(&scriptedSession{exporter: exp})

	w := &recorder{}
	err := f.engine.Sync(f.ctx, f.req, &models.SyncRequest{
		Collections: []models.SyncCollectionRequest{{SyncKey: key, CollectionID: inboxID}},
	}, w)

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, w.collections)
}

func TestSync_FailedExportKeepsStreamedKeys(t *testing.T) {
	f := newFixture(t)
	inboxKey := f.syncTo(inboxID)
	contactsKey := f.syncTo(contactsID)
	f.putItems("inbox", "a")
	f.putItems("contacts", "x")

	boom := errors.New("backend went away")
	ctrl := gomock.NewController(t)
	exp := mock.NewMockExporter(ctrl)
	exp.EXPECT().Configure(gomock.Any(), gomock.Any()).Return(nil)
	exp.EXPECT().Next(gomock.Any()).Return(models.Change{}, false, boom)
	session := f.req.Session
	f.script(&scriptedSession{folder: "contacts", exporter: exp})

	w := &recorder{}
	err := f.engine.Sync(f.ctx, f.req, &models.SyncRequest{
		Collections: []models.SyncCollectionRequest{
			{SyncKey: inboxKey, CollectionID: inboxID},
			{SyncKey: contactsKey, CollectionID: contactsID},
		},
	}, w)
	require.ErrorIs(t, err, boom)
	require.Len(t, w.collections, 1, "only the inbox was streamed")
	streamed := w.collections[0]
	assert.Equal(t, inboxID, streamed.CollectionID)
	assert.Equal(t, []string{"a"}, subjects(streamed.Changes))
	require.NotEqual(t, inboxKey, streamed.SyncKey)

	// the device received the inbox key before the connection broke
	f.req.Session = session
	c := f.sync(models.SyncCollectionRequest{SyncKey: streamed.SyncKey, CollectionID: inboxID}).collection(t, inboxID)
	assert.Equal(t, models.SyncStatusSuccess, c.Status)
	assert.Equal(t, streamed.SyncKey, c.SyncKey)
	assert.Empty(t, c.Changes)
}

// ── Changes sink ─────────────────────────────────────────────────────────────

func TestPing_ObsoleteSinkEndsHeartbeat(t *testing.T) {
	f := newFixture(t)
	f.syncTo(inboxID)

	ctrl := gomock.NewController(t)
	sink := mock.NewMockChangesSink(ctrl)
	sink.EXPECT().Watch(gomock.Any(), []string{"inbox"}).Return(backend.ErrSinkObsolete)
	sink.EXPECT().Close().Return(nil)
	f.script(&scriptedSession{sink: sink})

	resp, err := f.ping.Ping(f.ctx, f.req, &models.PingRequest{HeartbeatInterval: 600, Folders: pingFolders(inboxID)})
	require.NoError(t, err)
	assert.Equal(t, models.PingStatusExpired, resp.Status)
}

func TestPing_SinkNotificationReportsChange(t *testing.T) {
	f := newFixture(t)
	f.syncTo(inboxID)

	ctrl := gomock.NewController(t)
	sink := mock.NewMockChangesSink(ctrl)
	gomock.InOrder(
		sink.EXPECT().Watch(gomock.Any(), []string{"inbox"}).Return(nil),
		sink.EXPECT().Wait(gomock.Any(), 30*time.Second).DoAndReturn(func(context.Context, time.Duration) ([]string, error) {
			f.putItems("inbox", "pushed")
			return []string{"inbox"}, nil
		}),
		sink.EXPECT().Close().Return(nil),
	)
	f.script(&scriptedSession{sink: sink})

	resp, err := f.ping.Ping(f.ctx, f.req, &models.PingRequest{HeartbeatInterval: 600, Folders: pingFolders(inboxID)})
	require.NoError(t, err)
	assert.Equal(t, models.PingStatusChanges, resp.Status)
	assert.Equal(t, []string{inboxID}, resp.Folders)
}
