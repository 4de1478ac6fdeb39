// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

//go:generate mockgen -source=interfaces.go -destination=../mock/backend_mock.go -package=mock

package backend

import (
	"context"
	"time"

	"github.com/MKhiriev/go-eas-sync/models"
)

// Backend authenticates users against the groupware store.
type Backend interface {
	Logon(ctx context.Context, user, password string) (Session, error)
	Name() string
}

// Pinger is implemented by backends that can report their availability
// without a user session.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Session is the groupware store as seen by one authenticated user.
type Session interface {
	User() string
	Hierarchy(ctx context.Context) ([]models.BackendFolder, error)

	// FolderStat returns a fingerprint that changes whenever anything in
	// the folder changes.
	FolderStat(ctx context.Context, folderID string) (string, error)

	Importer(ctx context.Context, folderID string) (Importer, error)
	Exporter(ctx context.Context, folderID string) (Exporter, error)
	Fetch(ctx context.Context, folderID, itemID string) (models.Item, error)

	// ChangesSink reports false when the store cannot push notifications;
	// callers then fall back to polling FolderStat.
	ChangesSink() (ChangesSink, bool)
}

// Importer applies device changes to one folder.
type Importer interface {
	Configure(state []byte, opts models.ImportOptions) error

	// ImportChange stores item. An empty serverID creates a new item; the
	// id of the stored item is returned.
	ImportChange(ctx context.Context, serverID string, item models.Item) (string, error)
	ImportDeletion(ctx context.Context, serverID string) error

	// Acknowledge records that the device already has the current version
	// of serverID, so that it is not exported back.
	Acknowledge(ctx context.Context, serverID string) error

	State() ([]byte, error)
}

// Exporter streams server changes of one folder that the device has not
// seen yet. State reflects exactly the changes returned by Next so far.
type Exporter interface {
	Configure(state []byte, opts models.ExportOptions) error
	ChangeCount(ctx context.Context) (int, error)
	Next(ctx context.Context) (models.Change, bool, error)
	State() ([]byte, error)
}

// ChangesSink delivers change notifications for watched folders.
type ChangesSink interface {
	Watch(ctx context.Context, folderIDs []string) error

	// Wait blocks until a watched folder changes or timeout elapses and
	// returns the changed folder ids. ErrSinkObsolete is returned once the
	// store invalidated the sink.
	Wait(ctx context.Context, timeout time.Duration) ([]string, error)
	Close() error
}
