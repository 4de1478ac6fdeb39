// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-eas-sync/internal/backend"
	"github.com/MKhiriev/go-eas-sync/models"
)

// Request is the per-request context handed to every engine operation:
// the identifying fields of the HTTP request, the authenticated backend
// session and the device record loaded for it.
type Request struct {
	models.RequestContext
	Session backend.Session
	Device  *models.Device
}

// DeviceKey returns the state-store identity of the request's device.
func (r *Request) DeviceKey() string {
	return r.Device.Key()
}

// SyncResponseWriter receives a Sync response one collection at a time.
// Implemented by protocol.SyncWriter.
type SyncResponseWriter interface {
	Started() bool
	WriteStatus(status, limit int) error
	WriteCollection(c models.SyncCollectionResponse) error
	Close() error
}

type AuthService interface {
	// Authenticate opens a backend session for the Basic credentials of a
	// request. Wrong credentials yield ErrAuthFailed.
	Authenticate(ctx context.Context, user, password string) (backend.Session, error)

	// CreateAdminToken and ParseAdminToken issue and verify the bearer
	// tokens of the admin endpoints.
	CreateAdminToken(subject string) (string, error)
	ParseAdminToken(token string) (string, error)
}

type DeviceService interface {
	// Load returns the device record of rc, creating it on first contact,
	// and records the request's protocol details.
	Load(ctx context.Context, rc models.RequestContext) (*models.Device, error)
	Save(ctx context.Context, device *models.Device) error
	Get(ctx context.Context, user, deviceID string) (*models.Device, error)
}

type SyncService interface {
	Sync(ctx context.Context, req *Request, sreq *models.SyncRequest, w SyncResponseWriter) error
}

type PingService interface {
	Ping(ctx context.Context, req *Request, preq *models.PingRequest) (*models.PingResponse, error)
}

type ProvisionService interface {
	// CheckPolicy returns a global 142/144 status when the device must
	// provision before running any other command.
	CheckPolicy(device *models.Device, policyKey string) error
	Provision(ctx context.Context, req *Request, preq *models.ProvisionRequest) (*models.ProvisionResponse, error)
}

type FolderSyncService interface {
	FolderSync(ctx context.Context, req *Request, freq *models.FolderSyncRequest) (*models.FolderSyncResponse, error)
}

type AdminService interface {
	RequestWipe(ctx context.Context, user, deviceID string) (*models.Device, error)
	ResetDevice(ctx context.Context, user, deviceID string) error
}
