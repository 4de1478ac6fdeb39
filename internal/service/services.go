// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/go-eas-sync/internal/backend"
	"github.com/MKhiriev/go-eas-sync/internal/config"
	"github.com/MKhiriev/go-eas-sync/internal/logger"
	"github.com/MKhiriev/go-eas-sync/internal/store"
)

// Services bundles the command services shared by all transports.
type Services struct {
	AuthService       AuthService
	DeviceService     DeviceService
	SyncService       SyncService
	PingService       PingService
	ProvisionService  ProvisionService
	FolderSyncService FolderSyncService
	AdminService      AdminService
}

func NewServices(storages *store.Storages, b backend.Backend, cfg *config.StructuredConfig, clock clockwork.Clock, logger *logger.Logger) *Services {
	states := NewStateManager(storages.StateStore, logger)
	devices := NewDeviceManager(states, clock, logger)

	return &Services{
		AuthService:       NewAuthService(b, cfg.App, logger),
		DeviceService:     devices,
		SyncService:       NewSyncEngine(states, devices, clock, cfg.Sync, cfg.Ping, logger),
		PingService:       NewHeartbeat(states, devices, clock, cfg.Ping, cfg.Sync, logger),
		ProvisionService:  NewProvisioner(devices, cfg.Provisioning, logger),
		FolderSyncService: NewFolderSyncer(states, devices, logger),
		AdminService:      NewAdminService(states, devices, clock, logger),
	}
}
