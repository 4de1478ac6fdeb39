// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/go-eas-sync/internal/logger"
	"github.com/MKhiriev/go-eas-sync/models"
)

type adminService struct {
	states  *StateManager
	devices DeviceService
	clock   clockwork.Clock
	logger  *logger.Logger
}

func NewAdminService(states *StateManager, devices DeviceService, clock clockwork.Clock, log *logger.Logger) AdminService {
	return &adminService{states: states, devices: devices, clock: clock, logger: log}
}

// RequestWipe flags the device; the wipe is delivered the next time it
// provisions, which every other command forces until then.
func (a *adminService) RequestWipe(ctx context.Context, user, deviceID string) (*models.Device, error) {
	device, err := a.devices.Get(ctx, user, deviceID)
	if err != nil {
		return nil, err
	}
	if device.WipeStatus != models.WipeRequested {
		device.WipeStatus = models.WipeRequested
		device.WipeRequestedAt = a.clock.Now()
	}
	if err = a.devices.Save(ctx, device); err != nil {
		return nil, err
	}
	a.logger.Warn().Str("user", user).Str("device_id", deviceID).Msg("remote wipe requested")
	return device, nil
}

// ResetDevice drops the folder hierarchy and all collection state, so the
// device has to resynchronize everything.
func (a *adminService) ResetDevice(ctx context.Context, user, deviceID string) error {
	device, err := a.devices.Get(ctx, user, deviceID)
	if err != nil {
		return err
	}
	if err = a.states.DeleteAllCollections(ctx, device.Key()); err != nil {
		return fmt.Errorf("error deleting collections: %w", err)
	}
	device.ResetHierarchy()
	if err = a.devices.Save(ctx, device); err != nil {
		return err
	}
	a.logger.Info().Str("user", user).Str("device_id", deviceID).Msg("device state reset")
	return nil
}
