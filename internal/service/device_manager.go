// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/go-eas-sync/internal/logger"
	"github.com/MKhiriev/go-eas-sync/internal/store"
	"github.com/MKhiriev/go-eas-sync/models"
)

type deviceManager struct {
	states *StateManager
	clock  clockwork.Clock
	logger *logger.Logger
}

func NewDeviceManager(states *StateManager, clock clockwork.Clock, log *logger.Logger) DeviceService {
	return &deviceManager{states: states, clock: clock, logger: log}
}

func (m *deviceManager) Load(ctx context.Context, rc models.RequestContext) (*models.Device, error) {
	now := m.clock.Now()
	device, err := m.states.Device(ctx, models.DeviceKey(rc.User, rc.DeviceID))
	switch {
	case errors.Is(err, store.ErrStateNotFound):
		device = models.NewDevice(rc.DeviceID, rc.DeviceType, rc.User)
		device.FirstSeen = now
		logger.FromContext(ctx).Info().Str("device_type", rc.DeviceType).Msg("new device")
	case errors.Is(err, ErrInvalidState):
		logger.FromContext(ctx).Warn().Err(err).Msg("device record is corrupt, starting over")
		device = models.NewDevice(rc.DeviceID, rc.DeviceType, rc.User)
		device.FirstSeen = now
	case err != nil:
		return nil, fmt.Errorf("error loading device: %w", err)
	}

	if rc.DeviceType != "" {
		device.DeviceType = rc.DeviceType
	}
	if rc.UserAgent != "" {
		device.UserAgent = rc.UserAgent
	}
	if rc.ProtocolVersion != "" {
		device.ProtocolVersion = rc.ProtocolVersion
	}
	device.LastSeen = now

	if err = m.states.SaveDevice(ctx, device); err != nil {
		return nil, fmt.Errorf("error saving device: %w", err)
	}
	return device, nil
}

func (m *deviceManager) Save(ctx context.Context, device *models.Device) error {
	return m.states.SaveDevice(ctx, device)
}

func (m *deviceManager) Get(ctx context.Context, user, deviceID string) (*models.Device, error) {
	device, err := m.states.Device(ctx, models.DeviceKey(user, deviceID))
	if errors.Is(err, store.ErrStateNotFound) {
		return nil, ErrDeviceUnknown
	}
	return device, err
}
