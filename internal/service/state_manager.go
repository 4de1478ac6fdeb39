// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-eas-sync/internal/logger"
	"github.com/MKhiriev/go-eas-sync/internal/store"
	"github.com/MKhiriev/go-eas-sync/models"
)

// StateManager maps the typed records of the engine onto the opaque blobs
// of the state store. Records are JSON encoded; importer and exporter
// states are stored as produced by the backend.
type StateManager struct {
	states store.StateStore
	logger *logger.Logger
}

func NewStateManager(states store.StateStore, log *logger.Logger) *StateManager {
	return &StateManager{states: states, logger: log}
}

// Device loads a device record; store.ErrStateNotFound when there is none.
func (m *StateManager) Device(ctx context.Context, deviceKey string) (*models.Device, error) {
	data, err := m.states.GetState(ctx, deviceStateKey(deviceKey))
	if err != nil {
		return nil, err
	}
	var device models.Device
	if err = json.Unmarshal(data, &device); err != nil {
		return nil, fmt.Errorf("%w: device %s: %w", ErrInvalidState, deviceKey, err)
	}
	if device.Folders == nil {
		device.Folders = make(map[string]models.Folder)
	}
	return &device, nil
}

func (m *StateManager) SaveDevice(ctx context.Context, device *models.Device) error {
	data, err := json.Marshal(device)
	if err != nil {
		return fmt.Errorf("error encoding device: %w", err)
	}
	return m.states.SetState(ctx, deviceStateKey(device.Key()), data)
}

// Parameters loads the SyncParameters of one folder.
func (m *StateManager) Parameters(ctx context.Context, deviceKey, folderID string) (*models.SyncParameters, error) {
	data, err := m.states.GetState(ctx, collectionKey(deviceKey, folderID))
	if err != nil {
		return nil, err
	}
	var params models.SyncParameters
	if err = json.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("%w: collection %s: %w", ErrInvalidState, folderID, err)
	}
	if params.FolderID != folderID {
		return nil, fmt.Errorf("%w: collection %s holds folder %q", ErrInvalidState, folderID, params.FolderID)
	}
	return &params, nil
}

// SaveParameters persists p and advances its integrity counter, so that
// a heartbeat watching the folder notices the write.
func (m *StateManager) SaveParameters(ctx context.Context, deviceKey string, p *models.SyncParameters) error {
	p.UUIDCounter++
	data, err := json.Marshal(p)
	if err != nil {
		p.UUIDCounter--
		return fmt.Errorf("error encoding collection %s: %w", p.FolderID, err)
	}
	if err = m.states.SetState(ctx, collectionKey(deviceKey, p.FolderID), data); err != nil {
		p.UUIDCounter--
		return err
	}
	return nil
}

// CollectionIDs lists the folders the device ever synchronized.
func (m *StateManager) CollectionIDs(ctx context.Context, deviceKey string) ([]string, error) {
	return m.states.ListKeys(ctx, deviceKey, models.StateTypeCollection)
}

// SyncState returns the importer/exporter state issued with synckey counter.
func (m *StateManager) SyncState(ctx context.Context, deviceKey, folderID string, counter int64) ([]byte, error) {
	return m.states.GetState(ctx, syncStateKey(deviceKey, folderID, counter))
}

func (m *StateManager) SetSyncState(ctx context.Context, deviceKey, folderID string, counter int64, data []byte) error {
	return m.states.SetState(ctx, syncStateKey(deviceKey, folderID, counter), data)
}

// FailState returns the ActionData saved by the last request made with
// synckey counter, or nil. Counters below the confirmed key are cleaned,
// so the newest failstate below counter+1 is the one of counter itself
// whenever it exists.
func (m *StateManager) FailState(ctx context.Context, deviceKey, folderID string, counter int64) (*models.ActionData, error) {
	key := models.StateKey{DeviceID: deviceKey, Type: models.StateTypeFailSync, Key: folderID, Counter: counter + 1}
	found, data, err := m.states.GetNewestState(ctx, key)
	if errors.Is(err, store.ErrStateNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if found.Counter != counter {
		return nil, nil
	}
	var actions models.ActionData
	if err = json.Unmarshal(data, &actions); err != nil {
		m.logger.Warn().Err(err).Str("key", found.String()).Msg("dropping undecodable failstate")
		return nil, nil
	}
	return &actions, nil
}

func (m *StateManager) SetFailState(ctx context.Context, deviceKey, folderID string, counter int64, actions *models.ActionData) error {
	data, err := json.Marshal(actions)
	if err != nil {
		return fmt.Errorf("error encoding failstate: %w", err)
	}
	key := models.StateKey{DeviceID: deviceKey, Type: models.StateTypeFailSync, Key: folderID, Counter: counter}
	return m.states.SetState(ctx, key, data)
}

// CleanStates drops sync states and failstates older than counter.
func (m *StateManager) CleanStates(ctx context.Context, deviceKey, folderID string, counter int64) error {
	return errors.Join(
		m.states.CleanStates(ctx, syncStateKey(deviceKey, folderID, counter)),
		m.states.CleanStates(ctx, models.StateKey{DeviceID: deviceKey, Type: models.StateTypeFailSync, Key: folderID, Counter: counter}),
	)
}

// ResetStates drops every sync state and failstate of a folder but keeps
// its parameters.
func (m *StateManager) ResetStates(ctx context.Context, deviceKey, folderID string) error {
	return errors.Join(
		m.states.DeleteStates(ctx, deviceKey, models.StateTypeSync, folderID),
		m.states.DeleteStates(ctx, deviceKey, models.StateTypeFailSync, folderID),
	)
}

// DeleteCollection forgets a folder entirely.
func (m *StateManager) DeleteCollection(ctx context.Context, deviceKey, folderID string) error {
	return errors.Join(
		m.ResetStates(ctx, deviceKey, folderID),
		m.states.DeleteStates(ctx, deviceKey, models.StateTypeCollection, folderID),
	)
}

// DeleteAllCollections forgets every folder of a device.
func (m *StateManager) DeleteAllCollections(ctx context.Context, deviceKey string) error {
	ids, err := m.CollectionIDs(ctx, deviceKey)
	if err != nil {
		return err
	}
	var errs []error
	for _, id := range ids {
		errs = append(errs, m.DeleteCollection(ctx, deviceKey, id))
	}
	return errors.Join(errs...)
}

func deviceStateKey(deviceKey string) models.StateKey {
	return models.StateKey{DeviceID: deviceKey, Type: models.StateTypeDevice}
}

func collectionKey(deviceKey, folderID string) models.StateKey {
	return models.StateKey{DeviceID: deviceKey, Type: models.StateTypeCollection, Key: folderID}
}

func syncStateKey(deviceKey, folderID string, counter int64) models.StateKey {
	return models.StateKey{DeviceID: deviceKey, Type: models.StateTypeSync, Key: folderID, Counter: counter}
}
