// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/go-eas-sync/models"
)

type memoryKey struct {
	deviceID  string
	stateType models.StateType
	key       string
}

// memoryStateStore keeps all state in process memory. It is used for
// development and tests; state is lost on restart.
type memoryStateStore struct {
	mu      sync.RWMutex
	states  map[memoryKey]map[int64][]byte
	touched map[string]time.Time
	now     func() time.Time
}

// NewMemoryStateStore returns an empty in-memory [StateStore].
func NewMemoryStateStore() StateStore {
	return &memoryStateStore{
		states:  make(map[memoryKey]map[int64][]byte),
		touched: make(map[string]time.Time),
		now:     time.Now,
	}
}

func toMemoryKey(key models.StateKey) memoryKey {
	return memoryKey{deviceID: key.DeviceID, stateType: key.Type, key: key.Key}
}

func (m *memoryStateStore) GetState(_ context.Context, key models.StateKey) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.states[toMemoryKey(key)][key.Counter]
	if !ok {
		return nil, ErrStateNotFound
	}
	return slices.Clone(data), nil
}

func (m *memoryStateStore) SetState(_ context.Context, key models.StateKey, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	mk := toMemoryKey(key)
	counters, ok := m.states[mk]
	if !ok {
		counters = make(map[int64][]byte)
		m.states[mk] = counters
	}
	counters[key.Counter] = append([]byte{}, data...)
	if key.Type == models.StateTypeDevice {
		m.touched[key.DeviceID] = m.now()
	}
	return nil
}

func (m *memoryStateStore) GetNewestState(_ context.Context, key models.StateKey) (models.StateKey, []byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	best := int64(-1)
	found := false
	for counter := range m.states[toMemoryKey(key)] {
		if counter < key.Counter && (!found || counter > best) {
			best = counter
			found = true
		}
	}
	if !found {
		return models.StateKey{}, nil, ErrStateNotFound
	}
	return key.WithCounter(best), slices.Clone(m.states[toMemoryKey(key)][best]), nil
}

func (m *memoryStateStore) CleanStates(_ context.Context, key models.StateKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	counters := m.states[toMemoryKey(key)]
	for counter := range counters {
		if counter < key.Counter {
			delete(counters, counter)
		}
	}
	return nil
}

func (m *memoryStateStore) DeleteStates(_ context.Context, deviceID string, stateType models.StateType, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.states, memoryKey{deviceID: deviceID, stateType: stateType, key: key})
	return nil
}

func (m *memoryStateStore) ListKeys(_ context.Context, deviceID string, stateType models.StateType) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var keys []string
	for mk, counters := range m.states {
		if mk.deviceID == deviceID && mk.stateType == stateType && len(counters) > 0 {
			keys = append(keys, mk.key)
		}
	}
	slices.Sort(keys)
	return keys, nil
}

func (m *memoryStateStore) ListIdleDevices(_ context.Context, before time.Time) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var devices []string
	for deviceID, at := range m.touched {
		if at.Before(before) {
			devices = append(devices, deviceID)
		}
	}
	slices.Sort(devices)
	return devices, nil
}

func (m *memoryStateStore) DeleteDevice(_ context.Context, deviceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for mk := range m.states {
		if mk.deviceID == deviceID {
			delete(m.states, mk)
		}
	}
	delete(m.touched, deviceID)
	return nil
}
