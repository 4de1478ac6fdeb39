// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

//go:generate mockgen -source=interfaces.go -destination=../mock/state_store_mock.go -package=mock

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-eas-sync/models"
)

// StateStore persists opaque state blobs addressed by
// (device, type, key, counter). Writes to one key are visible to every
// following read of that key.
type StateStore interface {
	// GetState returns the blob stored under key or ErrStateNotFound.
	GetState(ctx context.Context, key models.StateKey) ([]byte, error)

	// SetState stores data under key, replacing a previous blob with the
	// same counter. Other counters are left untouched.
	SetState(ctx context.Context, key models.StateKey, data []byte) error

	// GetNewestState returns the blob with the highest counter strictly
	// below key.Counter, together with its full key.
	GetNewestState(ctx context.Context, key models.StateKey) (models.StateKey, []byte, error)

	// CleanStates removes every counter strictly below key.Counter.
	CleanStates(ctx context.Context, key models.StateKey) error

	// DeleteStates removes every counter of (deviceID, stateType, key).
	DeleteStates(ctx context.Context, deviceID string, stateType models.StateType, key string) error

	// ListKeys returns the distinct keys of one state type of a device.
	ListKeys(ctx context.Context, deviceID string, stateType models.StateType) ([]string, error)

	// ListIdleDevices returns devices whose device record was last written
	// before the given time.
	ListIdleDevices(ctx context.Context, before time.Time) ([]string, error)

	// DeleteDevice removes all state of a device.
	DeleteDevice(ctx context.Context, deviceID string) error
}

// ErrorClassificator decides whether a failed database operation may be
// retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
