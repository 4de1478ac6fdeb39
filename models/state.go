// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// StateType names a family of persisted state records belonging to one device.
type StateType string

const (
	// StateTypeDevice holds the serialized [Device] record (key "", counter 0).
	StateTypeDevice StateType = "device"

	// StateTypeCollection holds the serialized [SyncParameters] of one folder
	// (key = folder id, counter 0).
	StateTypeCollection StateType = "collection"

	// StateTypeSync holds the importer/exporter state blob of one folder
	// (key = folder id, counter = synckey counter).
	StateTypeSync StateType = "sync"

	// StateTypeFailSync holds the [ActionData] of the last attempt made with a
	// given synckey (key = folder id, counter = synckey counter).
	StateTypeFailSync StateType = "failsync"
)

// StateKey addresses one state blob: (device, type, key, counter).
type StateKey struct {
	DeviceID string
	Type     StateType
	Key      string
	Counter  int64
}

// String renders the key for logs.
func (k StateKey) String() string {
	return fmt.Sprintf("%s/%s/%s/%d", k.DeviceID, k.Type, k.Key, k.Counter)
}

// WithCounter returns a copy of k addressing another counter.
func (k StateKey) WithCounter(counter int64) StateKey {
	k.Counter = counter
	return k
}
