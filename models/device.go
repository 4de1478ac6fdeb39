// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strconv"
	"strings"
	"time"
)

// WipeStatus tracks a remote wipe request through provisioning.
type WipeStatus int

const (
	WipeNone WipeStatus = iota
	WipeRequested
	WipeWiped
)

func (w WipeStatus) String() string {
	switch w {
	case WipeRequested:
		return "requested"
	case WipeWiped:
		return "wiped"
	}
	return "none"
}

// Device is everything the server remembers about one device of one user.
type Device struct {
	DeviceID        string `json:"device_id"`
	DeviceType      string `json:"device_type"`
	User            string `json:"user"`
	UserAgent       string `json:"user_agent,omitempty"`
	ProtocolVersion string `json:"protocol_version,omitempty"`

	// PolicyKey is the active, acknowledged policy key. PendingPolicyKey is
	// the key issued in provisioning phase 1 and not acknowledged yet.
	PolicyKey        string `json:"policy_key,omitempty"`
	PendingPolicyKey string `json:"pending_policy_key,omitempty"`
	PolicyHash       string `json:"policy_hash,omitempty"`

	WipeStatus      WipeStatus `json:"wipe_status"`
	WipeRequestedAt time.Time  `json:"wipe_requested_at,omitempty"`

	HeartbeatInterval int `json:"heartbeat_interval,omitempty"`

	HierarchySyncKey string            `json:"hierarchy_sync_key,omitempty"`
	Folders          map[string]Folder `json:"folders,omitempty"`
	NextFolderID     int               `json:"next_folder_id"`

	// LastSyncCollections are the folders of the last Sync request, re-used
	// when a device sends an empty Sync.
	LastSyncCollections []string `json:"last_sync_collections,omitempty"`

	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`
}

// DeviceKey is the state-store identity of a device of a user. Device ids
// are only unique per user.
func DeviceKey(user, deviceID string) string {
	return strings.ToLower(user) + ":" + deviceID
}

// Key returns the state-store identity of d.
func (d *Device) Key() string {
	return DeviceKey(d.User, d.DeviceID)
}

// NewDevice returns a blank device record.
func NewDevice(deviceID, deviceType, user string) *Device {
	return &Device{
		DeviceID:         deviceID,
		DeviceType:       deviceType,
		User:             user,
		HierarchySyncKey: SyncKeyInitial,
		Folders:          make(map[string]Folder),
		NextFolderID:     1,
	}
}

// FolderByBackendID looks a folder up by backend identity.
func (d *Device) FolderByBackendID(backendID string) (Folder, bool) {
	for _, f := range d.Folders {
		if f.BackendID == backendID {
			return f, true
		}
	}
	return Folder{}, false
}

// AllocateFolderID hands out the next short logical folder id.
func (d *Device) AllocateFolderID() string {
	if d.NextFolderID < 1 {
		d.NextFolderID = 1
	}
	id := strconv.Itoa(d.NextFolderID)
	d.NextFolderID++
	return id
}

// ResetHierarchy forgets every known folder.
func (d *Device) ResetHierarchy() {
	d.Folders = make(map[string]Folder)
	d.HierarchySyncKey = SyncKeyInitial
	d.LastSyncCollections = nil
}
