// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"fmt"
)

// Sync command status codes.
const (
	SyncStatusSuccess            = 1
	SyncStatusInvalidSyncKey     = 3
	SyncStatusProtocolError      = 4
	SyncStatusServerError        = 5
	SyncStatusConversionError    = 6
	SyncStatusConflict           = 7
	SyncStatusObjectNotFound     = 8
	SyncStatusUserAccountError   = 9
	SyncStatusHierarchyChanged   = 12
	SyncStatusIncompleteRequest  = 13
	SyncStatusInvalidInterval    = 14
	SyncStatusTooManyCollections = 15
	SyncStatusRetry              = 16
)

// Ping command status codes.
const (
	PingStatusExpired               = 1
	PingStatusChanges               = 2
	PingStatusMissingParameters     = 3
	PingStatusSyntaxError           = 4
	PingStatusInvalidInterval       = 5
	PingStatusTooManyFolders        = 6
	PingStatusHierarchySyncRequired = 7
	PingStatusServerError           = 8
)

// Provision command and policy status codes.
const (
	ProvisionStatusSuccess       = 1
	ProvisionStatusProtocolError = 2
	ProvisionStatusServerError   = 3

	PolicyStatusSuccess           = 1
	PolicyStatusNoPolicy          = 2
	PolicyStatusUnknownPolicyType = 3
	PolicyStatusServerCorrupt     = 4
	PolicyStatusWrongPolicyKey    = 5
)

// FolderSync command status codes.
const (
	FolderSyncStatusSuccess        = 1
	FolderSyncStatusServerError    = 6
	FolderSyncStatusInvalidSyncKey = 9
	FolderSyncStatusFormatError    = 10
)

// Command-independent status codes (protocol 14.0+).
const (
	StatusDeviceNotProvisioned = 142
	StatusPolicyRefresh        = 143
	StatusInvalidPolicyKey     = 144
)

// StatusScope tells the dispatcher at which level of the response a status
// belongs.
type StatusScope int

const (
	// ScopeGlobal statuses replace the whole command response body.
	ScopeGlobal StatusScope = iota
	// ScopeCollection statuses are written inside one collection/folder element.
	ScopeCollection
)

// StatusError is an expected protocol outcome carried through the error
// return of engine operations. It is written into the wire response; it never
// turns into an HTTP-level failure.
type StatusError struct {
	Scope StatusScope
	Code  int
	Err   error
}

// NewStatusError builds a [StatusError]; err may be nil.
func NewStatusError(scope StatusScope, code int, err error) *StatusError {
	return &StatusError{Scope: scope, Code: code, Err: err}
}

func (e *StatusError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("protocol status %d", e.Code)
	}
	return fmt.Sprintf("protocol status %d: %v", e.Code, e.Err)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// AsStatus extracts the [StatusError] from err's chain.
func AsStatus(err error) (*StatusError, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr, true
	}
	return nil, false
}
