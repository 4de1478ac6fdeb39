// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"

	"github.com/MKhiriev/go-eas-sync/models"
)

var (
	// ErrInvalidState marks a persisted state that cannot be decoded. The
	// affected folder is resynchronized from scratch.
	ErrInvalidState = errors.New("invalid sync state")

	// ErrWrongHierarchy marks a folder whose identity no longer resolves
	// against the device hierarchy.
	ErrWrongHierarchy = errors.New("folder hierarchy changed")

	// ErrObsoleteConnection is returned by a change wait whose notification
	// channel was invalidated by the backend.
	ErrObsoleteConnection = errors.New("notification channel is obsolete")

	// ErrStaleCollections is returned by a change wait when another request
	// saved one of the watched collections.
	ErrStaleCollections = errors.New("collections changed by another request")

	ErrDuplicateCollection = errors.New("collection already added")
	ErrUnknownCollection   = errors.New("unknown collection")

	ErrAuthFailed    = errors.New("authentication failed")
	ErrInvalidToken  = errors.New("invalid admin token")
	ErrAdminDisabled = errors.New("admin endpoints are disabled")
	ErrDeviceUnknown = errors.New("device not found")
)

// StatusOf returns the protocol status carried by err.
func StatusOf(err error) (*models.StatusError, bool) {
	return models.AsStatus(err)
}

func globalStatus(code int, err error) error {
	return models.NewStatusError(models.ScopeGlobal, code, err)
}
