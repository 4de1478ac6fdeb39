// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	ErrInvalidBackendConfigs = errors.New("invalid backend configuration")
	ErrInvalidSyncConfigs    = errors.New("invalid sync configuration")
	ErrInvalidPingConfigs    = errors.New("invalid ping configuration")
	ErrInvalidAppConfigs     = errors.New("invalid app configuration")
)
