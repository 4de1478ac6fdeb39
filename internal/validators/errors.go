// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyCommand        = errors.New("command is required")
	ErrInvalidUser         = errors.New("invalid user")
	ErrInvalidDeviceID     = errors.New("invalid device id")
	ErrInvalidDeviceType   = errors.New("invalid device type")
	ErrUnsupportedProtocol = errors.New("unsupported protocol version")
	ErrInvalidPolicyKey    = errors.New("invalid policy key")
)
