// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks the identifying parameters of ActiveSync
// requests: command name, user, device id, device type, protocol version
// and policy key. Handlers reject a failing request with 400 before any
// device state is loaded.
package validators

import "context"

// Validator validates a value, optionally only the named fields of it.
type Validator interface {
	Validate(ctx context.Context, value any, fields ...string) error
}
