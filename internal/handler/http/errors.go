// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrMissingCredentials is logged when a device sends no Basic
	// credentials.
	ErrMissingCredentials = errors.New("missing basic credentials")

	// ErrMissingSession means the auth middleware did not run before a
	// command handler.
	ErrMissingSession = errors.New("no backend session in request context")
)
