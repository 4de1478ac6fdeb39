// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-eas-sync/internal/app"
	"github.com/MKhiriev/go-eas-sync/internal/backend"
	"github.com/MKhiriev/go-eas-sync/internal/protocol"
	"github.com/MKhiriev/go-eas-sync/internal/service"
	"github.com/MKhiriev/go-eas-sync/internal/store"
	"github.com/MKhiriev/go-eas-sync/internal/validators"
)

var errorStatusMap = map[error]int{
	service.ErrAuthFailed:    http.StatusUnauthorized,
	service.ErrInvalidToken:  http.StatusUnauthorized,
	service.ErrAdminDisabled: http.StatusNotFound,
	service.ErrDeviceUnknown: http.StatusNotFound,
	backend.ErrAuthFailed:    http.StatusUnauthorized,

	backend.ErrUnavailable:   http.StatusServiceUnavailable,
	store.ErrUnavailable:     http.StatusServiceUnavailable,
	context.DeadlineExceeded: http.StatusServiceUnavailable,

	protocol.ErrMalformedRequest: http.StatusBadRequest,
	protocol.ErrUnexpectedRoot:   http.StatusBadRequest,

	validators.ErrEmptyCommand:        http.StatusBadRequest,
	validators.ErrInvalidUser:         http.StatusBadRequest,
	validators.ErrInvalidDeviceID:     http.StatusBadRequest,
	validators.ErrInvalidDeviceType:   http.StatusBadRequest,
	validators.ErrUnsupportedProtocol: http.StatusBadRequest,
	validators.ErrInvalidPolicyKey:    http.StatusBadRequest,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// messageFor returns the response body of an error status.
func messageFor(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return app.MsgAuthenticationRequired
	case http.StatusNotFound:
		return app.MsgDeviceNotFound
	case http.StatusServiceUnavailable:
		return app.MsgBackendUnavailable
	case http.StatusInternalServerError:
		return app.MsgInternalServerError
	default:
		return http.StatusText(status)
	}
}
