// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the response messages shared by the HTTP handlers
// and middlewares. Devices ignore bodies of failed requests; the messages
// are for operators reading proxy logs and admin clients.
package app

const (
	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgAuthenticationRequired is returned when Basic credentials are
	// missing or rejected by the groupware backend.
	MsgAuthenticationRequired = "authentication required"

	// MsgTokenIsExpiredOrInvalid is returned when an admin bearer token is
	// either expired or cannot be verified.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgCommandNotImplemented is returned for commands outside the
	// command table.
	MsgCommandNotImplemented = "command not implemented"

	// MsgInvalidRequestParameters prefixes validation failures of the
	// query parameters and headers of a command.
	MsgInvalidRequestParameters = "invalid request parameters"

	// MsgInvalidGzipData is returned when a gzip request body cannot be
	// decompressed.
	MsgInvalidGzipData = "invalid gzip data"

	// MsgDeviceThrottled is returned when a device exceeds its request
	// rate.
	MsgDeviceThrottled = "too many requests, retry later"

	// MsgBackendUnavailable is returned when the groupware backend or the
	// state store cannot be reached.
	MsgBackendUnavailable = "backend unavailable, retry later"

	// MsgDeviceNotFound is returned by the admin endpoints for devices
	// that never connected.
	MsgDeviceNotFound = "device not found"
)
