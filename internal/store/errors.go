// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by state store methods. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrStateNotFound is returned when no state exists under the requested
	// key (or, for GetNewestState, below the requested counter).
	ErrStateNotFound = errors.New("state not found")

	// ErrStateInvalid is returned by callers that could read a state but not
	// decode it.
	ErrStateInvalid = errors.New("state is invalid")

	// ErrUnavailable marks failures classified as transient: the whole
	// request may be retried later.
	ErrUnavailable = errors.New("state store temporarily unavailable")

	// ErrUnknownDriver is returned by NewStorages for an unsupported driver.
	ErrUnknownDriver = errors.New("unknown state store driver")
)

// Low-level database operation errors.
var (
	ErrBuildingSQLQuery   = errors.New("error building sql query")
	ErrExecutingQuery     = errors.New("error executing sql query")
	ErrExecutingStatement = errors.New("failed to execute statement")
	ErrScanningRow        = errors.New("failed to scan state row")
	ErrScanningRows       = errors.New("failed to scan state rows")
)
