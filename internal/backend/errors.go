// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package backend

import "errors"

var (
	ErrAuthFailed   = errors.New("backend: authentication failed")
	ErrUnavailable  = errors.New("backend: unavailable")
	ErrNotFound     = errors.New("backend: object not found")
	ErrConflict     = errors.New("backend: change conflicts with server version")
	ErrStateCorrupt = errors.New("backend: sync state cannot be decoded")
	ErrSinkObsolete = errors.New("backend: change notifications were invalidated")
	ErrUnknownKind  = errors.New("backend: unknown kind")
)
