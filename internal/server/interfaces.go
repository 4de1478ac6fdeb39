// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server defines the common lifecycle contract for transport servers managed
// by this package.
type Server interface {
	// RunServer serves requests until ctx is done or the server fails, then
	// shuts down gracefully.
	RunServer(ctx context.Context) error
}

// Job is a background task run next to the servers, e.g. a worker. It must
// return once ctx is done.
type Job func(ctx context.Context) error
