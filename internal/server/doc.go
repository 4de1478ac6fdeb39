// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server wires and runs the application's transport servers.
//
// It runs the ActiveSync HTTP server, the gRPC health server and background
// jobs in one errgroup: the first failure or a stop signal shuts all of them
// down.
package server
