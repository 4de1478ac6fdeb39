// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the synchronization engine: the collection
// registry shared by Sync and Ping, the per-folder Sync state machine, the
// heartbeat loop, the provisioning handshake and the hierarchy
// synchronization that assigns folder ids.
//
// Engine operations return expected protocol outcomes as
// [*models.StatusError] values; any other error is fatal for the request.
package service
