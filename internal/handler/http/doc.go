// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the HTTP binding of the ActiveSync endpoint and
// the admin API.
//
// Requests to /Microsoft-Server-ActiveSync pass Basic authentication,
// request-parameter validation and per-device throttling before the
// command table dispatches them to the service layer. Every command except
// Provision is gated on a current policy key. Tracing, access logging and
// response compression are handled by middlewares shared by all routes.
package http
