// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides general-purpose helper utilities used across the
// server: typed context keys, hashing, JSON responses, UUIDs and admin JWT
// tokens.
package utils

import (
	"context"

	"github.com/MKhiriev/go-eas-sync/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

var (
	// RequestCtxKey stores the [models.RequestContext] of an ActiveSync
	// request.
	RequestCtxKey = contextKey("request")

	// TraceIDCtxKey stores the trace id assigned to a request.
	TraceIDCtxKey = contextKey("traceID")

	// AdminCtxKey stores the subject of a verified admin token.
	AdminCtxKey = contextKey("admin")
)

// WithRequestContext returns a copy of ctx carrying rc.
func WithRequestContext(ctx context.Context, rc models.RequestContext) context.Context {
	return context.WithValue(ctx, RequestCtxKey, rc)
}

// GetRequestContext retrieves the request context stored by
// WithRequestContext.
func GetRequestContext(ctx context.Context) (models.RequestContext, bool) {
	rc, ok := ctx.Value(RequestCtxKey).(models.RequestContext)
	return rc, ok
}

// GetTraceIDFromContext retrieves the trace id of the current request.
func GetTraceIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(TraceIDCtxKey).(string)
	return id, ok
}

// GetAdminFromContext retrieves the admin subject of the current request.
func GetAdminFromContext(ctx context.Context) (string, bool) {
	sub, ok := ctx.Value(AdminCtxKey).(string)
	return sub, ok && sub != ""
}
