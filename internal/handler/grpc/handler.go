// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package grpc serves the standard gRPC health service. The serving status
// follows periodic probes of the state store and the groupware backend.
package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/go-eas-sync/internal/logger"
)

// ServiceName is the health service name of the ActiveSync endpoint. The
// empty name reports the same status.
const ServiceName = "activesync"

const probeTimeout = 5 * time.Second

// Probe checks one dependency of the server.
type Probe struct {
	Name  string
	Check func(ctx context.Context) error
}

// Handler is the root gRPC transport handler.
type Handler struct {
	health *health.Server
	probes []Probe

	logger *logger.Logger
}

// NewHandler returns a handler that reports NOT_SERVING until the first
// successful round of probes.
func NewHandler(probes []Probe, logger *logger.Logger) *Handler {
	h := &Handler{
		health: health.NewServer(),
		probes: probes,
		logger: logger,
	}
	h.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
	logger.Debug().Msg("gRPC handler created")
	return h
}

// Register adds the health service to s.
func (h *Handler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.health)
}

// Watch runs the probes every interval until ctx is done, then marks the
// server as shutting down.
func (h *Handler) Watch(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		h.Probe(ctx)
		select {
		case <-ctx.Done():
			h.health.Shutdown()
			return nil
		case <-ticker.C:
		}
	}
}

// Probe runs every probe once and updates the serving status.
func (h *Handler) Probe(ctx context.Context) bool {
	healthy := true
	for _, p := range h.probes {
		pctx, cancel := context.WithTimeout(ctx, probeTimeout)
		err := p.Check(pctx)
		cancel()
		if err != nil {
			h.logger.Warn().Err(err).Str("probe", p.Name).Msg("health probe failed")
			healthy = false
		}
	}

	if healthy {
		h.setStatus(healthpb.HealthCheckResponse_SERVING)
	} else {
		h.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
	}
	return healthy
}

func (h *Handler) setStatus(status healthpb.HealthCheckResponse_ServingStatus) {
	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
}
