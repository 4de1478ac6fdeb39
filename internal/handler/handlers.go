// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"github.com/MKhiriev/go-eas-sync/internal/config"
	"github.com/MKhiriev/go-eas-sync/internal/handler/grpc"
	"github.com/MKhiriev/go-eas-sync/internal/handler/http"
	"github.com/MKhiriev/go-eas-sync/internal/logger"
	"github.com/MKhiriev/go-eas-sync/internal/service"
	"github.com/MKhiriev/go-eas-sync/models"
)

type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

func NewHandlers(services *service.Services, probes []grpc.Probe, cfg config.Server, build models.BuildInfo, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, cfg, build, logger)
	}
	if cfg.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(probes, logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoTransports
	}

	return handlers, nil
}
