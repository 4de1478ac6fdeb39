// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/go-eas-sync/internal/config"
	"github.com/MKhiriev/go-eas-sync/internal/logger"
	"github.com/MKhiriev/go-eas-sync/internal/service"
	"github.com/MKhiriev/go-eas-sync/internal/validators"
	"github.com/MKhiriev/go-eas-sync/models"
)

type Handler struct {
	services  *service.Services
	validator validators.Validator
	limiter   *deviceLimiter
	commands  map[string]command
	cfg       config.Server
	build     models.BuildInfo

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, build models.BuildInfo, logger *logger.Logger) *Handler {
	h := &Handler{
		services:  services,
		validator: validators.NewRequestValidator(),
		limiter:   newDeviceLimiter(cfg.ThrottleRPS, cfg.ThrottleBurst),
		cfg:       cfg,
		build:     build,
		logger:    logger,
	}
	h.commands = h.commandTable()
	logger.Info().Msg("http handler created")
	return h
}
