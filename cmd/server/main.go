// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/go-eas-sync/internal/adapter"
	"github.com/MKhiriev/go-eas-sync/internal/backend"
	"github.com/MKhiriev/go-eas-sync/internal/config"
	"github.com/MKhiriev/go-eas-sync/internal/handler"
	"github.com/MKhiriev/go-eas-sync/internal/handler/grpc"
	"github.com/MKhiriev/go-eas-sync/internal/logger"
	"github.com/MKhiriev/go-eas-sync/internal/server"
	"github.com/MKhiriev/go-eas-sync/internal/service"
	"github.com/MKhiriev/go-eas-sync/internal/store"
	"github.com/MKhiriev/go-eas-sync/internal/telemetry"
	"github.com/MKhiriev/go-eas-sync/internal/workers"
	"github.com/MKhiriev/go-eas-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewLogger("eas-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Warn().Err(err).Str("level", cfg.App.LogLevel).Msg("unknown log level, keeping debug")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildVersion
	}
	build := models.NewBuildInfo(cfg.App.Version, buildDate, buildCommit)
	printBuildInfo(build)

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()
	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry, cfg.App.Version, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error setting up tracing")
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warn().Err(err).Msg("error flushing traces")
		}
	}()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	clock := clockwork.NewRealClock()
	b, err := newBackend(cfg.Backend, clock, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating backend")
	}

	services := service.NewServices(storages, b, cfg, clock, log)

	probes := []grpc.Probe{{Name: "store", Check: storages.Ping}}
	if pinger, ok := b.(backend.Pinger); ok {
		probes = append(probes, grpc.Probe{Name: "backend", Check: pinger.Ping})
	}

	handlers, err := handler.NewHandlers(services, probes, cfg.Server, build, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	bgWorkers := workers.NewWorkers(storages.StateStore, cfg.Workers, clock, log)

	srv, err := server.NewServer(handlers, cfg.Server, log, bgWorkers.Run)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(ctx); err != nil {
		log.Error().Err(err).Msg("server failed")
	}
}

func newBackend(cfg config.Backend, clock clockwork.Clock, log *logger.Logger) (backend.Backend, error) {
	switch cfg.Kind {
	case config.BackendREST:
		return adapter.NewRESTBackend(cfg, log)
	default:
		b := backend.NewMemoryBackend(clock)
		if cfg.SeedFile != "" {
			if err := b.LoadSeedFile(cfg.SeedFile); err != nil {
				return nil, err
			}
			log.Info().Str("seed_file", cfg.SeedFile).Msg("memory backend seeded")
		}
		return b, nil
	}
}

func printBuildInfo(build models.BuildInfo) {
	fmt.Printf("Build version: %s\n", build.Version)
	fmt.Printf("Build date: %s\n", build.Date)
	fmt.Printf("Build commit: %s\n", build.Commit)
}
