// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-eas-sync/internal/config"
	"github.com/MKhiriev/go-eas-sync/internal/handler"
	"github.com/MKhiriev/go-eas-sync/internal/logger"
)

const (
	// shutdownTimeout bounds how long open requests may take to finish.
	shutdownTimeout = 30 * time.Second

	healthProbeInterval = 15 * time.Second
)

type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer
	jobs       []Job
	logger     *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger, jobs ...Job) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{jobs: jobs, logger: logger}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		servers.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg.HTTPAddress, logger)
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		servers.gRPCServer = newGRPCServer(handlers.GRPC, cfg.GRPCAddress, logger)
		servers.jobs = append(servers.jobs, func(ctx context.Context) error {
			return handlers.GRPC.Watch(ctx, healthProbeInterval)
		})
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoListeners
	}

	return servers, nil
}

// RunServer blocks until a stop signal arrives, ctx is done or one of the
// servers or jobs fails. It returns the first failure.
func (s *server) RunServer(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	// listen first so that a busy port fails before anything is served
	if s.httpServer != nil {
		if err := s.httpServer.listen(); err != nil {
			return err
		}
	}
	if s.gRPCServer != nil {
		if err := s.gRPCServer.listen(); err != nil {
			if s.httpServer != nil {
				_ = s.httpServer.listener.Close()
			}
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	if s.httpServer != nil {
		g.Go(s.httpServer.serve)
	}
	if s.gRPCServer != nil {
		g.Go(s.gRPCServer.serve)
	}
	for _, job := range s.jobs {
		g.Go(func() error { return job(gctx) })
	}

	g.Go(func() error {
		<-gctx.Done()
		s.shutdown()
		return nil
	})

	err := g.Wait()
	if err != nil {
		s.logger.Error().Err(err).Msg("server stopped with an error")
		return err
	}
	s.logger.Info().Msg("server shutdown gracefully")
	return nil
}

func (s *server) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.httpServer != nil {
		s.httpServer.shutdown(ctx)
	}
	if s.gRPCServer != nil {
		s.gRPCServer.shutdown()
	}
}
