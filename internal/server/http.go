// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/MKhiriev/go-eas-sync/internal/logger"
)

const (
	readHeaderTimeout = 10 * time.Second
	idleTimeout       = 2 * time.Minute
)

type httpServer struct {
	server   *http.Server
	listener net.Listener
	logger   *logger.Logger
}

// newHTTPServer has no write timeout: Ping and Sync hold the response open
// for up to the heartbeat lifetime.
func newHTTPServer(handler http.Handler, address string, logger *logger.Logger) *httpServer {
	return &httpServer{
		server: &http.Server{
			Addr:              address,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
			IdleTimeout:       idleTimeout,
		},
		logger: logger,
	}
}

func (h *httpServer) listen() error {
	lis, err := net.Listen("tcp", h.server.Addr)
	if err != nil {
		return fmt.Errorf("error listening on %s: %w", h.server.Addr, err)
	}
	h.listener = lis
	return nil
}

func (h *httpServer) serve() error {
	h.logger.Info().Str("address", h.listener.Addr().String()).Msg("launching HTTP server")
	if err := h.server.Serve(h.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server: %w", err)
	}
	return nil
}

// shutdown waits for open requests, long polls included, until ctx is done
// and then closes the remaining connections.
func (h *httpServer) shutdown(ctx context.Context) {
	h.logger.Info().Msg("HTTP server shutdown")
	if err := h.server.Shutdown(ctx); err != nil {
		h.logger.Warn().Err(err).Msg("HTTP server did not drain, closing connections")
		_ = h.server.Close()
	}
}
