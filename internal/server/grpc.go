// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"fmt"
	"net"

	"google.golang.org/grpc"

	myGRPC "github.com/MKhiriev/go-eas-sync/internal/handler/grpc"
	"github.com/MKhiriev/go-eas-sync/internal/logger"
)

type grpcServer struct {
	handler *myGRPC.Handler

	server          *grpc.Server
	address         string
	gRPCNetListener net.Listener

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, address string, logger *logger.Logger) *grpcServer {
	s := grpc.NewServer()
	handler.Register(s)
	return &grpcServer{
		handler: handler,
		server:  s,
		address: address,
		logger:  logger,
	}
}

func (g *grpcServer) listen() error {
	lis, err := net.Listen("tcp", g.address)
	if err != nil {
		return fmt.Errorf("error listening on %s: %w", g.address, err)
	}
	g.gRPCNetListener = lis
	return nil
}

func (g *grpcServer) serve() error {
	g.logger.Info().Str("address", g.gRPCNetListener.Addr().String()).Msg("launching gRPC server")
	if err := g.server.Serve(g.gRPCNetListener); err != nil {
		return fmt.Errorf("gRPC server: %w", err)
	}
	return nil
}

func (g *grpcServer) shutdown() {
	g.logger.Info().Msg("gRPC server shutdown")
	g.server.GracefulStop()
}
