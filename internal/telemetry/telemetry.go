// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package telemetry installs the OpenTelemetry trace provider. Spans of the
// Sync and Ping commands are exported to an OTLP gRPC collector; without an
// endpoint the global provider stays a no-op.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/MKhiriev/go-eas-sync/internal/config"
	"github.com/MKhiriev/go-eas-sync/internal/logger"
)

const defaultServiceName = "go-eas-sync"

// ShutdownFunc flushes pending spans. Call it with a fresh context.
type ShutdownFunc func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// Setup configures tracing from cfg. The returned function is never nil.
func Setup(ctx context.Context, cfg config.Telemetry, version string, log *logger.Logger) (ShutdownFunc, error) {
	if cfg.OTLPEndpoint == "" {
		log.Info().Msg("tracing disabled")
		return noopShutdown, nil
	}

	name := cfg.ServiceName
	if name == "" {
		name = defaultServiceName
	}
	res, err := resource.Merge(resource.Default(), resource.NewSchemaless(
		semconv.ServiceName(name),
		semconv.ServiceVersion(version),
	))
	if err != nil {
		return noopShutdown, fmt.Errorf("error building resource: %w", err)
	}

	creds := credentials.NewTLS(nil)
	if cfg.Insecure {
		creds = insecure.NewCredentials()
	}
	conn, err := grpc.NewClient(cfg.OTLPEndpoint, grpc.WithTransportCredentials(creds))
	if err != nil {
		return noopShutdown, fmt.Errorf("error dialing OTLP collector %q: %w", cfg.OTLPEndpoint, err)
	}

	exporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		_ = conn.Close()
		return noopShutdown, fmt.Errorf("error creating OTLP trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	log.Info().Str("endpoint", cfg.OTLPEndpoint).Str("service", name).Msg("tracing enabled")

	return func(ctx context.Context) error {
		err := tp.Shutdown(ctx)
		if cerr := conn.Close(); err == nil {
			err = cerr
		}
		return err
	}, nil
}
