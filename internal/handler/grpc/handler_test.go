// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package grpc

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-eas-sync/internal/backend"
	"github.com/MKhiriev/go-eas-sync/internal/logger"
	"github.com/MKhiriev/go-eas-sync/internal/mock"
)

func newHealthClient(t *testing.T, h *Handler) healthpb.HealthClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	h.Register(srv)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return healthpb.NewHealthClient(conn)
}

func status(t *testing.T, c healthpb.HealthClient) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := c.Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestHandler_Probe(t *testing.T) {
	var storeErr error
	h := NewHandler([]Probe{
		{Name: "store", Check: func(context.Context) error { return storeErr }},
		{Name: "backend", Check: func(context.Context) error { return nil }},
	}, logger.Nop())
	client := newHealthClient(t, h)

	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, client), "not serving before the first probe")

	assert.True(t, h.Probe(context.Background()))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, client))

	storeErr = errors.New("connection refused")
	assert.False(t, h.Probe(context.Background()))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, client))
}

func TestHandler_BackendProbe(t *testing.T) {
	ctrl := gomock.NewController(t)
	pinger := mock.NewMockPinger(ctrl)
	gomock.InOrder(
		pinger.EXPECT().Ping(gomock.Any()).Return(nil),
		pinger.EXPECT().Ping(gomock.Any()).Return(backend.ErrUnavailable),
	)

	h := NewHandler([]Probe{{Name: "backend", Check: pinger.Ping}}, logger.Nop())
	client := newHealthClient(t, h)

	assert.True(t, h.Probe(context.Background()))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, client))

	assert.False(t, h.Probe(context.Background()))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, client))
}

func TestHandler_Watch(t *testing.T) {
	h := NewHandler(nil, logger.Nop())
	client := newHealthClient(t, h)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Watch(ctx, time.Hour) }()

	require.Eventually(t, func() bool {
		return status(t, client) == healthpb.HealthCheckResponse_SERVING
	}, time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, client))
}
