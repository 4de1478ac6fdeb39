// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-eas-sync/internal/logger"
	"github.com/MKhiriev/go-eas-sync/internal/mock"
)

var now = time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

func TestJanitor_Sweep(t *testing.T) {
	ctrl := gomock.NewController(t)
	states := mock.NewMockStateStore(ctrl)
	clock := clockwork.NewFakeClockAt(now)
	j := NewJanitor(states, time.Hour, 30*24*time.Hour, clock, logger.Nop())

	states.EXPECT().ListIdleDevices(gomock.Any(), now.Add(-30*24*time.Hour)).Return([]string{"alice/a", "bob/b", "carol/c"}, nil)
	states.EXPECT().DeleteDevice(gomock.Any(), "alice/a").Return(nil)
	states.EXPECT().DeleteDevice(gomock.Any(), "bob/b").Return(errors.New("locked"))
	states.EXPECT().DeleteDevice(gomock.Any(), "carol/c").Return(nil)

	removed, err := j.Sweep(context.Background())
	assert.Equal(t, 2, removed)
	assert.ErrorContains(t, err, "locked")
}

func TestJanitor_Sweep_ListFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	states := mock.NewMockStateStore(ctrl)
	j := NewJanitor(states, time.Hour, time.Hour, clockwork.NewFakeClockAt(now), logger.Nop())

	states.EXPECT().ListIdleDevices(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	removed, err := j.Sweep(context.Background())
	assert.Zero(t, removed)
	assert.Error(t, err)
}

func TestJanitor_Run_SweepsEveryInterval(t *testing.T) {
	ctrl := gomock.NewController(t)
	states := mock.NewMockStateStore(ctrl)
	clock := clockwork.NewFakeClockAt(now)
	j := NewJanitor(states, time.Hour, 24*time.Hour, clock, logger.Nop())

	swept := make(chan struct{}, 2)
	states.EXPECT().ListIdleDevices(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, time.Time) ([]string, error) {
		swept <- struct{}{}
		return nil, nil
	}).Times(2)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- j.Run(ctx) }()

	for range 2 {
		clock.BlockUntil(1)
		clock.Advance(time.Hour)
		<-swept
	}

	cancel()
	require.NoError(t, <-done)
}
