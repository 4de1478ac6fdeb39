// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-eas-sync/models"
)

// testStateStoreContract runs the behaviour every StateStore implementation
// must share.
func testStateStoreContract(t *testing.T, states StateStore) {
	t.Helper()
	ctx := context.Background()
	key := models.StateKey{DeviceID: "dev1", Type: models.StateTypeSync, Key: "7"}

	// round trip is byte identical
	for counter := int64(1); counter <= 5; counter++ {
		require.NoError(t, states.SetState(ctx, key.WithCounter(counter), []byte{byte(counter), 0x00, 0xFF}))
	}
	data, err := states.GetState(ctx, key.WithCounter(3))
	require.NoError(t, err)
	assert.Equal(t, []byte{3, 0x00, 0xFF}, data)

	// overwrite keeps other counters
	require.NoError(t, states.SetState(ctx, key.WithCounter(3), []byte("three")))
	data, err = states.GetState(ctx, key.WithCounter(3))
	require.NoError(t, err)
	assert.Equal(t, []byte("three"), data)

	// newest strictly below
	newest, data, err := states.GetNewestState(ctx, key.WithCounter(5))
	require.NoError(t, err)
	assert.Equal(t, int64(4), newest.Counter)
	assert.Equal(t, []byte{4, 0x00, 0xFF}, data)

	_, _, err = states.GetNewestState(ctx, key.WithCounter(1))
	assert.ErrorIs(t, err, ErrStateNotFound)

	// clean removes everything below and keeps the active counter
	require.NoError(t, states.CleanStates(ctx, key.WithCounter(4)))
	for counter := int64(1); counter < 4; counter++ {
		_, err = states.GetState(ctx, key.WithCounter(counter))
		assert.ErrorIs(t, err, ErrStateNotFound, "counter %d", counter)
	}
	for counter := int64(4); counter <= 5; counter++ {
		_, err = states.GetState(ctx, key.WithCounter(counter))
		assert.NoError(t, err, "counter %d", counter)
	}

	// keys
	require.NoError(t, states.SetState(ctx, models.StateKey{DeviceID: "dev1", Type: models.StateTypeSync, Key: "2"}, []byte("x")))
	keys, err := states.ListKeys(ctx, "dev1", models.StateTypeSync)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "7"}, keys)

	require.NoError(t, states.DeleteStates(ctx, "dev1", models.StateTypeSync, "7"))
	keys, err = states.ListKeys(ctx, "dev1", models.StateTypeSync)
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, keys)

	// device records and idle detection
	require.NoError(t, states.SetState(ctx, models.StateKey{DeviceID: "dev1", Type: models.StateTypeDevice}, []byte("{}")))
	idle, err := states.ListIdleDevices(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Contains(t, idle, "dev1")
	idle, err = states.ListIdleDevices(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.NotContains(t, idle, "dev1")

	require.NoError(t, states.DeleteDevice(ctx, "dev1"))
	_, err = states.GetState(ctx, models.StateKey{DeviceID: "dev1", Type: models.StateTypeSync, Key: "2"})
	assert.ErrorIs(t, err, ErrStateNotFound)
}
