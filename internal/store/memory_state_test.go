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

func TestMemoryStateStore_Contract(t *testing.T) {
	testStateStoreContract(t, NewMemoryStateStore())
}

func TestMemoryStateStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	states := NewMemoryStateStore()
	key := models.StateKey{DeviceID: "d", Type: models.StateTypeCollection, Key: "1"}

	in := []byte("abc")
	require.NoError(t, states.SetState(ctx, key, in))
	in[0] = 'X'

	out, err := states.GetState(ctx, key)
	require.NoError(t, err)
	out[1] = 'Y'

	again, err := states.GetState(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestCachedStateStore_Contract(t *testing.T) {
	testStateStoreContract(t, NewCachedStateStore(NewMemoryStateStore(), 64, time.Minute))
}

func TestCachedStateStore_ReadYourWrites(t *testing.T) {
	ctx := context.Background()
	backing := NewMemoryStateStore()
	cached := NewCachedStateStore(backing, 64, time.Minute)
	key := models.StateKey{DeviceID: "d", Type: models.StateTypeSync, Key: "1", Counter: 1}

	require.NoError(t, cached.SetState(ctx, key, []byte("v1")))
	_, err := cached.GetState(ctx, key)
	require.NoError(t, err)

	require.NoError(t, cached.SetState(ctx, key, []byte("v2")))
	data, err := cached.GetState(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), data)

	// a clean must not leave stale entries behind
	require.NoError(t, cached.CleanStates(ctx, key.WithCounter(2)))
	_, err = cached.GetState(ctx, key)
	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestCachedStateStore_ServesFromCache(t *testing.T) {
	ctx := context.Background()
	backing := NewMemoryStateStore()
	cached := NewCachedStateStore(backing, 64, time.Minute)
	key := models.StateKey{DeviceID: "d", Type: models.StateTypeDevice}

	require.NoError(t, cached.SetState(ctx, key, []byte("dev")))
	// bypass the cache to prove the next read does not hit the backing store
	require.NoError(t, backing.DeleteDevice(ctx, "d"))

	data, err := cached.GetState(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("dev"), data)
}
