// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/MKhiriev/go-eas-sync/models"
)

// cachedStateStore is a read-through cache in front of another StateStore.
// Every write goes to the underlying store first; a failed write evicts the
// key so that the next read goes to the store again.
type cachedStateStore struct {
	next  StateStore
	cache *expirable.LRU[string, []byte]
}

// NewCachedStateStore wraps next with an expirable LRU cache of the given
// size and TTL.
func NewCachedStateStore(next StateStore, size int, ttl time.Duration) StateStore {
	return &cachedStateStore{
		next:  next,
		cache: expirable.NewLRU[string, []byte](size, nil, ttl),
	}
}

func (c *cachedStateStore) GetState(ctx context.Context, key models.StateKey) ([]byte, error) {
	if data, ok := c.cache.Get(key.String()); ok {
		return slices.Clone(data), nil
	}

	data, err := c.next.GetState(ctx, key)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key.String(), slices.Clone(data))
	return data, nil
}

func (c *cachedStateStore) SetState(ctx context.Context, key models.StateKey, data []byte) error {
	if err := c.next.SetState(ctx, key, data); err != nil {
		c.cache.Remove(key.String())
		return err
	}
	c.cache.Add(key.String(), slices.Clone(data))
	return nil
}

func (c *cachedStateStore) GetNewestState(ctx context.Context, key models.StateKey) (models.StateKey, []byte, error) {
	return c.next.GetNewestState(ctx, key)
}

func (c *cachedStateStore) CleanStates(ctx context.Context, key models.StateKey) error {
	c.evict(func(k models.StateKey) bool {
		return k.Counter < key.Counter
	}, key.DeviceID, key.Type, key.Key)
	return c.next.CleanStates(ctx, key)
}

func (c *cachedStateStore) DeleteStates(ctx context.Context, deviceID string, stateType models.StateType, key string) error {
	c.evict(func(models.StateKey) bool { return true }, deviceID, stateType, key)
	return c.next.DeleteStates(ctx, deviceID, stateType, key)
}

func (c *cachedStateStore) ListKeys(ctx context.Context, deviceID string, stateType models.StateType) ([]string, error) {
	return c.next.ListKeys(ctx, deviceID, stateType)
}

func (c *cachedStateStore) ListIdleDevices(ctx context.Context, before time.Time) ([]string, error) {
	return c.next.ListIdleDevices(ctx, before)
}

func (c *cachedStateStore) DeleteDevice(ctx context.Context, deviceID string) error {
	prefix := deviceID + "/"
	for _, k := range c.cache.Keys() {
		if strings.HasPrefix(k, prefix) {
			c.cache.Remove(k)
		}
	}
	return c.next.DeleteDevice(ctx, deviceID)
}

func (c *cachedStateStore) evict(match func(models.StateKey) bool, deviceID string, stateType models.StateType, key string) {
	base := models.StateKey{DeviceID: deviceID, Type: stateType, Key: key}
	prefix := deviceID + "/" + string(stateType) + "/" + key + "/"
	for _, k := range c.cache.Keys() {
		rest, ok := strings.CutPrefix(k, prefix)
		if !ok {
			continue
		}
		counter, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			continue
		}
		if match(base.WithCounter(counter)) {
			c.cache.Remove(k)
		}
	}
}
