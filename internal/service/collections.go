// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/go-eas-sync/internal/logger"
	"github.com/MKhiriev/go-eas-sync/internal/store"
	"github.com/MKhiriev/go-eas-sync/internal/utils"
	"github.com/MKhiriev/go-eas-sync/models"
)

// CollectionsOptions are the connection-scoped limits of a registry.
type CollectionsOptions struct {
	StatTTL           time.Duration
	DefaultWindowSize int
	MaxWindowSize     int
	GlobalWindowSize  int
}

// LoadOptions control how persisted collections are brought into a
// registry.
type LoadOptions struct {
	// Overwrite replaces collections already present in the registry.
	Overwrite bool
	// LoadState requires the state blob of the confirmed synckey to exist.
	LoadState bool
	// CheckPermissions requires the folder to resolve against the device
	// hierarchy with an unchanged backend id.
	CheckPermissions bool
	// OnlyConfirmed skips collections without a confirmed synckey or with
	// one pending confirmation.
	OnlyConfirmed bool
	// LazyFailOK skips collections that fail to load instead of failing.
	LazyFailOK bool
}

// CollectionRequest holds what one request asked for one collection.
type CollectionRequest struct {
	GetChanges bool
	WindowSize int
}

type watchToken struct {
	uuid    string
	counter int64
}

// SyncCollections is the registry of the collections handled by one
// request. It owns their SyncParameters for the duration of the request;
// nothing is persisted unless one of the Save methods is called.
type SyncCollections struct {
	states *StateManager
	req    *Request
	clock  clockwork.Clock
	uuids  *utils.UUIDGenerator
	opts   CollectionsOptions

	order       []string
	collections map[string]*models.SyncParameters
	requests    map[string]CollectionRequest
	syncStates  map[string][]byte

	streamed int
	lifetime time.Duration

	changes map[string]int
	tokens  map[string]watchToken
	stale   []string
}

func NewSyncCollections(states *StateManager, req *Request, clock clockwork.Clock, opts CollectionsOptions) *SyncCollections {
	return &SyncCollections{
		states:      states,
		req:         req,
		clock:       clock,
		uuids:       utils.NewUUIDGenerator(),
		opts:        opts,
		collections: make(map[string]*models.SyncParameters),
		requests:    make(map[string]CollectionRequest),
		syncStates:  make(map[string][]byte),
		changes:     make(map[string]int),
		tokens:      make(map[string]watchToken),
	}
}

// LoadAllCollections brings every collection the device ever synchronized
// into the registry.
func (c *SyncCollections) LoadAllCollections(ctx context.Context, opts LoadOptions) error {
	ids, err := c.states.CollectionIDs(ctx, c.req.DeviceKey())
	if err != nil {
		return fmt.Errorf("error listing collections: %w", err)
	}

	log := logger.FromContext(ctx)
	for _, id := range ids {
		if _, ok := c.collections[id]; ok && !opts.Overwrite {
			continue
		}
		p, err := c.load(ctx, id, opts)
		if err != nil {
			if opts.LazyFailOK && !errors.Is(err, store.ErrUnavailable) {
				log.Warn().Err(err).Str("folder_id", id).Msg("skipping collection")
				continue
			}
			return err
		}
		if p == nil {
			continue
		}
		c.put(p)
	}
	return nil
}

// LoadCollection loads one collection into the registry, replacing a
// loaded copy. store.ErrStateNotFound is returned for a folder that was
// never synchronized.
func (c *SyncCollections) LoadCollection(ctx context.Context, folderID string, loadState, checkPermissions bool) (*models.SyncParameters, error) {
	p, err := c.load(ctx, folderID, LoadOptions{LoadState: loadState, CheckPermissions: checkPermissions})
	if err != nil {
		return nil, err
	}
	c.put(p)
	return p, nil
}

func (c *SyncCollections) load(ctx context.Context, folderID string, opts LoadOptions) (*models.SyncParameters, error) {
	p, err := c.states.Parameters(ctx, c.req.DeviceKey(), folderID)
	if err != nil {
		return nil, err
	}
	if opts.OnlyConfirmed && (!p.HasSyncKey() || p.HasNewSyncKey()) {
		return nil, nil
	}

	if opts.CheckPermissions {
		folder, ok := c.req.Device.Folders[folderID]
		if !ok || folder.BackendID != p.BackendFolderID {
			return nil, fmt.Errorf("%w: folder %s", ErrWrongHierarchy, folderID)
		}
	}

	if opts.LoadState && p.HasSyncKey() {
		_, counter, _ := models.ParseSyncKey(p.SyncKey)
		state, err := c.states.SyncState(ctx, c.req.DeviceKey(), folderID, counter)
		if errors.Is(err, store.ErrStateNotFound) {
			return nil, fmt.Errorf("%w: no state for folder %s key %s", ErrInvalidState, folderID, p.SyncKey)
		}
		if err != nil {
			return nil, err
		}
		c.syncStates[folderID] = state
	}
	return p, nil
}

func (c *SyncCollections) put(p *models.SyncParameters) {
	if _, ok := c.collections[p.FolderID]; !ok {
		c.order = append(c.order, p.FolderID)
	}
	c.collections[p.FolderID] = p
}

// AddCollection registers a collection. A folder can be added once.
func (c *SyncCollections) AddCollection(p *models.SyncParameters) error {
	if _, ok := c.collections[p.FolderID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateCollection, p.FolderID)
	}
	c.put(p)
	return nil
}

func (c *SyncCollections) GetCollection(folderID string) (*models.SyncParameters, bool) {
	p, ok := c.collections[folderID]
	return p, ok
}

// Collections returns the collections in the order they were added.
func (c *SyncCollections) Collections() []*models.SyncParameters {
	out := make([]*models.SyncParameters, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.collections[id])
	}
	return out
}

func (c *SyncCollections) Len() int {
	return len(c.order)
}

// LoadedState returns the state blob read by a LoadState load.
func (c *SyncCollections) LoadedState(folderID string) ([]byte, bool) {
	s, ok := c.syncStates[folderID]
	return s, ok
}

func (c *SyncCollections) SetRequest(folderID string, r CollectionRequest) {
	c.requests[folderID] = r
}

func (c *SyncCollections) Request(folderID string) CollectionRequest {
	return c.requests[folderID]
}

// SaveCollection persists one collection. Collections found stale by a
// heartbeat are never saved over the newer copy.
func (c *SyncCollections) SaveCollection(ctx context.Context, folderID string) error {
	p, ok := c.collections[folderID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCollection, folderID)
	}
	if c.isStale(folderID) {
		return nil
	}
	return c.states.SaveParameters(ctx, c.req.DeviceKey(), p)
}

// SaveAllCollections saves every collection, skipping stale ones, and
// reports all failures together.
func (c *SyncCollections) SaveAllCollections(ctx context.Context) error {
	var errs []error
	for _, id := range c.order {
		errs = append(errs, c.SaveCollection(ctx, id))
	}
	return errors.Join(errs...)
}

// ── Windowing ────────────────────────────────────────────────────────────────

// SetLifetime records the heartbeat lifetime of the connection.
func (c *SyncCollections) SetLifetime(d time.Duration) {
	c.lifetime = d
}

func (c *SyncCollections) Lifetime() time.Duration {
	return c.lifetime
}

// SetGlobalWindowSize lowers the global window to n when n is smaller than
// the configured cap.
func (c *SyncCollections) SetGlobalWindowSize(n int) {
	if n > 0 && (c.opts.GlobalWindowSize <= 0 || n < c.opts.GlobalWindowSize) {
		c.opts.GlobalWindowSize = n
	}
}

// RemainingGlobalWindow is the number of changes that may still be
// streamed in this response. It is -1 without a global cap.
func (c *SyncCollections) RemainingGlobalWindow() int {
	if c.opts.GlobalWindowSize <= 0 {
		return -1
	}
	return max(c.opts.GlobalWindowSize-c.streamed, 0)
}

// AddStreamed accounts n streamed changes against the global window.
func (c *SyncCollections) AddStreamed(n int) {
	c.streamed += n
}

// WindowSize is the number of changes folderID may stream now: the
// requested size (or the last one the device sent, or the default), capped
// by the per-folder maximum and the remaining global window.
func (c *SyncCollections) WindowSize(folderID string) int {
	window := c.requests[folderID].WindowSize
	if window <= 0 {
		if p, ok := c.collections[folderID]; ok && p.WindowSize > 0 {
			window = p.WindowSize
		} else {
			window = c.opts.DefaultWindowSize
		}
	}
	if c.opts.MaxWindowSize > 0 {
		window = min(window, c.opts.MaxWindowSize)
	}
	if remaining := c.RemainingGlobalWindow(); remaining >= 0 {
		window = min(window, remaining)
	}
	return max(window, 0)
}
