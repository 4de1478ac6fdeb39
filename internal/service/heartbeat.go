// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/MKhiriev/go-eas-sync/internal/config"
	"github.com/MKhiriev/go-eas-sync/internal/logger"
	"github.com/MKhiriev/go-eas-sync/internal/metrics"
	"github.com/MKhiriev/go-eas-sync/internal/store"
	"github.com/MKhiriev/go-eas-sync/models"
)

// Heartbeat runs the Ping command: it holds the request open until one of
// the watched folders changes or the heartbeat interval ends.
type Heartbeat struct {
	states   *StateManager
	devices  DeviceService
	clock    clockwork.Clock
	cfg      config.Ping
	sync     config.Sync
	excluded map[models.FolderType]bool
	ignored  map[models.ContentClass]bool
	logger   *logger.Logger
}

func NewHeartbeat(states *StateManager, devices DeviceService, clock clockwork.Clock, cfg config.Ping, sync config.Sync, log *logger.Logger) *Heartbeat {
	excluded := make(map[models.FolderType]bool, len(cfg.ExcludedFolderTypes))
	for _, t := range cfg.ExcludedFolderTypes {
		excluded[models.FolderType(t)] = true
	}
	return &Heartbeat{
		states:   states,
		devices:  devices,
		clock:    clock,
		cfg:      cfg,
		sync:     sync,
		excluded: excluded,
		ignored:  ignoredClasses(sync.IgnoredClasses),
		logger:   log,
	}
}

func (h *Heartbeat) Ping(ctx context.Context, req *Request, preq *models.PingRequest) (*models.PingResponse, error) {
	ctx, span := tracer.Start(ctx, "Ping", trace.WithAttributes(
		attribute.Int("eas.folders", len(preq.Folders)),
		attribute.Int("eas.heartbeat_interval", preq.HeartbeatInterval),
	))
	defer span.End()
	done := metrics.HeartbeatStarted()
	defer done()

	resp, err := h.ping(ctx, req, preq)
	if err != nil {
		return nil, err
	}
	metrics.ReportPing(pingResult(resp.Status))
	return resp, nil
}

func pingResult(status int) string {
	switch status {
	case models.PingStatusExpired:
		return "expired"
	case models.PingStatusChanges:
		return "changes"
	case models.PingStatusInvalidInterval:
		return "invalid_interval"
	case models.PingStatusTooManyFolders:
		return "too_many_folders"
	case models.PingStatusMissingParameters:
		return "missing_parameters"
	}
	return "other"
}

func (h *Heartbeat) ping(ctx context.Context, req *Request, preq *models.PingRequest) (*models.PingResponse, error) {
	log := logger.FromContext(ctx)
	device := req.Device

	interval := preq.HeartbeatInterval
	if interval == 0 {
		interval = device.HeartbeatInterval
	}
	if interval == 0 {
		return &models.PingResponse{Status: models.PingStatusMissingParameters}, nil
	}
	lifetime := time.Duration(interval) * time.Second
	if h.cfg.MinLifetime > 0 && lifetime < h.cfg.MinLifetime {
		limit := int((h.cfg.MinLifetime + time.Second - 1) / time.Second)
		return &models.PingResponse{Status: models.PingStatusInvalidInterval, HeartbeatInterval: limit}, nil
	}
	if h.cfg.MaxLifetime > 0 && lifetime > h.cfg.MaxLifetime {
		return &models.PingResponse{Status: models.PingStatusInvalidInterval, HeartbeatInterval: int(h.cfg.MaxLifetime / time.Second)}, nil
	}
	if h.cfg.MaxFolders > 0 && len(preq.Folders) > h.cfg.MaxFolders {
		return &models.PingResponse{Status: models.PingStatusTooManyFolders, MaxFolders: h.cfg.MaxFolders}, nil
	}

	ids, err := h.markPingable(ctx, req, preq.Folders)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 && len(preq.Folders) == 0 {
		log.Info().Msg("ping repeats nothing, no folder was pinged before")
		return &models.PingResponse{Status: models.PingStatusMissingParameters}, nil
	}

	coll := NewSyncCollections(h.states, req, h.clock, CollectionsOptions{StatTTL: h.sync.FolderStatTTL})
	coll.SetLifetime(lifetime)
	var forced []string
	for _, id := range ids {
		folder, ok := device.Folders[id]
		if !ok {
			forced = append(forced, id)
			continue
		}
		if h.excluded[folder.Type] || h.ignored[folder.Type.Class()] {
			continue
		}
		p, err := coll.LoadCollection(ctx, id, true, true)
		switch {
		case errors.Is(err, store.ErrStateNotFound), errors.Is(err, ErrInvalidState), errors.Is(err, ErrWrongHierarchy):
			log.Info().Err(err).Str("folder_id", id).Msg("pinged folder needs a sync first")
			forced = append(forced, id)
			continue
		case err != nil:
			return nil, err
		}
		if !p.HasSyncKey() {
			forced = append(forced, id)
		}
	}

	device.HeartbeatInterval = interval
	if err = h.devices.Save(ctx, device); err != nil {
		return nil, err
	}
	if len(forced) > 0 {
		return &models.PingResponse{Status: models.PingStatusChanges, Folders: forced}, nil
	}

	if err = coll.Watch(ctx); err != nil {
		return nil, err
	}
	changed, err := coll.CheckForChanges(ctx, lifetime, h.cfg.PollInterval, true)
	switch {
	case errors.Is(err, ErrObsoleteConnection):
		log.Info().Msg("change notifications ended, ending heartbeat")
		return &models.PingResponse{Status: models.PingStatusExpired}, nil
	case errors.Is(err, ErrStaleCollections):
		stale, err := coll.StaleCollections(ctx)
		if err != nil {
			return nil, err
		}
		// Another request took over these folders. Reporting them as changed
		// sends the device into a Sync that reads the newer state.
		return &models.PingResponse{Status: models.PingStatusChanges, Folders: stale}, nil
	case err != nil:
		return nil, err
	}
	if !changed {
		return &models.PingResponse{Status: models.PingStatusExpired}, nil
	}

	resp := &models.PingResponse{Status: models.PingStatusChanges}
	counts := coll.GetChangedFolderIDs()
	for _, p := range coll.Collections() {
		if counts[p.FolderID] > 0 {
			resp.Folders = append(resp.Folders, p.FolderID)
		}
	}
	return resp, nil
}

// markPingable records which folders the device watches and returns them.
// Without folders in the request, the folders watched last time are
// returned instead.
func (h *Heartbeat) markPingable(ctx context.Context, req *Request, folders []models.PingFolder) ([]string, error) {
	all := NewSyncCollections(h.states, req, h.clock, CollectionsOptions{})
	if err := all.LoadAllCollections(ctx, LoadOptions{LazyFailOK: true}); err != nil {
		return nil, err
	}

	if len(folders) == 0 {
		var ids []string
		for _, p := range all.Collections() {
			if p.Pingable {
				ids = append(ids, p.FolderID)
			}
		}
		return ids, nil
	}

	requested := make(map[string]bool, len(folders))
	ids := make([]string, 0, len(folders))
	for _, f := range folders {
		if !requested[f.ID] {
			requested[f.ID] = true
			ids = append(ids, f.ID)
		}
	}
	for _, p := range all.Collections() {
		if p.Pingable == requested[p.FolderID] {
			continue
		}
		p.Pingable = requested[p.FolderID]
		if err := all.SaveCollection(ctx, p.FolderID); err != nil {
			return nil, err
		}
	}
	return ids, nil
}
