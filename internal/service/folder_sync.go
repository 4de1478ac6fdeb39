// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/MKhiriev/go-eas-sync/internal/logger"
	"github.com/MKhiriev/go-eas-sync/models"
)

// rootFolderID is the parent id of top-level folders.
const rootFolderID = "0"

// FolderSyncer keeps the device's folder hierarchy in line with the
// backend. Devices only ever see short logical folder ids.
type FolderSyncer struct {
	states  *StateManager
	devices DeviceService
	logger  *logger.Logger
}

func NewFolderSyncer(states *StateManager, devices DeviceService, log *logger.Logger) *FolderSyncer {
	return &FolderSyncer{states: states, devices: devices, logger: log}
}

func (f *FolderSyncer) FolderSync(ctx context.Context, req *Request, freq *models.FolderSyncRequest) (*models.FolderSyncResponse, error) {
	ctx, span := tracer.Start(ctx, "FolderSync")
	defer span.End()
	log := logger.FromContext(ctx)
	device := req.Device

	initial := freq.SyncKey == models.SyncKeyInitial
	if initial {
		log.Info().Msg("hierarchy resync, forgetting all collections")
		device.ResetHierarchy()
		if err := f.states.DeleteAllCollections(ctx, req.DeviceKey()); err != nil {
			return nil, fmt.Errorf("error resetting collections: %w", err)
		}
	} else if freq.SyncKey != device.HierarchySyncKey {
		log.Info().Str("sent", freq.SyncKey).Str("current", device.HierarchySyncKey).Msg("invalid hierarchy synckey")
		return &models.FolderSyncResponse{Status: models.FolderSyncStatusInvalidSyncKey}, nil
	}

	backendFolders, err := req.Session.Hierarchy(ctx)
	if err != nil {
		return nil, fmt.Errorf("error reading hierarchy: %w", err)
	}

	resp := &models.FolderSyncResponse{Status: models.FolderSyncStatusSuccess}
	seen := make(map[string]bool, len(backendFolders))
	for _, bf := range parentsFirst(backendFolders) {
		seen[bf.ID] = true
		parentID := rootFolderID
		if parent, ok := device.FolderByBackendID(bf.ParentID); ok {
			parentID = parent.ID
		}

		existing, ok := device.FolderByBackendID(bf.ID)
		if !ok {
			folder := models.Folder{
				ID:        device.AllocateFolderID(),
				BackendID: bf.ID,
				ParentID:  parentID,
				Name:      bf.Name,
				Type:      bf.Type,
			}
			device.Folders[folder.ID] = folder
			resp.Adds = append(resp.Adds, folder)
			continue
		}
		if existing.ParentID == parentID && existing.Name == bf.Name && existing.Type == bf.Type {
			continue
		}
		existing.ParentID, existing.Name, existing.Type = parentID, bf.Name, bf.Type
		device.Folders[existing.ID] = existing
		resp.Updates = append(resp.Updates, existing)
	}

	for _, id := range sortedFolderIDs(device.Folders) {
		folder := device.Folders[id]
		if seen[folder.BackendID] {
			continue
		}
		delete(device.Folders, id)
		resp.Deletes = append(resp.Deletes, id)
		if err = f.states.DeleteCollection(ctx, req.DeviceKey(), id); err != nil {
			return nil, fmt.Errorf("error deleting collection %s: %w", id, err)
		}
	}

	if initial || len(resp.Adds)+len(resp.Updates)+len(resp.Deletes) > 0 {
		counter, _ := models.SyncKeyCounter(device.HierarchySyncKey)
		device.HierarchySyncKey = models.SyncKeyFromCounter(counter + 1)
	}
	resp.SyncKey = device.HierarchySyncKey

	if err = f.devices.Save(ctx, device); err != nil {
		return nil, err
	}
	log.Debug().Int("adds", len(resp.Adds)).Int("updates", len(resp.Updates)).Int("deletes", len(resp.Deletes)).
		Msg("hierarchy synchronized")
	return resp, nil
}

// parentsFirst orders folders so that every folder follows its parent.
// Folders whose parent is unknown to the backend are treated as top-level.
func parentsFirst(folders []models.BackendFolder) []models.BackendFolder {
	known := make(map[string]bool, len(folders))
	for _, f := range folders {
		known[f.ID] = true
	}

	out := make([]models.BackendFolder, 0, len(folders))
	placed := make(map[string]bool, len(folders))
	pending := folders
	for len(pending) > 0 {
		var next []models.BackendFolder
		for _, f := range pending {
			if !known[f.ParentID] || placed[f.ParentID] {
				out = append(out, f)
				placed[f.ID] = true
				continue
			}
			next = append(next, f)
		}
		if len(next) == len(pending) {
			// a parent cycle; emit the rest as they come
			return append(out, next...)
		}
		pending = next
	}
	return out
}

func sortedFolderIDs(folders map[string]models.Folder) []string {
	ids := make([]string, 0, len(folders))
	for id := range folders {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, errA := strconv.Atoi(ids[i])
		b, errB := strconv.Atoi(ids[j])
		if errA != nil || errB != nil {
			return ids[i] < ids[j]
		}
		return a < b
	})
	return ids
}
