// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package backend

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-eas-sync/models"
)

type memorySession struct {
	backend *MemoryBackend
	user    string
}

func (s *memorySession) User() string {
	return s.user
}

func (s *memorySession) Hierarchy(ctx context.Context) ([]models.BackendFolder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.backend.mu.RLock()
	defer s.backend.mu.RUnlock()

	u, err := s.backend.user(s.user)
	if err != nil {
		return nil, err
	}
	folders := make([]models.BackendFolder, 0, len(u.order))
	for _, id := range u.order {
		folders = append(folders, u.folders[id].folder)
	}
	return folders, nil
}

func (s *memorySession) FolderStat(ctx context.Context, folderID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.backend.mu.RLock()
	defer s.backend.mu.RUnlock()

	_, f, err := s.backend.folder(s.user, folderID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d/%d", f.version, len(f.items)), nil
}

func (s *memorySession) Fetch(ctx context.Context, folderID, itemID string) (models.Item, error) {
	if err := ctx.Err(); err != nil {
		return models.Item{}, err
	}

	s.backend.mu.RLock()
	defer s.backend.mu.RUnlock()

	_, f, err := s.backend.folder(s.user, folderID)
	if err != nil {
		return models.Item{}, err
	}
	it, ok := f.items[itemID]
	if !ok {
		return models.Item{}, fmt.Errorf("%w: item %s", ErrNotFound, itemID)
	}
	return it.item, nil
}

func (s *memorySession) Importer(ctx context.Context, folderID string) (Importer, error) {
	if err := s.exists(ctx, folderID); err != nil {
		return nil, err
	}
	return &memoryImporter{backend: s.backend, user: s.user, folderID: folderID, state: newSyncState()}, nil
}

func (s *memorySession) Exporter(ctx context.Context, folderID string) (Exporter, error) {
	if err := s.exists(ctx, folderID); err != nil {
		return nil, err
	}
	return &memoryExporter{backend: s.backend, user: s.user, folderID: folderID, state: newSyncState()}, nil
}

func (s *memorySession) ChangesSink() (ChangesSink, bool) {
	return newMemorySink(s.backend, s.user), true
}

func (s *memorySession) exists(ctx context.Context, folderID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.backend.mu.RLock()
	defer s.backend.mu.RUnlock()

	_, _, err := s.backend.folder(s.user, folderID)
	return err
}
