// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-eas-sync/internal/backend"
	"github.com/MKhiriev/go-eas-sync/internal/logger"
	"github.com/MKhiriev/go-eas-sync/internal/metrics"
	"github.com/MKhiriev/go-eas-sync/models"
)

// importStatus maps the outcome of one imported command to its status.
// Only errors that concern the single item are mapped; anything else is
// returned and aborts the request.
func importStatus(err error) (int, error) {
	switch {
	case err == nil:
		return models.SyncStatusSuccess, nil
	case errors.Is(err, backend.ErrNotFound):
		return models.SyncStatusObjectNotFound, nil
	case errors.Is(err, backend.ErrConflict):
		return models.SyncStatusConflict, nil
	}
	return 0, err
}

// importChanges applies the commands of one collection. Adds and deletes
// already applied by an earlier attempt with the same synckey are
// replayed from the failstate instead of being applied twice.
func (e *SyncEngine) importChanges(ctx context.Context, req *Request, cy *syncCycle, budget *Budget) error {
	p := cy.params
	log := logger.FromContext(ctx).With().Str("folder_id", p.FolderID).Logger()
	ctx, span := tracer.Start(ctx, "Sync.import")
	defer span.End()

	imp, err := req.Session.Importer(ctx, p.BackendFolderID)
	if err != nil {
		return fmt.Errorf("error opening importer for %s: %w", p.FolderID, err)
	}
	err = imp.Configure(cy.state, models.ImportOptions{Conflict: p.Conflict, DeletesAsMoves: p.DeletesAsMoves})
	if errors.Is(err, backend.ErrStateCorrupt) {
		log.Warn().Err(err).Msg("importer rejected the sync state")
		return e.invalidate(ctx, req, cy)
	}
	if err != nil {
		return fmt.Errorf("error configuring importer for %s: %w", p.FolderID, err)
	}

	ad := cy.actions
	for _, cmd := range cy.request.Commands {
		if reason, over := budget.Exceeded(); over {
			log.Warn().Str("reason", reason).Msg("import budget exhausted")
			metrics.ReportMoreAvailable(reason)
			cy.more = true
			break
		}

		var result models.CommandResult
		switch cmd.Type {
		case models.CommandAdd:
			result, err = e.importAdd(ctx, imp, ad, cmd, p.ContentClass)
		case models.CommandChange:
			result, err = e.importModify(ctx, imp, ad, cmd, p.ContentClass)
		case models.CommandDelete:
			result, err = e.importDelete(ctx, imp, ad, cmd)
		case models.CommandFetch:
			result, err = e.fetch(ctx, req, ad, cmd, p.BackendFolderID)
		default:
			continue
		}
		if err != nil {
			return fmt.Errorf("error importing %s in %s: %w", cmd.Type, p.FolderID, err)
		}
		metrics.ReportImported(cmd.Type.String(), result.Status)

		// successful changes are not echoed back
		if cmd.Type == models.CommandChange && result.Status == models.SyncStatusSuccess {
			continue
		}
		cy.results = append(cy.results, result)
	}

	cy.state, err = imp.State()
	if err != nil {
		return fmt.Errorf("error reading importer state of %s: %w", p.FolderID, err)
	}
	return nil
}

func (e *SyncEngine) importAdd(ctx context.Context, imp backend.Importer, ad *models.ActionData, cmd models.ClientCommand, class models.ContentClass) (models.CommandResult, error) {
	result := models.CommandResult{Type: models.CommandAdd, ClientID: cmd.ClientID}

	if prev, ok := ad.ReplayAdd(cmd.ClientID); ok {
		logger.FromContext(ctx).Info().Str("client_id", cmd.ClientID).Str("server_id", prev.ServerID).
			Msg("replaying add of an earlier attempt")
		if err := imp.Acknowledge(ctx, prev.ServerID); err != nil && !errors.Is(err, backend.ErrNotFound) {
			return result, err
		}
		ad.Adds[cmd.ClientID] = prev
		result.ServerID, result.Status = prev.ServerID, prev.Status
		return result, nil
	}

	item := cmd.Item
	if item.Class == "" {
		item.Class = class
	}
	id, err := imp.ImportChange(ctx, "", item)
	status, err := importStatus(err)
	if err != nil {
		return result, err
	}
	ad.Adds[cmd.ClientID] = models.ActionResult{ServerID: id, Status: status}
	result.ServerID, result.Status = id, status
	return result, nil
}

func (e *SyncEngine) importModify(ctx context.Context, imp backend.Importer, ad *models.ActionData, cmd models.ClientCommand, class models.ContentClass) (models.CommandResult, error) {
	item := cmd.Item
	if item.Class == "" {
		item.Class = class
	}
	_, err := imp.ImportChange(ctx, cmd.ServerID, item)
	status, err := importStatus(err)
	if err != nil {
		return models.CommandResult{}, err
	}
	ad.Modifies[cmd.ServerID] = status
	return models.CommandResult{Type: models.CommandChange, ServerID: cmd.ServerID, Status: status}, nil
}

func (e *SyncEngine) importDelete(ctx context.Context, imp backend.Importer, ad *models.ActionData, cmd models.ClientCommand) (models.CommandResult, error) {
	result := models.CommandResult{Type: models.CommandDelete, ServerID: cmd.ServerID}

	if status, ok := ad.ReplayRemove(cmd.ServerID); ok {
		if err := imp.Acknowledge(ctx, cmd.ServerID); err != nil && !errors.Is(err, backend.ErrNotFound) {
			return result, err
		}
		ad.Removes[cmd.ServerID] = status
		result.Status = status
		return result, nil
	}

	status, err := importStatus(imp.ImportDeletion(ctx, cmd.ServerID))
	if err != nil {
		return result, err
	}
	ad.Removes[cmd.ServerID] = status
	result.Status = status
	return result, nil
}

func (e *SyncEngine) fetch(ctx context.Context, req *Request, ad *models.ActionData, cmd models.ClientCommand, backendFolderID string) (models.CommandResult, error) {
	result := models.CommandResult{Type: models.CommandFetch, ServerID: cmd.ServerID}
	item, err := req.Session.Fetch(ctx, backendFolderID, cmd.ServerID)
	status, err := importStatus(err)
	if err != nil {
		return result, err
	}
	ad.Fetches[cmd.ServerID] = status
	result.Status = status
	if status == models.SyncStatusSuccess {
		result.Item = &item
	}
	return result, nil
}
