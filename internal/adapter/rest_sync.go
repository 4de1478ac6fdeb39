// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"strconv"

	"github.com/MKhiriev/go-eas-sync/models"
	"github.com/go-resty/resty/v2"
)

type restImporter struct {
	session  *restSession
	folderID string
	state    []byte
	opts     models.ImportOptions
}

func (i *restImporter) Configure(state []byte, opts models.ImportOptions) error {
	i.state = append([]byte(nil), state...)
	i.opts = opts
	return nil
}

func (i *restImporter) request(ctx context.Context) *resty.Request {
	return i.session.authedRequest(ctx).
		SetHeader(headerSyncState, encodeState(i.state)).
		SetHeader(headerConflict, strconv.Itoa(i.opts.Conflict)).
		SetPathParam("folderID", i.folderID)
}

func (i *restImporter) ImportChange(ctx context.Context, serverID string, item models.Item) (string, error) {
	var out importResponse
	req := i.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(item).
		SetResult(&out)

	var (
		resp *resty.Response
		err  error
	)
	if serverID == "" {
		resp, err = req.Post("/api/v1/folders/{folderID}/items")
	} else {
		resp, err = req.SetPathParam("itemID", serverID).Put("/api/v1/folders/{folderID}/items/{itemID}")
	}
	if err != nil {
		return "", mapRequestError("import change", err)
	}
	if err = i.update(resp); err != nil {
		return "", err
	}
	if out.ID == "" {
		out.ID = serverID
	}
	return out.ID, nil
}

func (i *restImporter) ImportDeletion(ctx context.Context, serverID string) error {
	resp, err := i.request(ctx).
		SetPathParam("itemID", serverID).
		SetQueryParam("deletes_as_moves", strconv.FormatBool(i.opts.DeletesAsMoves)).
		Delete("/api/v1/folders/{folderID}/items/{itemID}")
	if err != nil {
		return mapRequestError("import deletion", err)
	}
	return i.update(resp)
}

func (i *restImporter) Acknowledge(ctx context.Context, serverID string) error {
	resp, err := i.request(ctx).
		SetPathParam("itemID", serverID).
		Post("/api/v1/folders/{folderID}/items/{itemID}/ack")
	if err != nil {
		return mapRequestError("acknowledge", err)
	}
	return i.update(resp)
}

func (i *restImporter) State() ([]byte, error) {
	return append([]byte(nil), i.state...), nil
}

// update checks resp and takes over the cursor it returns.
func (i *restImporter) update(resp *resty.Response) error {
	if err := mapHTTPError(resp); err != nil {
		return err
	}
	state, err := decodeState(resp.Header().Get(headerSyncState))
	if err != nil {
		return err
	}
	if state != nil {
		i.state = state
	}
	return nil
}

type restExporter struct {
	session  *restSession
	folderID string
	state    []byte
	opts     models.ExportOptions

	changes []changeDTO
	loaded  bool
	pos     int
}

func (e *restExporter) Configure(state []byte, opts models.ExportOptions) error {
	e.state = append([]byte(nil), state...)
	e.opts = opts
	e.changes = nil
	e.loaded = false
	e.pos = 0
	return nil
}

func (e *restExporter) load(ctx context.Context) error {
	if e.loaded {
		return nil
	}

	var out changesResponse
	resp, err := e.session.authedRequest(ctx).
		SetHeader(headerSyncState, encodeState(e.state)).
		SetPathParam("folderID", e.folderID).
		SetQueryParams(map[string]string{
			"class":      string(e.opts.Class),
			"filter":     strconv.Itoa(e.opts.FilterType),
			"truncation": strconv.Itoa(e.opts.TruncationSize),
		}).
		SetResult(&out).
		Get("/api/v1/folders/{folderID}/changes")
	if err != nil {
		return mapRequestError("changes", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	e.changes = out.Changes
	e.loaded = true
	return nil
}

func (e *restExporter) ChangeCount(ctx context.Context) (int, error) {
	if err := e.load(ctx); err != nil {
		return 0, err
	}
	return len(e.changes) - e.pos, nil
}

func (e *restExporter) Next(ctx context.Context) (models.Change, bool, error) {
	if err := e.load(ctx); err != nil {
		return models.Change{}, false, err
	}
	if e.pos >= len(e.changes) {
		return models.Change{}, false, nil
	}

	dto := e.changes[e.pos]
	kind, ok := changeType(dto.Type)
	if !ok {
		return models.Change{}, false, fmt.Errorf("unknown change type %q for %s", dto.Type, dto.ServerID)
	}
	state, err := decodeState(dto.State)
	if err != nil {
		return models.Change{}, false, err
	}

	e.pos++
	if state != nil {
		e.state = state
	}
	return models.Change{Type: kind, ServerID: dto.ServerID, Item: dto.Item}, true, nil
}

func (e *restExporter) State() ([]byte, error) {
	return append([]byte(nil), e.state...), nil
}
