// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-eas-sync/internal/backend"
	"github.com/MKhiriev/go-eas-sync/internal/config"
	"github.com/MKhiriev/go-eas-sync/internal/logger"
	"github.com/MKhiriev/go-eas-sync/internal/utils"
	"github.com/MKhiriev/go-eas-sync/models"
	"github.com/go-resty/resty/v2"
)

// KindREST names the HTTP backend.
const KindREST = "rest"

const (
	headerSyncState = "X-Sync-State"
	headerConflict  = "X-Conflict"
	headerTraceID   = "X-Trace-ID"
)

// RESTBackend is a backend.Backend speaking JSON over HTTP.
type RESTBackend struct {
	client *resty.Client
	logger *logger.Logger
}

// NewRESTBackend returns a backend calling the API at cfg.URL.
func NewRESTBackend(cfg config.Backend, log *logger.Logger) (*RESTBackend, error) {
	baseURL, err := normalizeBaseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	cli := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		OnBeforeRequest(decodeAsJSON).
		OnBeforeRequest(propagateTraceID)

	return &RESTBackend{client: cli, logger: log}, nil
}

// decodeAsJSON makes resty decode results as JSON whatever Content-Type the
// groupware API answers with.
func decodeAsJSON(_ *resty.Client, req *resty.Request) error {
	req.ForceContentType("application/json")
	return nil
}

// propagateTraceID forwards the trace id of the ActiveSync request so both
// sides of a call can be matched in the logs.
func propagateTraceID(_ *resty.Client, req *resty.Request) error {
	if traceID, ok := utils.GetTraceIDFromContext(req.Context()); ok {
		req.SetHeader(headerTraceID, traceID)
	}
	return nil
}

func (b *RESTBackend) Name() string {
	return KindREST
}

// Ping checks that the groupware API answers.
func (b *RESTBackend) Ping(ctx context.Context) error {
	resp, err := b.client.R().SetContext(ctx).Get("/api/v1/health")
	if err != nil {
		return mapRequestError("health", err)
	}
	return mapHTTPError(resp)
}

func (b *RESTBackend) Logon(ctx context.Context, user, password string) (backend.Session, error) {
	var out logonResponse
	resp, err := b.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(logonRequest{User: user, Password: password}).
		SetResult(&out).
		Post("/api/v1/logon")
	if err != nil {
		return nil, mapRequestError("logon", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.Token) == "" {
		return nil, fmt.Errorf("%w: empty session token", backend.ErrAuthFailed)
	}

	return &restSession{client: b.client, user: user, token: out.Token, logger: b.logger}, nil
}

type restSession struct {
	client *resty.Client
	user   string
	token  string
	logger *logger.Logger
}

func (s *restSession) User() string {
	return s.user
}

func (s *restSession) authedRequest(ctx context.Context) *resty.Request {
	return s.client.R().
		SetContext(ctx).
		SetAuthToken(s.token)
}

func (s *restSession) Hierarchy(ctx context.Context) ([]models.BackendFolder, error) {
	var folders []models.BackendFolder
	resp, err := s.authedRequest(ctx).
		SetResult(&folders).
		Get("/api/v1/folders")
	if err != nil {
		return nil, mapRequestError("hierarchy", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}
	return folders, nil
}

func (s *restSession) FolderStat(ctx context.Context, folderID string) (string, error) {
	var out statResponse
	resp, err := s.authedRequest(ctx).
		SetPathParam("folderID", folderID).
		SetResult(&out).
		Get("/api/v1/folders/{folderID}/stat")
	if err != nil {
		return "", mapRequestError("folder stat", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	return out.Stat, nil
}

func (s *restSession) Fetch(ctx context.Context, folderID, itemID string) (models.Item, error) {
	var item models.Item
	resp, err := s.authedRequest(ctx).
		SetPathParams(map[string]string{"folderID": folderID, "itemID": itemID}).
		SetResult(&item).
		Get("/api/v1/folders/{folderID}/items/{itemID}")
	if err != nil {
		return models.Item{}, mapRequestError("fetch", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Item{}, err
	}
	return item, nil
}

func (s *restSession) Importer(_ context.Context, folderID string) (backend.Importer, error) {
	return &restImporter{session: s, folderID: folderID}, nil
}

func (s *restSession) Exporter(_ context.Context, folderID string) (backend.Exporter, error) {
	return &restExporter{session: s, folderID: folderID}, nil
}

// ChangesSink is not offered; the engine polls FolderStat instead.
func (s *restSession) ChangesSink() (backend.ChangesSink, bool) {
	return nil, false
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("empty backend url")
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid backend url %q", raw)
	}
	return strings.TrimRight(u.String(), "/"), nil
}

func encodeState(state []byte) string {
	return base64.StdEncoding.EncodeToString(state)
}

func decodeState(header string) ([]byte, error) {
	if header == "" {
		return nil, nil
	}
	state, err := base64.StdEncoding.DecodeString(header)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", backend.ErrStateCorrupt, err)
	}
	return state, nil
}
