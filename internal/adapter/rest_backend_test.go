// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-eas-sync/internal/backend"
	"github.com/MKhiriev/go-eas-sync/internal/config"
	"github.com/MKhiriev/go-eas-sync/internal/logger"
	"github.com/MKhiriev/go-eas-sync/internal/utils"
	"github.com/MKhiriev/go-eas-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "session-token"

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

// newTestSession logs in against a server whose other routes are served by
// mux.
func newTestSession(t *testing.T, mux *http.ServeMux) backend.Session {
	t.Helper()
	mux.HandleFunc("POST /api/v1/logon", func(w http.ResponseWriter, r *http.Request) {
		var req logonRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(logonResponse{Token: testToken})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	b, err := NewRESTBackend(config.Backend{URL: srv.URL, Timeout: 5 * time.Second}, logger.Nop())
	require.NoError(t, err)

	sess, err := b.Logon(context.Background(), "alice", "secret")
	require.NoError(t, err)
	return sess
}

func requireToken(t *testing.T, r *http.Request) {
	t.Helper()
	assert.Equal(t, "Bearer "+testToken, r.Header.Get("Authorization"))
}

// ── Logon ────────────────────────────────────────────────────────────────────

func TestRESTBackend_Logon_Failed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("bad credentials"))
	}))
	defer srv.Close()

	b, err := NewRESTBackend(config.Backend{URL: srv.URL}, logger.Nop())
	require.NoError(t, err)

	_, err = b.Logon(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, backend.ErrAuthFailed)
}

func TestRESTBackend_Logon_DecodesBodyWithoutJSONContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(`{"token":"` + testToken + `"}`))
	}))
	defer srv.Close()

	b, err := NewRESTBackend(config.Backend{URL: srv.URL}, logger.Nop())
	require.NoError(t, err)

	sess, err := b.Logon(context.Background(), "alice", "secret")
	require.NoError(t, err)
	assert.NotNil(t, sess)
}

func TestRESTBackend_Logon_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	b, err := NewRESTBackend(config.Backend{URL: url, Timeout: time.Second}, logger.Nop())
	require.NoError(t, err)

	_, err = b.Logon(context.Background(), "alice", "secret")
	assert.ErrorIs(t, err, backend.ErrUnavailable)
}

func TestRESTBackend_Ping(t *testing.T) {
	healthy := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/health", r.URL.Path)
		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	defer srv.Close()

	b, err := NewRESTBackend(config.Backend{URL: srv.URL}, logger.Nop())
	require.NoError(t, err)
	var _ backend.Pinger = b

	assert.NoError(t, b.Ping(context.Background()))
	healthy = false
	assert.ErrorIs(t, b.Ping(context.Background()), backend.ErrUnavailable)
}

func TestRESTBackend_PropagatesTraceID(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Trace-ID")
	}))
	defer srv.Close()

	b, err := NewRESTBackend(config.Backend{URL: srv.URL}, logger.Nop())
	require.NoError(t, err)

	ctx := context.WithValue(context.Background(), utils.TraceIDCtxKey, "trace-42")
	require.NoError(t, b.Ping(ctx))
	assert.Equal(t, "trace-42", got)

	require.NoError(t, b.Ping(context.Background()))
	assert.Empty(t, got)
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "http://groupware:8080/", want: "http://groupware:8080"},
		{raw: "groupware:8080", want: "http://groupware:8080"},
		{raw: "  https://gw.example.com/base/ ", want: "https://gw.example.com/base"},
		{raw: "", wantErr: true},
		{raw: "http://", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ── Session ──────────────────────────────────────────────────────────────────

func TestRESTSession_HierarchyAndStat(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/folders", func(w http.ResponseWriter, r *http.Request) {
		requireToken(t, r)
		_ = json.NewEncoder(w).Encode([]models.BackendFolder{{ID: "inbox", Name: "Inbox", Type: models.FolderTypeInbox}})
	})
	mux.HandleFunc("GET /api/v1/folders/{id}/stat", func(w http.ResponseWriter, r *http.Request) {
		requireToken(t, r)
		if r.PathValue("id") != "inbox" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(statResponse{Stat: "42/7"})
	})
	sess := newTestSession(t, mux)
	ctx := context.Background()

	folders, err := sess.Hierarchy(ctx)
	require.NoError(t, err)
	require.Len(t, folders, 1)
	assert.Equal(t, models.FolderTypeInbox, folders[0].Type)

	stat, err := sess.FolderStat(ctx, "inbox")
	require.NoError(t, err)
	assert.Equal(t, "42/7", stat)

	_, err = sess.FolderStat(ctx, "missing")
	assert.ErrorIs(t, err, backend.ErrNotFound)

	_, ok := sess.ChangesSink()
	assert.False(t, ok)
}

func TestRESTSession_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "forbidden", status: http.StatusForbidden, want: backend.ErrAuthFailed},
		{name: "conflict", status: http.StatusConflict, want: backend.ErrConflict},
		{name: "bad state", status: http.StatusUnprocessableEntity, want: backend.ErrStateCorrupt},
		{name: "throttled", status: http.StatusTooManyRequests, want: backend.ErrUnavailable},
		{name: "down", status: http.StatusServiceUnavailable, want: backend.ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("GET /api/v1/folders/{id}/items/{item}", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			sess := newTestSession(t, mux)

			_, err := sess.Fetch(context.Background(), "inbox", "m1")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRESTSession_UnmappedStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/folders/{id}/items/{item}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	sess := newTestSession(t, mux)

	_, err := sess.Fetch(context.Background(), "inbox", "m1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 418")
}

// ── Importer ─────────────────────────────────────────────────────────────────

func TestRESTImporter_CarriesState(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/folders/{id}/items", func(w http.ResponseWriter, r *http.Request) {
		requireToken(t, r)
		assert.Equal(t, b64("cursor-1"), r.Header.Get(headerSyncState))
		assert.Equal(t, "1", r.Header.Get(headerConflict))

		var item models.Item
		require.NoError(t, json.NewDecoder(r.Body).Decode(&item))
		assert.Equal(t, models.ClassEmail, item.Class)

		w.Header().Set(headerSyncState, b64("cursor-2"))
		_ = json.NewEncoder(w).Encode(importResponse{ID: "new-id"})
	})
	mux.HandleFunc("DELETE /api/v1/folders/{id}/items/{item}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, b64("cursor-2"), r.Header.Get(headerSyncState))
		assert.Equal(t, "true", r.URL.Query().Get("deletes_as_moves"))
		assert.Equal(t, "m9", r.PathValue("item"))
		w.Header().Set(headerSyncState, b64("cursor-3"))
	})
	mux.HandleFunc("POST /api/v1/folders/{id}/items/{item}/ack", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, b64("cursor-3"), r.Header.Get(headerSyncState))
		w.WriteHeader(http.StatusNoContent)
	})
	sess := newTestSession(t, mux)
	ctx := context.Background()

	imp, err := sess.Importer(ctx, "inbox")
	require.NoError(t, err)
	require.NoError(t, imp.Configure([]byte("cursor-1"), models.ImportOptions{Conflict: models.ConflictServerWins, DeletesAsMoves: true}))

	id, err := imp.ImportChange(ctx, "", models.Item{Class: models.ClassEmail})
	require.NoError(t, err)
	assert.Equal(t, "new-id", id)

	require.NoError(t, imp.ImportDeletion(ctx, "m9"))
	require.NoError(t, imp.Acknowledge(ctx, "m1"))

	state, err := imp.State()
	require.NoError(t, err)
	assert.Equal(t, []byte("cursor-3"), state, "a response without a cursor keeps the last one")
}

func TestRESTImporter_Conflict(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/v1/folders/{id}/items/{item}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})
	sess := newTestSession(t, mux)

	imp, err := sess.Importer(context.Background(), "inbox")
	require.NoError(t, err)
	require.NoError(t, imp.Configure(nil, models.ImportOptions{}))

	_, err = imp.ImportChange(context.Background(), "m1", models.Item{})
	assert.ErrorIs(t, err, backend.ErrConflict)
}

// ── Exporter ─────────────────────────────────────────────────────────────────

func TestRESTExporter_PerChangeCursor(t *testing.T) {
	calls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/folders/{id}/changes", func(w http.ResponseWriter, r *http.Request) {
		calls++
		requireToken(t, r)
		assert.Equal(t, b64("c0"), r.Header.Get(headerSyncState))
		assert.Equal(t, "Email", r.URL.Query().Get("class"))
		assert.Equal(t, "3", r.URL.Query().Get("filter"))
		_ = json.NewEncoder(w).Encode(changesResponse{Changes: []changeDTO{
			{Type: "add", ServerID: "a", State: b64("c1")},
			{Type: "delete", ServerID: "b", State: b64("c2")},
			{Type: "modify", ServerID: "c", State: b64("c3")},
		}})
	})
	sess := newTestSession(t, mux)
	ctx := context.Background()

	exp, err := sess.Exporter(ctx, "inbox")
	require.NoError(t, err)
	require.NoError(t, exp.Configure([]byte("c0"), models.ExportOptions{Class: models.ClassEmail, FilterType: models.FilterOneWeek}))

	n, err := exp.ChangeCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	c, ok, err := exp.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.Change{Type: models.ChangeAdd, ServerID: "a"}, c)

	c, ok, err = exp.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.ChangeDelete, c.Type)

	state, err := exp.State()
	require.NoError(t, err)
	assert.Equal(t, []byte("c2"), state, "state covers only what was streamed")

	n, err = exp.ChangeCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, calls)
}

func TestRESTExporter_UnknownChangeType(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/folders/{id}/changes", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(changesResponse{Changes: []changeDTO{{Type: "teleport", ServerID: "x"}}})
	})
	sess := newTestSession(t, mux)

	exp, err := sess.Exporter(context.Background(), "inbox")
	require.NoError(t, err)
	require.NoError(t, exp.Configure(nil, models.ExportOptions{}))

	_, _, err = exp.Next(context.Background())
	assert.Error(t, err)
}
