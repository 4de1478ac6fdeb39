// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-eas-sync/internal/logger"
	"github.com/MKhiriev/go-eas-sync/internal/protocol"
	"github.com/MKhiriev/go-eas-sync/internal/service"
	"github.com/MKhiriev/go-eas-sync/models"
)

// sync streams the Sync response: every collection is flushed to the
// device as soon as it is complete.
func (h *Handler) sync(w http.ResponseWriter, r *http.Request, req *service.Request) error {
	sw := protocol.NewSyncWriter(flushWriter{w})

	sreq, err := protocol.DecodeSync(r.Body)
	if errors.Is(err, protocol.ErrMalformedRequest) || errors.Is(err, protocol.ErrUnexpectedRoot) {
		logger.FromRequest(r).Info().Err(err).Msg("malformed sync request")
		return sw.WriteStatus(models.SyncStatusProtocolError, 0)
	}
	if err != nil {
		return err
	}

	err = h.services.SyncService.Sync(r.Context(), req, sreq, sw)
	if err != nil && sw.Started() {
		logger.FromRequest(r).Err(err).Msg("sync aborted, closing the partial response")
		return sw.Close()
	}
	return err
}

// flushWriter pushes every write to the client.
type flushWriter struct {
	w http.ResponseWriter
}

func (f flushWriter) Write(p []byte) (int, error) {
	n, err := f.w.Write(p)
	if flusher, ok := f.w.(http.Flusher); ok {
		flusher.Flush()
	}
	return n, err
}
