// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/MKhiriev/go-eas-sync/internal/app"
	"github.com/MKhiriev/go-eas-sync/internal/logger"
	"github.com/MKhiriev/go-eas-sync/internal/metrics"
	"github.com/MKhiriev/go-eas-sync/internal/protocol"
	"github.com/MKhiriev/go-eas-sync/internal/service"
	"github.com/MKhiriev/go-eas-sync/internal/utils"
)

const (
	activeSyncPath   = "/Microsoft-Server-ActiveSync"
	wbxmlContentType = "application/vnd.ms-sync.wbxml"

	// statusRetryWith asks pre-14.0 devices to provision.
	statusRetryWith = 449

	// minStatusProtocol is the first protocol version that carries policy
	// statuses inside the command response.
	minStatusProtocol = "14.0"
)

func (h *Handler) serveActiveSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	rc, ok := utils.GetRequestContext(ctx)
	session, found := sessionFromContext(ctx)
	if !ok || !found {
		log.Error().Msg("request context is missing")
		http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	cmd, ok := h.commands[rc.Command]
	if !ok {
		log.Info().Msg("command not implemented")
		http.Error(w, app.MsgCommandNotImplemented, http.StatusNotImplemented)
		return
	}

	rw := &responseWriter{ResponseWriter: w}
	defer func() {
		metrics.ReportCommand(rc.Command, rw.statusCode(), time.Since(rc.StartedAt))
	}()

	if !cmd.longPoll && h.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.cfg.RequestTimeout)
		defer cancel()
		r = r.WithContext(ctx)
	}

	device, err := h.services.DeviceService.Load(ctx, rc)
	if err != nil {
		h.writeError(rw, r, err)
		return
	}
	req := &service.Request{RequestContext: rc, Session: session, Device: device}

	if !cmd.ungated {
		if err = h.services.ProvisionService.CheckPolicy(device, rc.PolicyKey); err != nil {
			h.writeError(rw, r, err)
			return
		}
	}

	rw.Header().Set("Content-Type", wbxmlContentType)
	if err = cmd.handle(rw, r, req); err != nil {
		h.writeError(rw, r, err)
	}
}

// writeError answers a failed command. Protocol statuses become a status
// document (or 449 for devices too old to read one); everything else is
// mapped to an HTTP status. Nothing is written once the response started.
func (h *Handler) writeError(w *responseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	if w.wroteHeader {
		log.Err(err).Msg("command failed after the response started")
		return
	}

	rc, _ := utils.GetRequestContext(r.Context())
	if st, ok := service.StatusOf(err); ok {
		log.Info().Err(err).Int("status", st.Code).Msg("command answered with a status")
		if !rc.ProtocolAtLeast(minStatusProtocol) {
			w.WriteHeader(statusRetryWith)
			return
		}
		var buf bytes.Buffer
		written, encErr := protocol.EncodeStatus(&buf, rc.Command, st.Code)
		if encErr != nil || !written {
			w.WriteHeader(statusRetryWith)
			return
		}
		w.Header().Set("Content-Type", wbxmlContentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
		return
	}

	status := statusFromError(err)
	if status == http.StatusServiceUnavailable {
		h.setRetryAfter(w)
	}
	switch {
	case status >= http.StatusInternalServerError:
		log.Error().Err(err).Int("http_status", status).Msg("command failed")
	case errors.Is(err, context.DeadlineExceeded):
		log.Warn().Err(err).Msg("command timed out")
	default:
		log.Info().Err(err).Int("http_status", status).Msg("command rejected")
	}
	w.Header().Del("Content-Type")
	http.Error(w, messageFor(status), status)
}

func (h *Handler) setRetryAfter(w http.ResponseWriter) {
	if h.cfg.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(int(h.cfg.RetryAfter.Seconds())))
	}
}
