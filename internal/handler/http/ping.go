// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-eas-sync/internal/protocol"
	"github.com/MKhiriev/go-eas-sync/internal/service"
	"github.com/MKhiriev/go-eas-sync/models"
)

func (h *Handler) ping(w http.ResponseWriter, r *http.Request, req *service.Request) error {
	preq, err := protocol.DecodePing(r.Body)
	if errors.Is(err, protocol.ErrMalformedRequest) || errors.Is(err, protocol.ErrUnexpectedRoot) {
		return protocol.EncodePing(w, &models.PingResponse{Status: models.PingStatusSyntaxError})
	}
	if err != nil {
		return err
	}

	resp, err := h.services.PingService.Ping(r.Context(), req, preq)
	if err != nil {
		return err
	}
	return protocol.EncodePing(w, resp)
}
