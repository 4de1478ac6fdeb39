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

func (h *Handler) provision(w http.ResponseWriter, r *http.Request, req *service.Request) error {
	preq, err := protocol.DecodeProvision(r.Body)
	if errors.Is(err, protocol.ErrMalformedRequest) || errors.Is(err, protocol.ErrUnexpectedRoot) {
		return protocol.EncodeProvision(w, &models.ProvisionResponse{Status: models.ProvisionStatusProtocolError})
	}
	if err != nil {
		return err
	}

	resp, err := h.services.ProvisionService.Provision(r.Context(), req, preq)
	if err != nil {
		return err
	}
	return protocol.EncodeProvision(w, resp)
}
