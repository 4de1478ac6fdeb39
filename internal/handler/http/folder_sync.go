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

func (h *Handler) folderSync(w http.ResponseWriter, r *http.Request, req *service.Request) error {
	freq, err := protocol.DecodeFolderSync(r.Body)
	if errors.Is(err, protocol.ErrMalformedRequest) || errors.Is(err, protocol.ErrUnexpectedRoot) {
		return protocol.EncodeFolderSync(w, &models.FolderSyncResponse{Status: models.FolderSyncStatusFormatError})
	}
	if err != nil {
		return err
	}

	resp, err := h.services.FolderSyncService.FolderSync(r.Context(), req, freq)
	if err != nil {
		return err
	}
	return protocol.EncodeFolderSync(w, resp)
}
