// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-eas-sync/internal/logger"
	"github.com/MKhiriev/go-eas-sync/internal/utils"
)

func (h *Handler) getDevice(w http.ResponseWriter, r *http.Request) {
	user, deviceID := chi.URLParam(r, "user"), chi.URLParam(r, "deviceID")

	device, err := h.services.DeviceService.Get(r.Context(), user, deviceID)
	if err != nil {
		h.adminError(w, r, err)
		return
	}
	utils.WriteJSON(w, device, http.StatusOK)
}

func (h *Handler) requestWipe(w http.ResponseWriter, r *http.Request) {
	user, deviceID := chi.URLParam(r, "user"), chi.URLParam(r, "deviceID")

	device, err := h.services.AdminService.RequestWipe(r.Context(), user, deviceID)
	if err != nil {
		h.adminError(w, r, err)
		return
	}
	admin, _ := utils.GetAdminFromContext(r.Context())
	logger.FromRequest(r).Warn().Str("admin", admin).Str("user", user).Str("device_id", deviceID).Msg("wipe scheduled")
	utils.WriteJSON(w, device, http.StatusAccepted)
}

func (h *Handler) resetDevice(w http.ResponseWriter, r *http.Request) {
	user, deviceID := chi.URLParam(r, "user"), chi.URLParam(r, "deviceID")

	if err := h.services.AdminService.ResetDevice(r.Context(), user, deviceID); err != nil {
		h.adminError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) adminError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		logger.FromRequest(r).Error().Err(err).Msg("admin request failed")
	}
	if status == http.StatusServiceUnavailable {
		h.setRetryAfter(w)
	}
	utils.WriteError(w, messageFor(status), status)
}
