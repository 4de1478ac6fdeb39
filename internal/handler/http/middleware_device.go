// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-eas-sync/internal/app"
	"github.com/MKhiriev/go-eas-sync/internal/logger"
	"github.com/MKhiriev/go-eas-sync/internal/utils"
	"github.com/MKhiriev/go-eas-sync/internal/validators"
	"github.com/MKhiriev/go-eas-sync/models"
)

// withRequestContext reads the command parameters of an ActiveSync request
// and attaches them, and a logger carrying them, to the context. The user
// is always the authenticated one.
func (h *Handler) withRequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		session, ok := sessionFromContext(r.Context())
		if !ok {
			log.Error().Err(ErrMissingSession).Send()
			http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
			return
		}

		q := r.URL.Query()
		rc := models.RequestContext{
			Command:         q.Get("Cmd"),
			User:            session.User(),
			DeviceID:        q.Get("DeviceId"),
			DeviceType:      q.Get("DeviceType"),
			ProtocolVersion: r.Header.Get("MS-ASProtocolVersion"),
			PolicyKey:       r.Header.Get("X-MS-PolicyKey"),
			UserAgent:       r.UserAgent(),
			StartedAt:       time.Now(),
		}
		if queryUser := q.Get("User"); queryUser != "" && queryUser != rc.User {
			log.Debug().Str("query_user", queryUser).Str("user", rc.User).Msg("user parameter differs from the authenticated user")
		}

		err := h.validator.Validate(r.Context(), rc,
			validators.FieldCommand,
			validators.FieldUser,
			validators.FieldDeviceID,
			validators.FieldDeviceType,
			validators.FieldProtocolVersion,
			validators.FieldPolicyKey,
		)
		if err != nil {
			log.Info().Err(err).Str("cmd", rc.Command).Str("device_id", rc.DeviceID).Msg("invalid request parameters")
			http.Error(w, app.MsgInvalidRequestParameters+": "+err.Error(), http.StatusBadRequest)
			return
		}

		l := log.WithDevice(rc.User, rc.DeviceID, rc.Command)
		ctx := utils.WithRequestContext(r.Context(), rc)
		w.Header().Set("MS-Server-ActiveSync", h.build.Version)
		next.ServeHTTP(w, r.WithContext(l.WithContext(ctx)))
	})
}
