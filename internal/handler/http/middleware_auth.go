// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-eas-sync/internal/app"
	"github.com/MKhiriev/go-eas-sync/internal/backend"
	"github.com/MKhiriev/go-eas-sync/internal/logger"
	"github.com/MKhiriev/go-eas-sync/internal/service"
	"github.com/MKhiriev/go-eas-sync/internal/utils"
)

type sessionCtxKey struct{}

func withSession(ctx context.Context, s backend.Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, s)
}

func sessionFromContext(ctx context.Context) (backend.Session, bool) {
	s, ok := ctx.Value(sessionCtxKey{}).(backend.Session)
	return s, ok && s != nil
}

// basicAuth logs the device's user on to the groupware backend with the
// Basic credentials of the request and keeps the session in the context.
func (h *Handler) basicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		user, password, ok := r.BasicAuth()
		if !ok {
			log.Info().Err(ErrMissingCredentials).Send()
			unauthorized(w)
			return
		}

		session, err := h.services.AuthService.Authenticate(r.Context(), user, password)
		if err != nil {
			status := statusFromError(err)
			if status == http.StatusUnauthorized {
				log.Warn().Err(err).Str("user", user).Msg("authentication failed")
				unauthorized(w)
				return
			}
			log.Error().Err(err).Msg("error authenticating")
			if status == http.StatusServiceUnavailable {
				h.setRetryAfter(w)
			}
			http.Error(w, messageFor(status), status)
			return
		}

		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), session)))
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="ActiveSync"`)
	http.Error(w, app.MsgAuthenticationRequired, http.StatusUnauthorized)
}

// adminAuth accepts requests carrying a valid admin bearer token.
func (h *Handler) adminAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		token, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
		if err != nil {
			log.Info().Err(err).Msg("admin request without token")
			utils.WriteError(w, app.MsgAuthenticationRequired, http.StatusUnauthorized)
			return
		}

		subject, err := h.services.AuthService.ParseAdminToken(token)
		switch {
		case errors.Is(err, service.ErrAdminDisabled):
			http.NotFound(w, r)
			return
		case err != nil:
			log.Warn().Err(err).Msg("admin token rejected")
			utils.WriteError(w, app.MsgTokenIsExpiredOrInvalid, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), utils.AdminCtxKey, subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
