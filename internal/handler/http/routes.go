// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const adminDevicePath = "/admin/users/{user}/devices/{deviceID}"

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging, withGZip)

	// device endpoint; OPTIONS is answered before authentication
	router.Options(activeSyncPath, h.options)
	router.With(h.basicAuth, h.withRequestContext, h.withThrottle).Post(activeSyncPath, h.serveActiveSync)

	// operator endpoints
	router.Group(func(r chi.Router) {
		r.Use(h.adminAuth)
		r.Get(adminDevicePath, h.getDevice)
		r.Post(adminDevicePath+"/wipe", h.requestWipe)
		r.Delete(adminDevicePath+"/states", h.resetDevice)
	})

	router.Get("/metrics", promhttp.Handler().ServeHTTP)
	router.Get("/version", h.getServerVersion)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
