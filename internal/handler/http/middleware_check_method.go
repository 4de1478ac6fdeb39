// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod is the router's MethodNotAllowed handler. A method that
// is not registered for an exact route pattern gets 404 instead of chi's
// 405, so /Microsoft-Server-ActiveSync answers only OPTIONS and POST.
// Parameterised patterns are compared verbatim and never match.
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, route := range router.Routes() {
			if route.Pattern != r.URL.Path {
				continue
			}
			if _, ok := route.Handlers[r.Method]; ok {
				router.ServeHTTP(w, r)
				return
			}
			break
		}
		http.NotFound(w, r)
	}
}
