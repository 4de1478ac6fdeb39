// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-eas-sync/internal/validators"
)

// options answers the capability discovery devices run before the first
// command.
func (h *Handler) options(w http.ResponseWriter, r *http.Request) {
	hdr := w.Header()
	hdr.Set("MS-Server-ActiveSync", h.build.Version)
	hdr.Set("MS-ASProtocolVersions", strings.Join(validators.SupportedProtocolVersions, ","))
	hdr.Set("MS-ASProtocolCommands", strings.Join(h.commandNames(), ","))
	hdr.Set("Allow", "OPTIONS,POST")
	hdr.Set("Public", "OPTIONS,POST")
	w.WriteHeader(http.StatusOK)
}
