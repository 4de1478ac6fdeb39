// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"slices"

	"github.com/MKhiriev/go-eas-sync/internal/service"
)

// commandFunc handles one decoded ActiveSync command. Errors returned
// before anything was written are mapped to an HTTP status by the caller.
type commandFunc func(w http.ResponseWriter, r *http.Request, req *service.Request) error

type command struct {
	handle commandFunc
	// longPoll commands may block for up to the heartbeat lifetime and are
	// not bound by the request timeout.
	longPoll bool
	// ungated commands run without a current policy key.
	ungated bool
}

func (h *Handler) commandTable() map[string]command {
	return map[string]command{
		"Sync":       {handle: h.sync, longPoll: true},
		"Ping":       {handle: h.ping, longPoll: true},
		"FolderSync": {handle: h.folderSync},
		"Provision":  {handle: h.provision, ungated: true},
	}
}

// commandNames lists the implemented commands for OPTIONS discovery.
func (h *Handler) commandNames() []string {
	names := make([]string, 0, len(h.commands))
	for name := range h.commands {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
