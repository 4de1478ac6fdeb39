// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ActionResult is the outcome of one client-submitted add.
type ActionResult struct {
	ServerID string `json:"server_id,omitempty"`
	Status   int    `json:"status"`
}

// ActionData records what the device asked for in one request for one
// folder and what happened. Adds are keyed by client id, every other action
// by server id.
//
// FailState is the ActionData saved by the previous attempt made with the
// same synckey; it is consulted to replay results instead of re-applying
// changes when a device resends a request whose response it never received.
type ActionData struct {
	Adds     map[string]ActionResult `json:"adds,omitempty"`
	Modifies map[string]int          `json:"modifies,omitempty"`
	Removes  map[string]int          `json:"removes,omitempty"`
	Fetches  map[string]int          `json:"fetches,omitempty"`

	FailState *ActionData `json:"-"`
}

// NewActionData returns an empty ActionData.
func NewActionData() *ActionData {
	return &ActionData{
		Adds:     make(map[string]ActionResult),
		Modifies: make(map[string]int),
		Removes:  make(map[string]int),
		Fetches:  make(map[string]int),
	}
}

// HasChanges reports whether the device submitted any state-changing action.
func (a *ActionData) HasChanges() bool {
	return len(a.Adds) > 0 || len(a.Modifies) > 0 || len(a.Removes) > 0
}

// ReplayAdd returns the previous successful result for clientID, if the
// failstate has one.
func (a *ActionData) ReplayAdd(clientID string) (ActionResult, bool) {
	if a.FailState == nil {
		return ActionResult{}, false
	}
	res, ok := a.FailState.Adds[clientID]
	if !ok || res.Status != SyncStatusSuccess || res.ServerID == "" {
		return ActionResult{}, false
	}
	return res, true
}

// ReplayRemove returns the previous successful result for serverID, if the
// failstate has one.
func (a *ActionData) ReplayRemove(serverID string) (int, bool) {
	if a.FailState == nil {
		return 0, false
	}
	status, ok := a.FailState.Removes[serverID]
	if !ok || status != SyncStatusSuccess {
		return 0, false
	}
	return status, true
}
