// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-eas-sync/internal/wbxml"
	"github.com/MKhiriev/go-eas-sync/models"
)

func (h *harness) admin(method, path, token string) *http.Response {
	h.t.Helper()
	req, err := http.NewRequest(method, h.server.URL+path, nil)
	require.NoError(h.t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := h.server.Client().Do(req)
	require.NoError(h.t, err)
	h.t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (h *harness) adminToken() string {
	h.t.Helper()
	token, err := h.services.AuthService.CreateAdminToken("ops")
	require.NoError(h.t, err)
	return token
}

const devicePath = "/admin/users/" + testUser + "/devices/" + testDevice

func TestAdmin_Auth(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, http.StatusUnauthorized, h.admin(http.MethodGet, devicePath, "").StatusCode)
	assert.Equal(t, http.StatusUnauthorized, h.admin(http.MethodGet, devicePath, "not-a-jwt").StatusCode)
}

func TestAdmin_UnknownDevice(t *testing.T) {
	h := newHarness(t)
	token := h.adminToken()

	assert.Equal(t, http.StatusNotFound, h.admin(http.MethodGet, devicePath, token).StatusCode)
	assert.Equal(t, http.StatusNotFound, h.admin(http.MethodPost, devicePath+"/wipe", token).StatusCode)
	assert.Equal(t, http.StatusNotFound, h.admin(http.MethodDelete, devicePath+"/states", token).StatusCode)
}

func TestAdmin_DeviceLifecycle(t *testing.T) {
	h := newHarness(t)
	h.folderIDs()
	token := h.adminToken()

	resp := h.admin(http.MethodGet, devicePath, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var device models.Device
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&device))
	assert.Equal(t, testDevice, device.DeviceID)
	assert.Equal(t, "14.1", device.ProtocolVersion)
	assert.NotEmpty(t, device.Folders)

	resp = h.admin(http.MethodPost, devicePath+"/wipe", token)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&device))
	assert.Equal(t, models.WipeRequested, device.WipeStatus)

	resp = h.admin(http.MethodDelete, devicePath+"/states", token)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// the hierarchy is gone, so an old hierarchy key is rejected
	_, raw := h.command("FolderSync", folderSyncBody(t, "1"))
	assert.Equal(t, "9", text(t, tree(t, raw), wbxml.FolderStatus))
}
