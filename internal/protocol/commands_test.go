// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package protocol

import (
	"bytes"
	"testing"

	"github.com/MKhiriev/go-eas-sync/internal/wbxml"
	"github.com/MKhiriev/go-eas-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Ping ─────────────────────────────────────────────────────────────────────

func TestDecodePing(t *testing.T) {
	body := document(t, func(e *wbxml.Encoder) {
		e.StartTag(wbxml.PingPing, false)
		e.Element(wbxml.PingHeartbeatInterval, "480")
		e.StartTag(wbxml.PingFolders, false)
		for _, id := range []string{"1", "5"} {
			e.StartTag(wbxml.PingFolder, false)
			e.Element(wbxml.PingID, id)
			e.Element(wbxml.PingClass, "Email")
			e.EndTag()
		}
	})

	req, err := DecodePing(body)
	require.NoError(t, err)
	assert.Equal(t, &models.PingRequest{
		HeartbeatInterval: 480,
		Folders: []models.PingFolder{
			{ID: "1", Class: models.ClassEmail},
			{ID: "5", Class: models.ClassEmail},
		},
	}, req)
}

func TestDecodePing_EmptyBody(t *testing.T) {
	req, err := DecodePing(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Zero(t, req.HeartbeatInterval)
	assert.Empty(t, req.Folders)
}

func TestEncodePing(t *testing.T) {
	tests := []struct {
		name  string
		resp  models.PingResponse
		check func(t *testing.T, root *wbxml.Node)
	}{
		{
			name: "changes",
			resp: models.PingResponse{Status: models.PingStatusChanges, Folders: []string{"1", "4"}},
			check: func(t *testing.T, root *wbxml.Node) {
				folders := child(t, root, wbxml.PingFolders)
				require.Len(t, folders.Children, 2)
				assert.Equal(t, "4", string(folders.Children[1].Value))
				assert.False(t, has(root, wbxml.PingHeartbeatInterval))
			},
		},
		{
			name: "interval out of range",
			resp: models.PingResponse{Status: models.PingStatusInvalidInterval, HeartbeatInterval: 60},
			check: func(t *testing.T, root *wbxml.Node) {
				assert.Equal(t, "60", string(child(t, root, wbxml.PingHeartbeatInterval).Value))
				assert.False(t, has(root, wbxml.PingFolders))
			},
		},
		{
			name: "too many folders",
			resp: models.PingResponse{Status: models.PingStatusTooManyFolders, MaxFolders: 300},
			check: func(t *testing.T, root *wbxml.Node) {
				assert.Equal(t, "300", string(child(t, root, wbxml.PingMaxFolders).Value))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, EncodePing(&buf, &tt.resp))

			root := tree(t, buf.Bytes())
			assert.Equal(t, wbxml.PingPing, root.Tag)
			assert.NotEmpty(t, child(t, root, wbxml.PingStatus).Value)
			tt.check(t, root)
		})
	}
}

// ── Provision ────────────────────────────────────────────────────────────────

func TestDecodeProvision(t *testing.T) {
	body := document(t, func(e *wbxml.Encoder) {
		e.StartTag(wbxml.ProvisionProvision, false)
		e.StartTag(wbxml.ProvisionPolicies, false)
		e.StartTag(wbxml.ProvisionPolicy, false)
		e.Element(wbxml.ProvisionPolicyType, models.PolicyTypeWBXML)
		e.Element(wbxml.ProvisionPolicyKey, "1307199584")
		e.Element(wbxml.ProvisionStatus, "1")
		e.EndTag()
		e.EndTag()
		e.StartTag(wbxml.ProvisionRemoteWipe, false)
		e.Element(wbxml.ProvisionStatus, "1")
	})

	req, err := DecodeProvision(body)
	require.NoError(t, err)
	assert.Equal(t, models.PolicyTypeWBXML, req.PolicyType)
	assert.Equal(t, "1307199584", req.PolicyKey)
	assert.Equal(t, 1, req.Status)
	assert.True(t, req.HasRemoteWipeStatus)
	assert.Equal(t, 1, req.RemoteWipeStatus)
}

func TestDecodeProvision_EmptyBody(t *testing.T) {
	_, err := DecodeProvision(bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrMalformedRequest)
}

func TestEncodeProvision(t *testing.T) {
	t.Run("first phase carries the policy", func(t *testing.T) {
		var buf bytes.Buffer
		err := EncodeProvision(&buf, &models.ProvisionResponse{
			Status:       models.ProvisionStatusSuccess,
			PolicyType:   models.PolicyTypeWBXML,
			PolicyStatus: models.PolicyStatusSuccess,
			PolicyKey:    "42",
			Policy:       &models.Policy{DevicePasswordEnabled: true, MinDevicePasswordLength: 4},
			RemoteWipe:   true,
		})
		require.NoError(t, err)

		root := tree(t, buf.Bytes())
		assert.True(t, has(root, wbxml.ProvisionRemoteWipe))
		policy := child(t, root, wbxml.ProvisionPolicies, wbxml.ProvisionPolicy)
		assert.Equal(t, "42", string(child(t, policy, wbxml.ProvisionPolicyKey).Value))
		doc := child(t, policy, wbxml.ProvisionData, wbxml.ProvisionEASProvisionDoc)
		assert.Equal(t, "1", string(child(t, doc, wbxml.ProvisionDevicePasswordEnabled).Value))
		assert.Equal(t, "4", string(child(t, doc, wbxml.ProvisionMinDevicePasswordLength).Value))
		assert.False(t, has(doc, wbxml.ProvisionMaxAttachmentSize))
	})

	t.Run("acknowledgement has no data", func(t *testing.T) {
		var buf bytes.Buffer
		err := EncodeProvision(&buf, &models.ProvisionResponse{
			Status:       models.ProvisionStatusSuccess,
			PolicyType:   models.PolicyTypeWBXML,
			PolicyStatus: models.PolicyStatusSuccess,
			PolicyKey:    "42",
		})
		require.NoError(t, err)

		policy := child(t, tree(t, buf.Bytes()), wbxml.ProvisionPolicies, wbxml.ProvisionPolicy)
		assert.False(t, has(policy, wbxml.ProvisionData))
	})
}

// ── FolderSync ───────────────────────────────────────────────────────────────

func TestDecodeFolderSync(t *testing.T) {
	body := document(t, func(e *wbxml.Encoder) {
		e.StartTag(wbxml.FolderFolderSync, false)
		e.Element(wbxml.FolderSyncKey, "0")
	})
	req, err := DecodeFolderSync(body)
	require.NoError(t, err)
	assert.Equal(t, "0", req.SyncKey)

	body = document(t, func(e *wbxml.Encoder) {
		e.StartTag(wbxml.FolderFolderSync, true)
	})
	_, err = DecodeFolderSync(body)
	assert.ErrorIs(t, err, ErrMalformedRequest)
}

func TestEncodeFolderSync(t *testing.T) {
	var buf bytes.Buffer
	err := EncodeFolderSync(&buf, &models.FolderSyncResponse{
		Status:  models.FolderSyncStatusSuccess,
		SyncKey: "1",
		Adds: []models.Folder{
			{ID: "1", ParentID: "0", Name: "Inbox", Type: models.FolderTypeInbox},
			{ID: "2", ParentID: "1", Name: "Sub", Type: models.FolderTypeUserMail},
		},
		Deletes: []string{"9"},
	})
	require.NoError(t, err)

	root := tree(t, buf.Bytes())
	changes := child(t, root, wbxml.FolderChanges)
	assert.Equal(t, "3", string(child(t, changes, wbxml.FolderCount).Value))
	require.Len(t, changes.Children, 4)
	assert.Equal(t, wbxml.FolderDelete, changes.Children[1].Tag)
	assert.Equal(t, "Sub", string(child(t, changes.Children[3], wbxml.FolderDisplayName).Value))

	buf.Reset()
	require.NoError(t, EncodeFolderSync(&buf, &models.FolderSyncResponse{Status: models.FolderSyncStatusInvalidSyncKey}))
	root = tree(t, buf.Bytes())
	assert.False(t, has(root, wbxml.FolderChanges))
}

// ── Status ───────────────────────────────────────────────────────────────────

func TestEncodeStatus(t *testing.T) {
	var buf bytes.Buffer
	ok, err := EncodeStatus(&buf, "Ping", models.StatusDeviceNotProvisioned)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "142", string(child(t, tree(t, buf.Bytes()), wbxml.PingStatus).Value))

	ok, err = EncodeStatus(&buf, "SendMail", models.StatusInvalidPolicyKey)
	require.NoError(t, err)
	assert.False(t, ok)
}
