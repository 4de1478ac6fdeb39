// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-eas-sync/models"
)

func validRequestContext() models.RequestContext {
	return models.RequestContext{
		Command:         "Sync",
		User:            "alice@example.com",
		DeviceID:        "ApplF17XK2ABCDEF",
		DeviceType:      "iPhone",
		ProtocolVersion: "14.1",
		PolicyKey:       "1307199584",
	}
}

// ── Dispatch ─────────────────────────────────────────────────────────────────

func TestRequestValidator_Dispatch(t *testing.T) {
	v := NewRequestValidator()
	ctx := context.Background()
	rc := validRequestContext()

	require.NoError(t, v.Validate(ctx, rc))
	require.NoError(t, v.Validate(ctx, &rc))
	assert.ErrorIs(t, v.Validate(ctx, (*models.RequestContext)(nil)), ErrUnsupportedType)
	assert.ErrorIs(t, v.Validate(ctx, "Sync"), ErrUnsupportedType)
	assert.ErrorIs(t, v.Validate(ctx, rc, "color"), ErrUnknownField)
}

// ── Fields ───────────────────────────────────────────────────────────────────

func TestRequestValidator_Fields(t *testing.T) {
	tests := []struct {
		name   string
		modify func(rc *models.RequestContext)
		fields []string
		want   error
	}{
		{name: "no command", modify: func(rc *models.RequestContext) { rc.Command = "" }, want: ErrEmptyCommand},
		{name: "no user", modify: func(rc *models.RequestContext) { rc.User = "" }, want: ErrInvalidUser},
		{name: "user with slash", modify: func(rc *models.RequestContext) { rc.User = "alice/bob" }, want: ErrInvalidUser},
		{name: "domain user", modify: func(rc *models.RequestContext) { rc.User = `CORP\alice` }},
		{name: "device id punctuation", modify: func(rc *models.RequestContext) { rc.DeviceID = "dev-1" }, want: ErrInvalidDeviceID},
		{name: "device id too long", modify: func(rc *models.RequestContext) { rc.DeviceID = strings.Repeat("a", 33) }, want: ErrInvalidDeviceID},
		{name: "no device type", modify: func(rc *models.RequestContext) { rc.DeviceType = "" }, want: ErrInvalidDeviceType},
		{name: "old protocol", modify: func(rc *models.RequestContext) { rc.ProtocolVersion = "2.5" }},
		{name: "unknown protocol", modify: func(rc *models.RequestContext) { rc.ProtocolVersion = "16.1" }, want: ErrUnsupportedProtocol},
		{name: "policy key not checked by default", modify: func(rc *models.RequestContext) { rc.PolicyKey = "abc" }},
		{
			name:   "policy key not a number",
			modify: func(rc *models.RequestContext) { rc.PolicyKey = "abc" },
			fields: []string{FieldPolicyKey},
			want:   ErrInvalidPolicyKey,
		},
		{
			name:   "policy key too large",
			modify: func(rc *models.RequestContext) { rc.PolicyKey = "4294967296" },
			fields: []string{FieldPolicyKey},
			want:   ErrInvalidPolicyKey,
		},
		{
			name:   "empty policy key",
			modify: func(rc *models.RequestContext) { rc.PolicyKey = "" },
			fields: []string{FieldPolicyKey},
		},
		{
			name:   "only the named fields are checked",
			modify: func(rc *models.RequestContext) { rc.DeviceType = "" },
			fields: []string{FieldUser, FieldDeviceID},
		},
	}

	v := NewRequestValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := validRequestContext()
			tt.modify(&rc)
			err := v.Validate(context.Background(), rc, tt.fields...)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
