// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-eas-sync/models"
)

// Field names accepted by RequestValidator.
const (
	FieldCommand         = "command"
	FieldUser            = "user"
	FieldDeviceID        = "device_id"
	FieldDeviceType      = "device_type"
	FieldProtocolVersion = "protocol_version"
	FieldPolicyKey       = "policy_key"
)

const (
	maxDeviceIDLength   = 32
	maxDeviceTypeLength = 32
	maxUserLength       = 256
)

// SupportedProtocolVersions are the protocol versions the server speaks,
// oldest first.
var SupportedProtocolVersions = []string{"2.5", "12.0", "12.1", "14.0", "14.1"}

// RequestValidator checks the identifying parameters of an ActiveSync
// request before any state is touched.
type RequestValidator struct{}

func NewRequestValidator() Validator {
	return &RequestValidator{}
}

// Validate accepts models.RequestContext by value or pointer. Without
// fields every field except the policy key is checked.
func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RequestContext:
		return v.validateRequestContext(ctx, value, fields...)
	case *models.RequestContext:
		if value == nil {
			return ErrUnsupportedType
		}
		return v.validateRequestContext(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *RequestValidator) validateRequestContext(_ context.Context, rc models.RequestContext, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldCommand, FieldUser, FieldDeviceID, FieldDeviceType, FieldProtocolVersion}
	}

	for _, f := range fields {
		switch f {
		case FieldCommand:
			if rc.Command == "" {
				return ErrEmptyCommand
			}
		case FieldUser:
			// the user is part of the device's state key
			if rc.User == "" || len(rc.User) > maxUserLength || strings.ContainsAny(rc.User, "/\x00") {
				return ErrInvalidUser
			}
		case FieldDeviceID:
			if !alphanumeric(rc.DeviceID, maxDeviceIDLength) {
				return ErrInvalidDeviceID
			}
		case FieldDeviceType:
			if !alphanumeric(rc.DeviceType, maxDeviceTypeLength) {
				return ErrInvalidDeviceType
			}
		case FieldProtocolVersion:
			if !slices.Contains(SupportedProtocolVersions, rc.ProtocolVersion) {
				return ErrUnsupportedProtocol
			}
		case FieldPolicyKey:
			if rc.PolicyKey == "" {
				continue
			}
			if _, err := strconv.ParseUint(rc.PolicyKey, 10, 32); err != nil {
				return ErrInvalidPolicyKey
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func alphanumeric(s string, maxLen int) bool {
	if s == "" || len(s) > maxLen {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
