// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package protocol

import (
	"io"
	"strconv"

	"github.com/MKhiriev/go-eas-sync/internal/wbxml"
	"github.com/MKhiriev/go-eas-sync/models"
)

// DecodeProvision reads a Provision request.
func DecodeProvision(r io.Reader) (*models.ProvisionRequest, error) {
	d := wbxml.NewDecoder(r)
	start, ok, err := root(d, wbxml.ProvisionProvision)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrMalformedRequest
	}

	req := &models.ProvisionRequest{}
	err = elements(d, start, func(tok wbxml.Token) error {
		switch tok.Tag {
		case wbxml.ProvisionPolicies:
			return elements(d, tok, func(tok wbxml.Token) error {
				if tok.Tag != wbxml.ProvisionPolicy {
					return errSkip
				}
				return decodePolicy(d, tok, req)
			})
		case wbxml.ProvisionRemoteWipe:
			req.HasRemoteWipeStatus = true
			return elements(d, tok, func(tok wbxml.Token) error {
				if tok.Tag != wbxml.ProvisionStatus {
					return errSkip
				}
				var err error
				req.RemoteWipeStatus, err = number(d, tok)
				return err
			})
		}
		return errSkip
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

func decodePolicy(d *wbxml.Decoder, start wbxml.Token, req *models.ProvisionRequest) error {
	return elements(d, start, func(tok wbxml.Token) error {
		var err error
		switch tok.Tag {
		case wbxml.ProvisionPolicyType:
			req.PolicyType, err = text(d, tok)
		case wbxml.ProvisionPolicyKey:
			req.PolicyKey, err = text(d, tok)
		case wbxml.ProvisionStatus:
			req.Status, err = number(d, tok)
		default:
			return errSkip
		}
		return err
	})
}

// EncodeProvision writes a Provision response.
func EncodeProvision(w io.Writer, resp *models.ProvisionResponse) error {
	e := wbxml.NewEncoder(w)
	e.StartTag(wbxml.ProvisionProvision, false)
	e.Element(wbxml.ProvisionStatus, strconv.Itoa(resp.Status))
	if resp.RemoteWipe {
		e.StartTag(wbxml.ProvisionRemoteWipe, true)
	}

	if resp.PolicyStatus != 0 {
		e.StartTag(wbxml.ProvisionPolicies, false)
		e.StartTag(wbxml.ProvisionPolicy, false)
		e.Element(wbxml.ProvisionPolicyType, resp.PolicyType)
		e.Element(wbxml.ProvisionStatus, strconv.Itoa(resp.PolicyStatus))
		if resp.PolicyKey != "" {
			e.Element(wbxml.ProvisionPolicyKey, resp.PolicyKey)
		}
		if resp.Policy != nil {
			e.StartTag(wbxml.ProvisionData, false)
			writePolicy(e, resp.Policy)
			e.EndTag()
		}
		e.EndTag()
		e.EndTag()
	}

	e.CloseAll()
	return e.Flush()
}

func writePolicy(e *wbxml.Encoder, p *models.Policy) {
	e.StartTag(wbxml.ProvisionEASProvisionDoc, false)
	e.ForceStart()
	e.Element(wbxml.ProvisionDevicePasswordEnabled, boolValue(p.DevicePasswordEnabled))
	if p.DevicePasswordEnabled {
		e.Element(wbxml.ProvisionAlphanumericDevicePasswordRequired, boolValue(p.AlphanumericDevicePasswordRequired))
		e.Element(wbxml.ProvisionPasswordRecoveryEnabled, boolValue(p.PasswordRecoveryEnabled))
		e.Element(wbxml.ProvisionAllowSimpleDevicePassword, boolValue(p.AllowSimpleDevicePassword))
		writeOptionalInt(e, wbxml.ProvisionMinDevicePasswordLength, p.MinDevicePasswordLength)
		writeOptionalInt(e, wbxml.ProvisionMaxInactivityTimeDeviceLock, p.MaxInactivityTimeDeviceLock)
		writeOptionalInt(e, wbxml.ProvisionMaxDevicePasswordFailedAttempts, p.MaxDevicePasswordFailedAttempts)
		e.Element(wbxml.ProvisionDevicePasswordExpiration, strconv.Itoa(p.DevicePasswordExpiration))
		e.Element(wbxml.ProvisionDevicePasswordHistory, strconv.Itoa(p.DevicePasswordHistory))
	}
	e.Element(wbxml.ProvisionRequireStorageCardEncryption, boolValue(p.RequireStorageCardEncryption))
	e.Element(wbxml.ProvisionAttachmentsEnabled, boolValue(p.AttachmentsEnabled))
	writeOptionalInt(e, wbxml.ProvisionMaxAttachmentSize, p.MaxAttachmentSize)
	e.EndTag()
}

func writeOptionalInt(e *wbxml.Encoder, tag wbxml.Tag, v int) {
	if v > 0 {
		e.Element(tag, strconv.Itoa(v))
	}
}

func boolValue(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
