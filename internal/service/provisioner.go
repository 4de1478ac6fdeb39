// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"

	"github.com/MKhiriev/go-eas-sync/internal/config"
	"github.com/MKhiriev/go-eas-sync/internal/logger"
	"github.com/MKhiriev/go-eas-sync/internal/utils"
	"github.com/MKhiriev/go-eas-sync/models"
)

var (
	errNotProvisioned = errors.New("device is not provisioned")
	errPolicyChanged  = errors.New("policy changed since the device acknowledged it")
	errWipePending    = errors.New("remote wipe pending")
)

// Provisioner runs the two-phase Provision handshake and gates every other
// command on a current policy key.
type Provisioner struct {
	devices DeviceService
	cfg     config.Provisioning
	logger  *logger.Logger
}

func NewProvisioner(devices DeviceService, cfg config.Provisioning, log *logger.Logger) *Provisioner {
	return &Provisioner{devices: devices, cfg: cfg, logger: log}
}

func emptyPolicyKey(key string) bool {
	return key == "" || key == "0"
}

// CheckPolicy returns a global status error when the device has to
// provision first: 142 when it sent no policy key, 144 when the key it sent
// is not the current one.
func (p *Provisioner) CheckPolicy(device *models.Device, policyKey string) error {
	if !p.cfg.IsEnabled() {
		return nil
	}
	status := func(err error) error {
		if emptyPolicyKey(policyKey) {
			return globalStatus(models.StatusDeviceNotProvisioned, err)
		}
		return globalStatus(models.StatusInvalidPolicyKey, err)
	}

	if device.WipeStatus == models.WipeRequested {
		return status(errWipePending)
	}
	if p.cfg.Loose && device.PolicyKey == "" && emptyPolicyKey(policyKey) {
		return nil
	}
	if device.PolicyKey == "" || policyKey != device.PolicyKey {
		return status(errNotProvisioned)
	}

	hash, err := utils.Fingerprint(p.cfg.Policy)
	if err != nil {
		return fmt.Errorf("error hashing policy: %w", err)
	}
	if device.PolicyHash != hash {
		return status(errPolicyChanged)
	}
	return nil
}

func (p *Provisioner) Provision(ctx context.Context, req *Request, preq *models.ProvisionRequest) (*models.ProvisionResponse, error) {
	log := logger.FromContext(ctx)
	device := req.Device
	resp := &models.ProvisionResponse{Status: models.ProvisionStatusSuccess, PolicyType: preq.PolicyType}

	if preq.HasRemoteWipeStatus && device.WipeStatus == models.WipeRequested {
		log.Warn().Int("status", preq.RemoteWipeStatus).Msg("device acknowledged remote wipe")
		device.WipeStatus = models.WipeWiped
		device.PolicyKey, device.PendingPolicyKey, device.PolicyHash = "", "", ""
		if err := p.devices.Save(ctx, device); err != nil {
			return nil, err
		}
		if preq.PolicyType == "" {
			return resp, nil
		}
	}

	if !p.cfg.IsEnabled() {
		resp.PolicyStatus = models.PolicyStatusNoPolicy
		return resp, nil
	}
	if preq.PolicyType != models.PolicyTypeWBXML {
		log.Info().Str("policy_type", preq.PolicyType).Msg("unsupported policy type")
		resp.PolicyStatus = models.PolicyStatusUnknownPolicyType
		return resp, nil
	}
	resp.PolicyStatus = models.PolicyStatusSuccess

	wipe := device.WipeStatus == models.WipeRequested
	switch {
	case emptyPolicyKey(preq.PolicyKey) || wipe:
		key, err := newPolicyKey()
		if err != nil {
			return nil, err
		}
		device.PendingPolicyKey = key
		policy := p.cfg.Policy
		resp.PolicyKey = key
		resp.Policy = &policy
		resp.RemoteWipe = wipe
		log.Info().Bool("wipe", wipe).Msg("policy handed out")

	case device.PendingPolicyKey != "" && preq.PolicyKey == device.PendingPolicyKey:
		if preq.Status != 0 && preq.Status != models.PolicyStatusSuccess {
			log.Warn().Int("status", preq.Status).Msg("device did not apply the policy")
			resp.Status = models.ProvisionStatusProtocolError
			return resp, nil
		}
		hash, err := utils.Fingerprint(p.cfg.Policy)
		if err != nil {
			return nil, fmt.Errorf("error hashing policy: %w", err)
		}
		device.PolicyKey = device.PendingPolicyKey
		device.PendingPolicyKey = ""
		device.PolicyHash = hash
		if device.WipeStatus == models.WipeWiped {
			device.WipeStatus = models.WipeNone
		}
		resp.PolicyKey = device.PolicyKey
		log.Info().Msg("policy acknowledged")

	case device.PolicyKey != "" && preq.PolicyKey == device.PolicyKey:
		resp.PolicyKey = device.PolicyKey

	default:
		log.Info().Msg("acknowledgement with an unknown policy key")
		resp.PolicyStatus = models.PolicyStatusWrongPolicyKey
		return resp, nil
	}

	if err := p.devices.Save(ctx, device); err != nil {
		return nil, err
	}
	return resp, nil
}

// newPolicyKey returns a random non-zero 32 bit key.
func newPolicyKey() (string, error) {
	var b [4]byte
	for {
		if _, err := rand.Read(b[:]); err != nil {
			return "", fmt.Errorf("error generating policy key: %w", err)
		}
		if v := binary.BigEndian.Uint32(b[:]); v != 0 {
			return strconv.FormatUint(uint64(v), 10), nil
		}
	}
}
