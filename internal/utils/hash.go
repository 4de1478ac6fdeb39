// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Fingerprint returns the hex-encoded SHA-256 digest of v's JSON encoding.
// Equal values always produce equal fingerprints because encoding/json
// writes struct fields in declaration order and sorts map keys.
//
// Example usage:
//
//	hash, err := utils.Fingerprint(cfg.Provisioning.Policy)
func Fingerprint(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("error fingerprinting value: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
