// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFile_JSON(t *testing.T) {
	// Arrange
	p := writeTempConfig(t, "config.json", `{
		"app": {"token_issuer": "json_issuer", "token_duration": "1h"},
		"server": {"http_address": "localhost:8080", "retry_after": "10s"},
		"storage": {"db": {"driver": "sqlite", "dsn": "file:state.db"}},
		"sync": {"max_window_size": 256, "folder_stat_ttl": "15m"},
		"ping": {"min_lifetime": "2m", "excluded_folder_types": [6]},
		"provisioning": {"enabled": true, "policy": {"min_device_password_length": 6}}
	}`)

	// Act
	cfg, err := parseFile(p)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "json_issuer", cfg.App.TokenIssuer)
	assert.Equal(t, time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 10*time.Second, cfg.Server.RetryAfter)
	assert.Equal(t, "sqlite", cfg.Storage.DB.Driver)
	assert.Equal(t, 256, cfg.Sync.MaxWindowSize)
	assert.Equal(t, 15*time.Minute, cfg.Sync.FolderStatTTL)
	assert.Equal(t, 2*time.Minute, cfg.Ping.MinLifetime)
	assert.Equal(t, []int{6}, cfg.Ping.ExcludedFolderTypes)
	assert.True(t, cfg.Provisioning.IsEnabled())
	assert.Equal(t, 6, cfg.Provisioning.Policy.MinDevicePasswordLength)
}

func TestParseFile_YAML(t *testing.T) {
	// Arrange
	p := writeTempConfig(t, "config.yml", `
app:
  log_level: info
ping:
  max_lifetime: 20m
  poll_interval: 15s
sync:
  ignored_classes: [SMS, Notes]
provisioning:
  enabled: false
  policy:
    device_password_enabled: true
    max_device_password_failed_attempts: 8
`)

	// Act
	cfg, err := parseFile(p)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, 20*time.Minute, cfg.Ping.MaxLifetime)
	assert.Equal(t, 15*time.Second, cfg.Ping.PollInterval)
	assert.Equal(t, []string{"SMS", "Notes"}, cfg.Sync.IgnoredClasses)
	assert.False(t, cfg.Provisioning.IsEnabled())
	assert.True(t, cfg.Provisioning.Policy.DevicePasswordEnabled)
	assert.Equal(t, 8, cfg.Provisioning.Policy.MaxDevicePasswordFailedAttempts)
}

func TestParseFile_Malformed(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{name: "json", file: "bad.json", body: "{not valid json"},
		{name: "yaml", file: "bad.yaml", body: "ping: [unclosed"},
		{name: "bad duration", file: "bad-duration.json", body: `{"ping": {"poll_interval": "often"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFile(writeTempConfig(t, tt.file, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestParseFile_NotFound(t *testing.T) {
	_, err := parseFile("/nonexistent/config.json")
	assert.Error(t, err)
}
