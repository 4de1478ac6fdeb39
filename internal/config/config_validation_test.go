// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     StructuredConfig
		wantErr error
	}{
		{name: "defaults are valid", cfg: *defaults()},
		{
			name:    "postgres without dsn",
			cfg:     StructuredConfig{Storage: Storage{DB: DB{Driver: DriverPostgres}}},
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "unknown driver",
			cfg:     StructuredConfig{Storage: Storage{DB: DB{Driver: "mysql", DSN: "x"}}},
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "rest backend without url",
			cfg:     StructuredConfig{Backend: Backend{Kind: BackendREST}},
			wantErr: ErrInvalidBackendConfigs,
		},
		{
			name:    "negative window",
			cfg:     StructuredConfig{Sync: Sync{MaxWindowSize: -1}},
			wantErr: ErrInvalidSyncConfigs,
		},
		{
			name:    "min lifetime above max",
			cfg:     StructuredConfig{Ping: Ping{MinLifetime: time.Hour, MaxLifetime: time.Minute}},
			wantErr: ErrInvalidPingConfigs,
		},
		{
			name:    "short token key",
			cfg:     StructuredConfig{App: App{TokenSignKey: "short"}},
			wantErr: ErrInvalidAppConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
