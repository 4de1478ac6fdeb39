// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// State store drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Backend kinds.
const (
	BackendMemory = "memory"
	BackendREST   = "rest"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Storage.DB.Driver {
	case DriverPostgres, DriverSQLite:
		if cfg.Storage.DB.DSN == "" {
			return fmt.Errorf("%w: %s driver needs a DSN", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
		}
	case DriverMemory, "":
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}

	switch cfg.Backend.Kind {
	case BackendREST:
		if cfg.Backend.URL == "" {
			return fmt.Errorf("%w: rest backend needs a URL", ErrInvalidBackendConfigs)
		}
	case BackendMemory, "":
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidBackendConfigs, cfg.Backend.Kind)
	}

	s := cfg.Sync
	if s.MaxWindowSize < 0 || s.GlobalWindowSize < 0 || s.DefaultWindowSize < 0 {
		return fmt.Errorf("%w: window sizes must be positive", ErrInvalidSyncConfigs)
	}

	p := cfg.Ping
	if p.MinLifetime > 0 && p.MaxLifetime > 0 && p.MinLifetime > p.MaxLifetime {
		return fmt.Errorf("%w: min lifetime %s exceeds max lifetime %s", ErrInvalidPingConfigs, p.MinLifetime, p.MaxLifetime)
	}
	if p.PollInterval < 0 {
		return fmt.Errorf("%w: poll interval must be positive", ErrInvalidPingConfigs)
	}

	if cfg.App.TokenSignKey != "" && len(cfg.App.TokenSignKey) < 16 {
		return fmt.Errorf("%w: token sign key is shorter than 16 bytes", ErrInvalidAppConfigs)
	}

	return nil
}
