// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-eas-sync/internal/config"
	"github.com/MKhiriev/go-eas-sync/internal/logger"
)

// Storages aggregates the persistence layer handed to services.
type Storages struct {
	StateStore StateStore

	db *DB
}

// NewStorages opens the configured state store, applies migrations for SQL
// drivers and wraps it with the read cache when enabled.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	var (
		states StateStore
		db     *DB
		err    error
	)

	switch cfg.DB.Driver {
	case config.DriverPostgres:
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	case config.DriverSQLite:
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	case config.DriverMemory, "":
		states = NewMemoryStateStore()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.DB.Driver)
	}
	if err != nil {
		return nil, err
	}

	if db != nil {
		if err = db.Migrate(); err != nil {
			_ = db.Close()
			return nil, err
		}
		states = NewStateRepository(db, log)
	}

	if cfg.Cache.Size > 0 {
		states = NewCachedStateStore(states, cfg.Cache.Size, cfg.Cache.TTL)
	}

	log.Info().Str("driver", cfg.DB.Driver).Int("cache_size", cfg.Cache.Size).Msg("state store ready")
	return &Storages{StateStore: states, db: db}, nil
}

// Ping checks the database connection; the memory store is always up.
func (s *Storages) Ping(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return s.db.PingContext(ctx)
}

// Close releases the database connection.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
