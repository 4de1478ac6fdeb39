// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-eas-sync/internal/logger"
	"github.com/MKhiriev/go-eas-sync/models"
)

const statesTable = "states"

const upsertStateSuffix = `ON CONFLICT (device_id, state_type, state_key, counter)
	DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`

// stateRepository is the SQL implementation of [StateStore] over the
// "states" table. It serves both PostgreSQL and SQLite; only the placeholder
// format differs.
type stateRepository struct {
	db     *DB
	logger *logger.Logger
	now    func() time.Time
}

// NewStateRepository constructs a SQL-backed [StateStore].
func NewStateRepository(db *DB, log *logger.Logger) StateStore {
	log.Debug().Str("dialect", db.dialect).Msg("creating state repository")
	return &stateRepository{
		db:     db,
		logger: log,
		now:    time.Now,
	}
}

func (r *stateRepository) GetState(ctx context.Context, key models.StateKey) ([]byte, error) {
	query, args, err := r.db.builder.
		Select("data").
		From(statesTable).
		Where(keyEq(key)).
		Where(sq.Eq{"counter": key.Counter}).
		ToSql()
	if err != nil {
		return nil, errors.Join(ErrBuildingSQLQuery, err)
	}

	var data []byte
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStateNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "*stateRepository.GetState").Str("key", key.String()).Msg("error reading state")
		return nil, r.db.wrap(ErrExecutingQuery, "get state", err)
	}
	return data, nil
}

func (r *stateRepository) SetState(ctx context.Context, key models.StateKey, data []byte) error {
	if data == nil {
		data = []byte{}
	}
	query, args, err := r.db.builder.
		Insert(statesTable).
		Columns("device_id", "state_type", "state_key", "counter", "data", "updated_at").
		Values(key.DeviceID, string(key.Type), key.Key, key.Counter, data, r.now().UTC()).
		Suffix(upsertStateSuffix).
		ToSql()
	if err != nil {
		return errors.Join(ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*stateRepository.SetState").Str("key", key.String()).Msg("error writing state")
		return r.db.wrap(ErrExecutingStatement, "set state", err)
	}
	return nil
}

func (r *stateRepository) GetNewestState(ctx context.Context, key models.StateKey) (models.StateKey, []byte, error) {
	query, args, err := r.db.builder.
		Select("counter", "data").
		From(statesTable).
		Where(keyEq(key)).
		Where(sq.Lt{"counter": key.Counter}).
		OrderBy("counter DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return models.StateKey{}, nil, errors.Join(ErrBuildingSQLQuery, err)
	}

	var (
		counter int64
		data    []byte
	)
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&counter, &data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.StateKey{}, nil, ErrStateNotFound
		}
		return models.StateKey{}, nil, r.db.wrap(ErrExecutingQuery, "get newest state", err)
	}
	return key.WithCounter(counter), data, nil
}

func (r *stateRepository) CleanStates(ctx context.Context, key models.StateKey) error {
	query, args, err := r.db.builder.
		Delete(statesTable).
		Where(keyEq(key)).
		Where(sq.Lt{"counter": key.Counter}).
		ToSql()
	if err != nil {
		return errors.Join(ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		return r.db.wrap(ErrExecutingStatement, "clean states", err)
	}
	return nil
}

func (r *stateRepository) DeleteStates(ctx context.Context, deviceID string, stateType models.StateType, key string) error {
	query, args, err := r.db.builder.
		Delete(statesTable).
		Where(sq.Eq{"device_id": deviceID, "state_type": string(stateType), "state_key": key}).
		ToSql()
	if err != nil {
		return errors.Join(ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		return r.db.wrap(ErrExecutingStatement, "delete states", err)
	}
	return nil
}

func (r *stateRepository) ListKeys(ctx context.Context, deviceID string, stateType models.StateType) ([]string, error) {
	query, args, err := r.db.builder.
		Select("DISTINCT state_key").
		From(statesTable).
		Where(sq.Eq{"device_id": deviceID, "state_type": string(stateType)}).
		OrderBy("state_key").
		ToSql()
	if err != nil {
		return nil, errors.Join(ErrBuildingSQLQuery, err)
	}

	return r.queryStrings(ctx, "list keys", query, args)
}

func (r *stateRepository) ListIdleDevices(ctx context.Context, before time.Time) ([]string, error) {
	query, args, err := r.db.builder.
		Select("device_id").
		From(statesTable).
		Where(sq.Eq{"state_type": string(models.StateTypeDevice)}).
		Where(sq.Lt{"updated_at": before.UTC()}).
		OrderBy("device_id").
		ToSql()
	if err != nil {
		return nil, errors.Join(ErrBuildingSQLQuery, err)
	}

	return r.queryStrings(ctx, "list idle devices", query, args)
}

func (r *stateRepository) DeleteDevice(ctx context.Context, deviceID string) error {
	query, args, err := r.db.builder.
		Delete(statesTable).
		Where(sq.Eq{"device_id": deviceID}).
		ToSql()
	if err != nil {
		return errors.Join(ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		return r.db.wrap(ErrExecutingStatement, "delete device", err)
	}
	return nil
}

func (r *stateRepository) queryStrings(ctx context.Context, op, query string, args []any) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, r.db.wrap(ErrExecutingQuery, op, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err = rows.Scan(&s); err != nil {
			return nil, errors.Join(ErrScanningRows, err)
		}
		out = append(out, s)
	}
	if err = rows.Err(); err != nil {
		return nil, r.db.wrap(ErrScanningRows, op, err)
	}
	return out, nil
}

func keyEq(key models.StateKey) sq.Eq {
	return sq.Eq{
		"device_id":  key.DeviceID,
		"state_type": string(key.Type),
		"state_key":  key.Key,
	}
}
