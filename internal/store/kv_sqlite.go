// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/blocklens/blocklens/internal/logger"
)

// KVOverheadAllowanceBytes is the slack added on top of the snapshot quota
// ceiling when sizing the backing store, so that the small metadata keys
// (sync status, auth context) never compete with the snapshot for quota.
const KVOverheadAllowanceBytes = 64 << 10

type sqliteKV struct {
	*DB
	maxBytes int64
	logger   *logger.Logger
}

// NewSQLiteKV returns a [KVStore] over the kv table of db. maxBytes bounds
// the total stored bytes (keys + values); zero means unbounded.
func NewSQLiteKV(db *DB, maxBytes int64, log *logger.Logger) KVStore {
	return &sqliteKV{
		DB:       db,
		maxBytes: maxBytes,
		logger:   log,
	}
}

func (s *sqliteKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	log := logger.FromContext(ctx)

	var value []byte
	err := s.DB.QueryRowContext(ctx, getKVValue, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "sqliteKV.Get").
			Str("key", key).
			Msg("failed to query kv value")
		return nil, false, fmt.Errorf("%w: get %q: %w", ErrExecutingQuery, key, err)
	}

	return value, true, nil
}

func (s *sqliteKV) Set(ctx context.Context, key string, value []byte) error {
	log := logger.FromContext(ctx)

	if s.maxBytes > 0 {
		var otherBytes int64
		err := s.DB.QueryRowContext(ctx, totalKVBytesExcluding, key).Scan(&otherBytes)
		if err != nil {
			log.Err(err).
				Str("func", "sqliteKV.Set").
				Str("key", key).
				Msg("failed to measure stored bytes")
			return fmt.Errorf("%w: measure stored bytes: %w", ErrExecutingQuery, err)
		}

		if otherBytes+int64(len(key))+int64(len(value)) > s.maxBytes {
			return fmt.Errorf("set %q (%d bytes): %w", key, len(value), ErrCapacityExceeded)
		}
	}

	if _, err := s.DB.ExecContext(ctx, upsertKVValue, key, value); err != nil {
		log.Err(err).
			Str("func", "sqliteKV.Set").
			Str("key", key).
			Msg("failed to upsert kv value")
		return fmt.Errorf("%w: set %q: %w", ErrExecutingQuery, key, err)
	}

	return nil
}

func (s *sqliteKV) Delete(ctx context.Context, key string) error {
	if _, err := s.DB.ExecContext(ctx, deleteKVValue, key); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "sqliteKV.Delete").
			Str("key", key).
			Msg("failed to delete kv value")
		return fmt.Errorf("%w: delete %q: %w", ErrExecutingQuery, key, err)
	}

	return nil
}

func (s *sqliteKV) Clear(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, clearKV); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "sqliteKV.Clear").
			Msg("failed to clear kv table")
		return fmt.Errorf("%w: clear: %w", ErrExecutingQuery, err)
	}

	return nil
}
