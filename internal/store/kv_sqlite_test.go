// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

package store

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blocklens/blocklens/internal/logger"
)

func newMockKV(t *testing.T, maxBytes int64) (KVStore, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db := &DB{DB: conn, logger: logger.Nop()}
	return NewSQLiteKV(db, maxBytes, logger.Nop()), mock
}

func TestSQLiteKV_GetFound(t *testing.T) {
	kv, mock := newMockKV(t, 0)

	mock.ExpectQuery(regexp.QuoteMeta(getKVValue)).
		WithArgs("cache:snapshot").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`{"owner_id":"x"}`)))

	value, found, err := kv.Get(context.Background(), "cache:snapshot")
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `{"owner_id":"x"}`, string(value))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteKV_GetAbsent(t *testing.T) {
	kv, mock := newMockKV(t, 0)

	mock.ExpectQuery(regexp.QuoteMeta(getKVValue)).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, found, err := kv.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, found)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteKV_SetUnbounded(t *testing.T) {
	kv, mock := newMockKV(t, 0)

	mock.ExpectExec("INSERT INTO kv").
		WithArgs("k", []byte("v")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, kv.Set(context.Background(), "k", []byte("v")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteKV_SetOverQuota(t *testing.T) {
	kv, mock := newMockKV(t, 100)

	mock.ExpectQuery(regexp.QuoteMeta(totalKVBytesExcluding)).
		WithArgs("k").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(int64(90)))

	err := kv.Set(context.Background(), "k", make([]byte, 50))
	require.ErrorIs(t, err, ErrCapacityExceeded)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteKV_SetWithinQuota(t *testing.T) {
	kv, mock := newMockKV(t, 1000)

	mock.ExpectQuery(regexp.QuoteMeta(totalKVBytesExcluding)).
		WithArgs("k").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(int64(10)))
	mock.ExpectExec("INSERT INTO kv").
		WithArgs("k", []byte("value")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, kv.Set(context.Background(), "k", []byte("value")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteKV_DeleteAndClear(t *testing.T) {
	kv, mock := newMockKV(t, 0)

	mock.ExpectExec("DELETE FROM kv WHERE key").
		WithArgs("k").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM kv").
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, kv.Delete(context.Background(), "k"))
	require.NoError(t, kv.Clear(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryKV_QuotaSemanticsMatch(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV(20)

	require.NoError(t, kv.Set(ctx, "a", make([]byte, 10))) // 11 bytes total
	err := kv.Set(ctx, "b", make([]byte, 15))
	require.ErrorIs(t, err, ErrCapacityExceeded)

	// overwriting the same key only counts the new value
	require.NoError(t, kv.Set(ctx, "a", make([]byte, 19)))
}
