// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

package store

const (
	getKVValue = `SELECT value FROM kv WHERE key = ?`

	upsertKVValue = `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`

	deleteKVValue = `DELETE FROM kv WHERE key = ?`

	clearKV = `DELETE FROM kv`

	// totalKVBytesExcluding measures the stored size of every other key so a
	// prospective write can be checked against the quota ceiling.
	totalKVBytesExcluding = `
		SELECT COALESCE(SUM(LENGTH(key) + LENGTH(value)), 0) FROM kv WHERE key != ?`
)
