// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

package store

import "errors"

var (
	// ErrCapacityExceeded is returned by [KVStore.Set] when the write would
	// push the total stored bytes over the store's quota ceiling. Callers
	// recover by pruning the snapshot and retrying once.
	ErrCapacityExceeded = errors.New("storage capacity exceeded")

	// ErrExecutingQuery wraps low-level database failures from the SQLite
	// key-value store.
	ErrExecutingQuery = errors.New("error executing query")

	// ErrScanningRow wraps row scan failures from the SQLite key-value store.
	ErrScanningRow = errors.New("error scanning row")
)
