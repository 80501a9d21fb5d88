// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

package store

import (
	"context"

	"github.com/blocklens/blocklens/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// KVStore is the durable key-value backing store the engine persists into.
// Implementations enforce a total-size quota: Set returns
// [ErrCapacityExceeded] when the write would exceed it.
type KVStore interface {
	// Get returns the value stored under key, with found=false (and no
	// error) when the key is absent.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set stores value under key, overwriting any previous value. Returns
	// [ErrCapacityExceeded] when the write would push total stored bytes
	// over the quota ceiling.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every key.
	Clear(ctx context.Context) error
}

// CacheStore is the typed persistence surface of the engine: the cache
// snapshot, the sync status, and the auth context, each stored under its own
// key in the backing [KVStore].
//
// No read-modify-write atomicity is guaranteed across concurrent callers;
// the engine serializes all snapshot mutations through the sync
// orchestrator's single logical pass.
type CacheStore interface {
	// LoadSnapshot returns the persisted snapshot, with found=false when no
	// snapshot has been saved yet.
	LoadSnapshot(ctx context.Context) (*models.CacheSnapshot, bool, error)

	// SaveSnapshot persists the snapshot. Propagates
	// [ErrCapacityExceeded] from the backing store untouched so the caller
	// can prune and retry.
	SaveSnapshot(ctx context.Context, snapshot *models.CacheSnapshot) error

	// CreateEmpty returns a fresh snapshot owned by ownerID. It does not
	// persist it.
	CreateEmpty(ownerID string) *models.CacheSnapshot

	// LoadStatus returns the persisted sync status, or a zero status when
	// none has been saved.
	LoadStatus(ctx context.Context) (models.SyncStatus, error)

	// SaveStatus persists the sync status.
	SaveStatus(ctx context.Context, status models.SyncStatus) error

	// LoadAuth returns the persisted auth context, with found=false when
	// the engine has no credentials (a steady state, not an error).
	LoadAuth(ctx context.Context) (models.AuthContext, bool, error)

	// SaveAuth persists the auth context.
	SaveAuth(ctx context.Context, auth models.AuthContext) error

	// Clear wipes the snapshot and the sync status. The auth context is
	// kept so a fresh pass can run right after.
	Clear(ctx context.Context) error
}
