// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/blocklens/blocklens/internal/logger"
	"github.com/blocklens/blocklens/models"
)

// Keys under which the engine's state lives in the backing store.
const (
	keySnapshot = "cache:snapshot"
	keyStatus   = "sync:status"
	keyAuth     = "auth:context"
)

type blockCacheStore struct {
	kv     KVStore
	logger *logger.Logger
}

// NewBlockCacheStore returns a [CacheStore] persisting into kv.
func NewBlockCacheStore(kv KVStore, log *logger.Logger) CacheStore {
	return &blockCacheStore{
		kv:     kv,
		logger: log,
	}
}

func (s *blockCacheStore) LoadSnapshot(ctx context.Context) (*models.CacheSnapshot, bool, error) {
	payload, found, err := s.kv.Get(ctx, keySnapshot)
	if err != nil {
		return nil, false, fmt.Errorf("load snapshot: %w", err)
	}
	if !found {
		return nil, false, nil
	}

	var snapshot models.CacheSnapshot
	if err = json.Unmarshal(payload, &snapshot); err != nil {
		return nil, false, fmt.Errorf("decode snapshot: %w", err)
	}
	if snapshot.Entries == nil {
		snapshot.Entries = make(map[string]models.AccountBlockCacheEntry)
	}

	return &snapshot, true, nil
}

func (s *blockCacheStore) SaveSnapshot(ctx context.Context, snapshot *models.CacheSnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	// ErrCapacityExceeded passes through untouched: the orchestrator prunes
	// and retries on it.
	if err = s.kv.Set(ctx, keySnapshot, payload); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	return nil
}

func (s *blockCacheStore) CreateEmpty(ownerID string) *models.CacheSnapshot {
	return models.NewCacheSnapshot(ownerID)
}

func (s *blockCacheStore) LoadStatus(ctx context.Context) (models.SyncStatus, error) {
	payload, found, err := s.kv.Get(ctx, keyStatus)
	if err != nil {
		return models.SyncStatus{}, fmt.Errorf("load status: %w", err)
	}
	if !found {
		return models.SyncStatus{}, nil
	}

	var status models.SyncStatus
	if err = json.Unmarshal(payload, &status); err != nil {
		return models.SyncStatus{}, fmt.Errorf("decode status: %w", err)
	}

	return status, nil
}

func (s *blockCacheStore) SaveStatus(ctx context.Context, status models.SyncStatus) error {
	payload, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("encode status: %w", err)
	}

	if err = s.kv.Set(ctx, keyStatus, payload); err != nil {
		return fmt.Errorf("save status: %w", err)
	}

	return nil
}

func (s *blockCacheStore) LoadAuth(ctx context.Context) (models.AuthContext, bool, error) {
	payload, found, err := s.kv.Get(ctx, keyAuth)
	if err != nil {
		return models.AuthContext{}, false, fmt.Errorf("load auth: %w", err)
	}
	if !found {
		return models.AuthContext{}, false, nil
	}

	var auth models.AuthContext
	if err = json.Unmarshal(payload, &auth); err != nil {
		return models.AuthContext{}, false, fmt.Errorf("decode auth: %w", err)
	}

	return auth, true, nil
}

func (s *blockCacheStore) SaveAuth(ctx context.Context, auth models.AuthContext) error {
	payload, err := json.Marshal(auth)
	if err != nil {
		return fmt.Errorf("encode auth: %w", err)
	}

	if err = s.kv.Set(ctx, keyAuth, payload); err != nil {
		return fmt.Errorf("save auth: %w", err)
	}

	return nil
}

func (s *blockCacheStore) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, keySnapshot); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	if err := s.kv.Delete(ctx, keyStatus); err != nil {
		return fmt.Errorf("clear status: %w", err)
	}

	return nil
}
