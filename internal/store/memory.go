// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

package store

import (
	"context"
	"fmt"
	"sync"
)

type memoryKV struct {
	maxBytes int64

	mu    sync.RWMutex
	items map[string][]byte
}

// NewMemoryKV returns an in-memory [KVStore] with the same capacity
// semantics as the SQLite implementation. Used in tests and as a throwaway
// backing store when no durable file is configured.
func NewMemoryKV(maxBytes int64) KVStore {
	return &memoryKV{
		maxBytes: maxBytes,
		items:    make(map[string][]byte),
	}
}

func (m *memoryKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.items[key]
	if !ok {
		return nil, false, nil
	}
	return value, true, nil
}

func (m *memoryKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.maxBytes > 0 {
		var otherBytes int64
		for k, v := range m.items {
			if k == key {
				continue
			}
			otherBytes += int64(len(k)) + int64(len(v))
		}
		if otherBytes+int64(len(key))+int64(len(value)) > m.maxBytes {
			return fmt.Errorf("set %q (%d bytes): %w", key, len(value), ErrCapacityExceeded)
		}
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	m.items[key] = stored

	return nil
}

func (m *memoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, key)
	return nil
}

func (m *memoryKV) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = make(map[string][]byte)
	return nil
}
