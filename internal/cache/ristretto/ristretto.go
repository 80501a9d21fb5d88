// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

// Package ristretto adapts dgraph-io/ristretto to the [cache.Cache]
// interface.
package ristretto

import (
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/blocklens/blocklens/internal/cache"
)

type Cache[V any] struct {
	cache *ristretto.Cache[string, V]
}

func (rc *Cache[V]) Get(key string) (V, bool) {
	return rc.cache.Get(key)
}

func (rc *Cache[V]) Set(key string, value V, cost int64) bool {
	return rc.cache.Set(key, value, cost)
}

func (rc *Cache[V]) SetWithTTL(key string, value V, cost int64, ttl time.Duration) bool {
	return rc.cache.SetWithTTL(key, value, cost, ttl)
}

func (rc *Cache[V]) Clear() {
	rc.cache.Clear()
}

// New returns a ristretto-backed cache sized for a modest working set
// (origin records are tiny; the follow graph rarely exceeds a few thousand
// accounts).
func New[V any]() (cache.Cache[V], error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, V]{
		NumCounters: 1e5,
		MaxCost:     1 << 24, // 16MB
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}

	return &Cache[V]{cache: c}, nil
}
