// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

// Package cache defines a small generic cache interface so that in-memory
// caches (origin resolution, profile data) are injected rather than held as
// ambient global state. Implementations initialise empty at process start
// and are cleared explicitly on logout or cache reset.
package cache

import "time"

// Cache is a string-keyed in-memory cache. The interface is compatible with
// ristretto; other implementations may ignore cost.
type Cache[V any] interface {
	// Get retrieves a value from the cache.
	Get(key string) (V, bool)

	// Set stores a value with the given cost, returning true if the value
	// was accepted (admission may reject entries).
	Set(key string, value V, cost int64) bool

	// SetWithTTL stores a value that expires after ttl.
	SetWithTTL(key string, value V, cost int64, ttl time.Duration) bool

	// Clear drops every cached entry.
	Clear()
}
