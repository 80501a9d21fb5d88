// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

package store

import (
	"encoding/json"
	"time"

	"github.com/blocklens/blocklens/models"
)

// Guard estimates the serialized size of a cache snapshot and prunes oldest
// entries when the storage ceiling is approached or exceeded.
//
// The eviction policy is age-based (oldest LastSyncedAt first): entries are
// roughly uniform in size because the probabilistic sets are fixed-size, so
// evicting the least-recently-synced entry approximates a fair size-based
// policy without per-entry accounting.
type Guard struct {
	// CeilingBytes is the storage budget for the serialized snapshot.
	CeilingBytes int64

	// ProactiveRatio is the fraction of CeilingBytes at which [Guard.NearCapacity]
	// starts reporting true (e.g. 0.9).
	ProactiveRatio float64
}

// EstimateSize returns the size in bytes of the snapshot's serialized form.
func (g Guard) EstimateSize(snapshot *models.CacheSnapshot) int64 {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		// Snapshot values are plain data; marshaling cannot realistically
		// fail. Treat a failure as an oversized snapshot so pruning kicks in.
		return g.CeilingBytes + 1
	}
	return int64(len(payload))
}

// NearCapacity reports whether the snapshot has crossed the proactive-prune
// watermark.
func (g Guard) NearCapacity(snapshot *models.CacheSnapshot) bool {
	return float64(g.EstimateSize(snapshot)) > g.ProactiveRatio*float64(g.CeilingBytes)
}

// Prune removes entries with the oldest LastSyncedAt (ties broken by map
// iteration order) until the serialized snapshot fits under ceilingBytes or
// no entries remain. Returns the number of entries pruned.
func (g Guard) Prune(snapshot *models.CacheSnapshot, ceilingBytes int64) int {
	pruned := 0
	for g.EstimateSize(snapshot) > ceilingBytes && len(snapshot.Entries) > 0 {
		oldestID := ""
		var oldestAt time.Time
		for id, entry := range snapshot.Entries {
			if oldestID == "" || entry.LastSyncedAt.Before(oldestAt) {
				oldestID = id
				oldestAt = entry.LastSyncedAt
			}
		}
		delete(snapshot.Entries, oldestID)
		pruned++
	}

	return pruned
}
