// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

package models

import "time"

// SyncStatus is the persisted, process-wide state of the sync pass lifecycle.
// It is reset on cache clear, mutated at every checkpoint during a pass, and
// survives process restarts so that a pass interrupted by termination can be
// detected (Running=true with a stale LastHeartbeatAt) and recovered.
type SyncStatus struct {
	// PassID identifies the current (or most recent) pass for log correlation.
	PassID string `json:"pass_id,omitempty"`

	// TotalCount is the number of followed accounts in the current pass.
	TotalCount int `json:"total_count"`

	// SyncedCount is the number of accounts processed so far, counting both
	// successful and failed per-account fetches.
	SyncedCount int `json:"synced_count"`

	Running         bool      `json:"running"`
	LastHeartbeatAt time.Time `json:"last_heartbeat_at"`

	LastSyncCompletedAt time.Time `json:"last_sync_completed_at"`

	// Errors accumulates per-account and top-level failure descriptions for
	// the current pass. Cleared at pass start. Never contains credentials.
	Errors []string `json:"errors,omitempty"`
}

// HeartbeatFresh reports whether the last heartbeat is younger than threshold
// at the given instant. A running status with a stale heartbeat is a leftover
// lock from a terminated process and may be cleared by the next pass attempt.
func (s SyncStatus) HeartbeatFresh(now time.Time, threshold time.Duration) bool {
	return now.Sub(s.LastHeartbeatAt) <= threshold
}
