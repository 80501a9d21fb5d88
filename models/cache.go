// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

package models

import (
	"time"

	"github.com/blocklens/blocklens/internal/bloom"
)

// AccountBlockCacheEntry is the cached, compressed block list of a single
// followed account. Entries exist only for accounts with at least one block:
// accounts that block nobody are omitted from the cache entirely, which keeps
// the snapshot small because most accounts block no one.
type AccountBlockCacheEntry struct {
	ID          string `json:"id"`
	Handle      string `json:"handle"`
	DisplayName string `json:"display_name,omitempty"`
	AvatarRef   string `json:"avatar_ref,omitempty"`

	// ProbabilisticSet holds the account's block list compressed into a
	// bloom filter. Membership tests may produce false positives, never
	// false negatives; exact answers require re-fetching the block list.
	ProbabilisticSet *bloom.Filter `json:"probabilistic_set"`

	// BlockCount is the number of ids that were added to ProbabilisticSet.
	BlockCount int `json:"block_count"`

	// LastSyncedAt is when the entry was last rebuilt from a full fetch.
	// Quota pruning evicts entries in ascending LastSyncedAt order.
	LastSyncedAt time.Time `json:"last_synced_at"`
}

// CacheSnapshot is the complete persisted state of the block cache for one
// owner. Every key in Entries referred to an id in FollowedAccounts at the
// time it was written, but the follow list may diverge later (unfollows);
// stale entries are only removed by quota pruning or a full cache reset.
type CacheSnapshot struct {
	OwnerID          string                            `json:"owner_id"`
	FollowedAccounts []FollowedAccount                 `json:"followed_accounts"`
	Entries          map[string]AccountBlockCacheEntry `json:"entries"`
	LastFullSyncAt   time.Time                         `json:"last_full_sync_at"`
}

// NewCacheSnapshot returns an empty snapshot owned by ownerID.
func NewCacheSnapshot(ownerID string) *CacheSnapshot {
	return &CacheSnapshot{
		OwnerID:          ownerID,
		FollowedAccounts: make([]FollowedAccount, 0),
		Entries:          make(map[string]AccountBlockCacheEntry),
	}
}

// FollowedIDSet returns the ids of FollowedAccounts as a set.
func (s *CacheSnapshot) FollowedIDSet() map[string]struct{} {
	ids := make(map[string]struct{}, len(s.FollowedAccounts))
	for _, acc := range s.FollowedAccounts {
		ids[acc.ID] = struct{}{}
	}
	return ids
}
