// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

package service

import (
	"context"
	"fmt"

	"github.com/blocklens/blocklens/internal/adapter"
	"github.com/blocklens/blocklens/internal/logger"
	"github.com/blocklens/blocklens/internal/store"
	"github.com/blocklens/blocklens/models"
)

type lookupService struct {
	cacheStore store.CacheStore
	client     adapter.ProtocolClient
	logger     *logger.Logger
}

// NewLookupService wires the lookup service over the persisted cache and the
// protocol client used for exact verification.
func NewLookupService(cacheStore store.CacheStore, client adapter.ProtocolClient, log *logger.Logger) LookupService {
	return &lookupService{
		cacheStore: cacheStore,
		client:     client,
		logger:     log,
	}
}

// Candidates implements [LookupService]. It is pure cache work: no network
// calls, suitable for answering on every profile view.
func (l *lookupService) Candidates(ctx context.Context, targetID string) ([]models.FollowedAccount, error) {
	snapshot, err := l.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	return candidatesFromSnapshot(snapshot, targetID), nil
}

func candidatesFromSnapshot(snapshot *models.CacheSnapshot, targetID string) []models.FollowedAccount {
	candidates := make([]models.FollowedAccount, 0)
	for _, acc := range snapshot.FollowedAccounts {
		entry, ok := snapshot.Entries[acc.ID]
		if !ok || entry.ProbabilisticSet == nil {
			continue
		}
		if entry.ProbabilisticSet.MightContain(targetID) {
			candidates = append(candidates, acc)
		}
	}

	return candidates
}

// Verify implements [LookupService]. Each candidate costs one fresh block
// list fetch; a fetch failure drops the candidate from the confirmed set and
// is logged rather than failing the whole request.
func (l *lookupService) Verify(ctx context.Context, targetID string, candidateIDs []string) ([]models.FollowedAccount, error) {
	snapshot, err := l.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.FollowedAccount, len(snapshot.FollowedAccounts))
	for _, acc := range snapshot.FollowedAccounts {
		byID[acc.ID] = acc
	}

	confirmed := make([]models.FollowedAccount, 0, len(candidateIDs))
	for _, id := range candidateIDs {
		acc, followed := byID[id]
		if !followed {
			continue
		}

		blocks, err := l.client.ListBlocks(ctx, id, "")
		if err != nil {
			l.logger.Warn().Err(err).Str("candidate_id", id).Msg("candidate verification fetch failed")
			continue
		}
		for _, blocked := range blocks {
			if blocked == targetID {
				confirmed = append(confirmed, acc)
				break
			}
		}
	}

	return confirmed, nil
}

// Lookup reads the snapshot once so both directions of the answer come from
// the same cache state even when a sync checkpoint lands mid-request.
func (l *lookupService) Lookup(ctx context.Context, targetID string) (models.LookupResult, error) {
	snapshot, err := l.loadSnapshot(ctx)
	if err != nil {
		return models.LookupResult{}, err
	}

	blocking, err := l.blockingFollowed(ctx, snapshot, targetID)
	if err != nil {
		return models.LookupResult{}, err
	}

	return models.LookupResult{
		BlockedBy: candidatesFromSnapshot(snapshot, targetID),
		Blocking:  blocking,
	}, nil
}

func (l *lookupService) ProfileBlocks(ctx context.Context, targetID string) ([]string, error) {
	blocks, err := l.client.ListBlocks(ctx, targetID, "")
	if err != nil {
		return nil, fmt.Errorf("fetch profile blocks: %w", err)
	}
	return blocks, nil
}

// blockingFollowed fetches the target's own block list and intersects it with
// the followed-account set. The reverse direction needs no probabilistic set
// because it is a single fetch regardless of how many accounts are followed.
func (l *lookupService) blockingFollowed(ctx context.Context, snapshot *models.CacheSnapshot, targetID string) ([]models.FollowedAccount, error) {
	blocks, err := l.client.ListBlocks(ctx, targetID, "")
	if err != nil {
		return nil, fmt.Errorf("fetch target blocks: %w", err)
	}

	blocked := make(map[string]struct{}, len(blocks))
	for _, id := range blocks {
		blocked[id] = struct{}{}
	}

	blocking := make([]models.FollowedAccount, 0)
	for _, acc := range snapshot.FollowedAccounts {
		if _, ok := blocked[acc.ID]; ok {
			blocking = append(blocking, acc)
		}
	}

	return blocking, nil
}

func (l *lookupService) loadSnapshot(ctx context.Context) (*models.CacheSnapshot, error) {
	snapshot, found, err := l.cacheStore.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if !found {
		return nil, ErrCacheNotReady
	}
	return snapshot, nil
}
