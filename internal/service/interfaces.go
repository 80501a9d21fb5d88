// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

// Package service implements the engine's business logic: the sync
// orchestrator that rebuilds the block cache from the remote graph service,
// the lookup service that answers "who blocks whom" questions from the cache,
// and the background job that schedules sync passes.
package service

import (
	"context"

	"github.com/blocklens/blocklens/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// SyncService owns the cache lifecycle: credentials, the synchronization
// pass, status reporting, and cache reset.
type SyncService interface {
	// SetAuth stores the credentials the engine syncs with. When the subject
	// differs from the current snapshot's owner the cache is invalidated so
	// one owner's data never answers another owner's lookups. A missing
	// SubjectID is recovered from the access credential's subject claim.
	SetAuth(ctx context.Context, auth models.AuthContext) error

	// RunPass executes one full synchronization pass: refresh the follow
	// list, fetch every followed account's block list in rate-limited
	// batches, rebuild the probabilistic sets, and persist the snapshot.
	// Without stored credentials the pass is a silent no-op. A pass already
	// running (fresh heartbeat) makes RunPass return immediately; a stale
	// heartbeat is treated as a leftover lock and cleared.
	RunPass(ctx context.Context) error

	// Status returns the persisted pass status (zero value before any pass).
	Status(ctx context.Context) (models.SyncStatus, error)

	// ClearCache wipes the snapshot and the sync status, keeping the stored
	// credentials so the next pass can rebuild from scratch.
	ClearCache(ctx context.Context) error
}

// LookupService answers block-relationship questions about a target profile
// from the perspective of the cache owner's follow list.
type LookupService interface {
	// Candidates returns followed accounts whose cached probabilistic set
	// contains targetID. The answer is immediate and may include false
	// positives, never false negatives. Returns [ErrCacheNotReady] before
	// the first completed pass.
	Candidates(ctx context.Context, targetID string) ([]models.FollowedAccount, error)

	// Verify re-fetches the current block list of each candidate and returns
	// only those that really block targetID. Candidates outside the followed
	// set are ignored.
	Verify(ctx context.Context, targetID string, candidateIDs []string) ([]models.FollowedAccount, error)

	// Lookup combines both directions for a target: probabilistic
	// blocked-by candidates from the cache, plus the exact list of followed
	// accounts the target itself blocks (one fresh fetch).
	Lookup(ctx context.Context, targetID string) (models.LookupResult, error)

	// ProfileBlocks returns the target's raw public block list.
	ProfileBlocks(ctx context.Context, targetID string) ([]string, error)
}

// SyncJob schedules sync passes in the background: periodically on a ticker
// and on demand via Trigger.
type SyncJob interface {
	// Start launches the background loop. Calling Start on a running job
	// restarts it.
	Start(ctx context.Context)

	// Trigger requests an immediate pass without waiting for the ticker.
	// Coalesces with an already pending trigger.
	Trigger()

	// Stop cancels the loop and blocks until it has exited. Safe to call on
	// a stopped job.
	Stop()
}
