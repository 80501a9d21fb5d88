// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/blocklens/blocklens/internal/adapter"
	"github.com/blocklens/blocklens/internal/bloom"
	"github.com/blocklens/blocklens/internal/config"
	"github.com/blocklens/blocklens/internal/logger"
	"github.com/blocklens/blocklens/internal/store"
	"github.com/blocklens/blocklens/models"
)

type syncService struct {
	cacheStore store.CacheStore
	client     adapter.ProtocolClient
	guard      store.Guard
	cfg        config.Sync
	bloom      bloom.Params

	logger *logger.Logger
	now    func() time.Time

	// mu is the in-process pass lock. The persisted status guards against
	// other processes; mu guards against the ticker and a manual trigger
	// racing inside this one.
	mu sync.Mutex
}

// NewSyncService wires the sync orchestrator.
func NewSyncService(cacheStore store.CacheStore, client adapter.ProtocolClient, cfgSync config.Sync, cfgCache config.Cache, log *logger.Logger) SyncService {
	return &syncService{
		cacheStore: cacheStore,
		client:     client,
		guard: store.Guard{
			CeilingBytes:   cfgCache.QuotaCeilingBytes,
			ProactiveRatio: cfgCache.ProactivePruneRatio,
		},
		cfg: cfgSync,
		bloom: bloom.Params{
			BitsPerElement: cfgCache.BloomBitsPerElement,
			HashCount:      cfgCache.BloomHashCount,
		},
		logger: log,
		now:    time.Now,
	}
}

func (s *syncService) SetAuth(ctx context.Context, auth models.AuthContext) error {
	if auth.SubjectID == "" {
		subject, err := subjectFromCredential(auth.AccessCredential)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidAuth, err)
		}
		auth.SubjectID = subject
	}
	if !auth.Valid() {
		return ErrInvalidAuth
	}

	snapshot, found, err := s.cacheStore.LoadSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot on auth change: %w", err)
	}
	if found && snapshot.OwnerID != auth.SubjectID {
		s.logger.Info().
			Str("previous_owner", snapshot.OwnerID).
			Str("new_owner", auth.SubjectID).
			Msg("cache owner changed, invalidating cache")
		if err = s.cacheStore.Clear(ctx); err != nil {
			return fmt.Errorf("invalidate cache on owner change: %w", err)
		}
	}

	if err = s.cacheStore.SaveAuth(ctx, auth); err != nil {
		return fmt.Errorf("save auth context: %w", err)
	}
	s.client.SetAuth(auth)

	return nil
}

func (s *syncService) Status(ctx context.Context) (models.SyncStatus, error) {
	return s.cacheStore.LoadStatus(ctx)
}

func (s *syncService) ClearCache(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cacheStore.Clear(ctx); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	s.logger.Info().Msg("block cache cleared")

	return nil
}

// RunPass implements [SyncService]. The pass is checkpointed: the snapshot and
// status are persisted every few batches so an interrupted pass loses at most
// that much work.
func (s *syncService) RunPass(ctx context.Context) (err error) {
	if !s.mu.TryLock() {
		s.logger.Debug().Msg("sync pass already running in process, skipping")
		return nil
	}
	defer s.mu.Unlock()

	auth, found, err := s.cacheStore.LoadAuth(ctx)
	if err != nil {
		return fmt.Errorf("load auth for pass: %w", err)
	}
	if !found || !auth.Valid() {
		s.logger.Debug().Msg("no credentials stored, skipping sync pass")
		return nil
	}
	s.client.SetAuth(auth)

	status, err := s.cacheStore.LoadStatus(ctx)
	if err != nil {
		return fmt.Errorf("load status for pass: %w", err)
	}
	if status.Running {
		if status.HeartbeatFresh(s.now(), s.cfg.StaleLockThreshold) {
			s.logger.Debug().Str("pass_id", status.PassID).Msg("another sync pass is running, skipping")
			return nil
		}
		s.logger.Warn().
			Str("pass_id", status.PassID).
			Time("last_heartbeat_at", status.LastHeartbeatAt).
			Msg("stale sync lock detected, taking over")
	}

	snapshot, found, err := s.cacheStore.LoadSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot for pass: %w", err)
	}
	if !found || snapshot.OwnerID != auth.SubjectID {
		snapshot = s.cacheStore.CreateEmpty(auth.SubjectID)
	}

	follows, err := s.fetchAllFollows(ctx, auth.SubjectID)
	if err != nil {
		return s.failPass(ctx, status, fmt.Errorf("fetch follow list: %w", err))
	}
	snapshot.FollowedAccounts = follows

	if s.guard.NearCapacity(snapshot) {
		pruned := s.guard.Prune(snapshot, int64(s.guard.ProactiveRatio*float64(s.guard.CeilingBytes)))
		// Persist right away so the prune survives a crash before the first
		// checkpoint.
		switch err = s.cacheStore.SaveSnapshot(ctx, snapshot); {
		case err == nil:
		case errors.Is(err, store.ErrCapacityExceeded):
			s.logger.Warn().Err(err).Msg("pruned snapshot still over capacity, deferring to checkpoints")
		default:
			return fmt.Errorf("persist pruned snapshot: %w", err)
		}
		s.logger.Info().Int("pruned", pruned).Msg("proactively pruned cache entries before pass")
	}

	status = models.SyncStatus{
		PassID:          uuid.NewString(),
		TotalCount:      len(follows),
		Running:         true,
		LastHeartbeatAt: s.now(),

		LastSyncCompletedAt: status.LastSyncCompletedAt,
	}
	if err = s.cacheStore.SaveStatus(ctx, status); err != nil {
		return fmt.Errorf("persist pass start: %w", err)
	}

	log := s.logger.GetChildLogger()
	log.Logger = log.With().Str("pass_id", status.PassID).Logger()
	log.Info().Int("total", status.TotalCount).Msg("sync pass started")

	checkpointEvery := s.cfg.CheckpointEveryBatches
	if checkpointEvery <= 0 {
		checkpointEvery = 1
	}

	batches := chunkAccounts(follows, s.cfg.BatchSize)
	for i, batch := range batches {
		if i > 0 && s.cfg.InterBatchDelay > 0 {
			select {
			case <-ctx.Done():
				return s.failPass(ctx, status, ctx.Err())
			case <-time.After(s.cfg.InterBatchDelay):
			}
		}

		batchErrors := s.syncBatch(ctx, snapshot, batch)
		status.Errors = append(status.Errors, batchErrors...)
		status.SyncedCount += len(batch)
		status.LastHeartbeatAt = s.now()

		if (i+1)%checkpointEvery == 0 && i != len(batches)-1 {
			// A checkpoint that is still over capacity after the prune-and-retry
			// is a pass error, not a pass abort: later checkpoints may land once
			// further pruning has made room.
			switch err = s.checkpoint(ctx, snapshot, status); {
			case err == nil:
				log.Debug().Int("synced", status.SyncedCount).Msg("sync pass checkpoint")
			case errors.Is(err, store.ErrCapacityExceeded):
				status.Errors = append(status.Errors, fmt.Sprintf("checkpoint after batch %d: %v", i+1, err))
				log.Warn().Err(err).Int("batch", i+1).Msg("checkpoint did not land, continuing pass")
			default:
				return s.failPass(ctx, status, fmt.Errorf("checkpoint after batch %d: %w", i+1, err))
			}
		}

		if ctx.Err() != nil {
			return s.failPass(ctx, status, ctx.Err())
		}
	}

	snapshot.LastFullSyncAt = s.now()
	if err = s.persistSnapshot(ctx, snapshot); err != nil {
		if !errors.Is(err, store.ErrCapacityExceeded) {
			return s.failPass(ctx, status, fmt.Errorf("persist final snapshot: %w", err))
		}
		status.Errors = append(status.Errors, fmt.Sprintf("persist final snapshot: %v", err))
		log.Warn().Err(err).Msg("final snapshot did not land")
	}

	status.Running = false
	status.LastSyncCompletedAt = s.now()
	status.LastHeartbeatAt = status.LastSyncCompletedAt
	if err = s.cacheStore.SaveStatus(ctx, status); err != nil {
		return fmt.Errorf("persist pass completion: %w", err)
	}

	log.Info().
		Int("synced", status.SyncedCount).
		Int("entries", len(snapshot.Entries)).
		Int("errors", len(status.Errors)).
		Msg("sync pass completed")

	return nil
}

// fetchAllFollows pages through the subject's follow list and returns it with
// cross-page duplicates dropped, first occurrence wins.
func (s *syncService) fetchAllFollows(ctx context.Context, subjectID string) ([]models.FollowedAccount, error) {
	seen := make(map[string]struct{})
	follows := make([]models.FollowedAccount, 0)

	cursor := ""
	for {
		page, err := s.client.ListFollows(ctx, subjectID, cursor)
		if err != nil {
			return nil, err
		}
		for _, acc := range page.Items {
			if _, ok := seen[acc.ID]; ok {
				continue
			}
			seen[acc.ID] = struct{}{}
			follows = append(follows, acc)
		}
		if page.NextCursor == "" || len(page.Items) == 0 {
			return follows, nil
		}
		cursor = page.NextCursor
	}
}

// syncBatch fetches the block lists of one batch concurrently and rebuilds
// their cache entries. A failed fetch keeps the account's previous entry and
// is reported in the returned error strings; it never aborts the batch.
func (s *syncService) syncBatch(ctx context.Context, snapshot *models.CacheSnapshot, batch []models.FollowedAccount) []string {
	var (
		mu       sync.Mutex
		failures []string
		syncedAt = s.now()
		group    errgroup.Group
	)
	group.SetLimit(len(batch))

	for _, acc := range batch {
		group.Go(func() error {
			blocks, err := s.client.ListBlocks(ctx, acc.ID, "")

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				failures = append(failures, fmt.Sprintf("%s: %v", acc.ID, err))
				return nil
			}
			if len(blocks) == 0 {
				// Accounts that block nobody carry no entry at all.
				delete(snapshot.Entries, acc.ID)
				return nil
			}

			filter := bloom.New(len(blocks), s.bloom)
			for _, id := range blocks {
				filter.Add(id)
			}
			snapshot.Entries[acc.ID] = models.AccountBlockCacheEntry{
				ID:               acc.ID,
				Handle:           acc.Handle,
				DisplayName:      acc.DisplayName,
				AvatarRef:        acc.AvatarRef,
				ProbabilisticSet: filter,
				BlockCount:       len(blocks),
				LastSyncedAt:     syncedAt,
			}
			return nil
		})
	}
	_ = group.Wait()

	return failures
}

func (s *syncService) checkpoint(ctx context.Context, snapshot *models.CacheSnapshot, status models.SyncStatus) error {
	if err := s.persistSnapshot(ctx, snapshot); err != nil {
		return err
	}
	return s.cacheStore.SaveStatus(ctx, status)
}

// persistSnapshot saves the snapshot, pruning oldest entries and retrying
// once when the backing store reports it is full.
func (s *syncService) persistSnapshot(ctx context.Context, snapshot *models.CacheSnapshot) error {
	err := s.cacheStore.SaveSnapshot(ctx, snapshot)
	if err == nil || !errors.Is(err, store.ErrCapacityExceeded) {
		return err
	}

	pruned := s.guard.Prune(snapshot, s.guard.CeilingBytes)
	s.logger.Warn().Int("pruned", pruned).Msg("cache over capacity, pruned oldest entries")

	return s.cacheStore.SaveSnapshot(ctx, snapshot)
}

// failPass releases the persisted lock with the failure recorded, then
// returns the original error. Status persistence failures are logged, not
// returned, so the root cause survives.
func (s *syncService) failPass(ctx context.Context, status models.SyncStatus, cause error) error {
	status.Running = false
	status.LastHeartbeatAt = s.now()
	status.Errors = append(status.Errors, cause.Error())

	if err := s.cacheStore.SaveStatus(context.WithoutCancel(ctx), status); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist aborted pass status")
	}

	return cause
}

func chunkAccounts(accounts []models.FollowedAccount, size int) [][]models.FollowedAccount {
	if size <= 0 {
		size = 1
	}
	chunks := make([][]models.FollowedAccount, 0, (len(accounts)+size-1)/size)
	for start := 0; start < len(accounts); start += size {
		end := start + size
		if end > len(accounts) {
			end = len(accounts)
		}
		chunks = append(chunks, accounts[start:end])
	}
	return chunks
}
