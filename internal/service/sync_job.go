// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

package service

import (
	"context"
	"sync"
	"time"

	"github.com/blocklens/blocklens/internal/logger"
)

type syncJob struct {
	syncService SyncService
	interval    time.Duration
	logger      *logger.Logger

	trigger chan struct{}

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncJob creates a job that runs a sync pass every interval and whenever
// Trigger is called. An interval of zero or less defaults to one hour. The
// job is idle until Start is called.
func NewSyncJob(syncService SyncService, interval time.Duration, log *logger.Logger) SyncJob {
	if interval <= 0 {
		interval = time.Hour
	}
	return &syncJob{
		syncService: syncService,
		interval:    interval,
		logger:      log,
		trigger:     make(chan struct{}, 1),
	}
}

// Start implements SyncJob. It stops any previously running loop, then
// launches a background goroutine that runs RunPass on every tick and on
// every Trigger. The goroutine exits when ctx is cancelled or Stop is called.
func (j *syncJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
			case <-j.trigger:
			}

			if err := j.syncService.RunPass(jobCtx); err != nil {
				j.logger.Error().Err(err).Msg("sync pass failed")
			}
		}
	}()
}

// Trigger implements SyncJob. A trigger arriving while one is already pending
// coalesces with it.
func (j *syncJob) Trigger() {
	select {
	case j.trigger <- struct{}{}:
	default:
	}
}

// Stop implements SyncJob. It cancels the background goroutine's context and
// blocks until the goroutine has fully exited. Safe to call when the job is
// not running.
func (j *syncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
