// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/blocklens/blocklens/internal/logger"
	"github.com/blocklens/blocklens/internal/mock"
)

func TestSyncJob_TriggerRunsPass(t *testing.T) {
	ctrl := gomock.NewController(t)
	syncService := mock.NewMockSyncService(ctrl)

	ran := make(chan struct{}, 1)
	syncService.EXPECT().RunPass(gomock.Any()).
		DoAndReturn(func(context.Context) error {
			ran <- struct{}{}
			return nil
		})

	job := NewSyncJob(syncService, time.Hour, logger.Nop())
	job.Start(context.Background())
	defer job.Stop()

	job.Trigger()

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("triggered pass did not run")
	}
}

func TestSyncJob_TickerRunsPass(t *testing.T) {
	ctrl := gomock.NewController(t)
	syncService := mock.NewMockSyncService(ctrl)

	ran := make(chan struct{}, 16)
	syncService.EXPECT().RunPass(gomock.Any()).
		DoAndReturn(func(context.Context) error {
			select {
			case ran <- struct{}{}:
			default:
			}
			return nil
		}).MinTimes(1)

	job := NewSyncJob(syncService, 10*time.Millisecond, logger.Nop())
	job.Start(context.Background())
	defer job.Stop()

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled pass did not run")
	}
}

func TestSyncJob_StopWithoutStartIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	job := NewSyncJob(mock.NewMockSyncService(ctrl), time.Hour, logger.Nop())

	require.NotPanics(t, func() {
		job.Stop()
		job.Stop()
	})
}

func TestSyncJob_ContextCancelStopsLoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	syncService := mock.NewMockSyncService(ctrl)
	syncService.EXPECT().RunPass(gomock.Any()).Return(nil).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	job := NewSyncJob(syncService, 10*time.Millisecond, logger.Nop())
	job.Start(ctx)

	cancel()
	job.Stop() // must not hang once the context is gone
}
