// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blocklens/blocklens/internal/bloom"
	"github.com/blocklens/blocklens/internal/logger"
	"github.com/blocklens/blocklens/models"
)

func newTestCacheStore() CacheStore {
	return NewBlockCacheStore(NewMemoryKV(0), logger.Nop())
}

func TestBlockCacheStore_SnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	cs := newTestCacheStore()

	_, found, err := cs.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.False(t, found)

	f := bloom.New(10, bloom.Params{})
	f.Add("did:plc:target")

	snapshot := cs.CreateEmpty("did:plc:owner")
	snapshot.FollowedAccounts = append(snapshot.FollowedAccounts, models.FollowedAccount{
		ID: "did:plc:friend", Handle: "friend.example.test",
	})
	snapshot.Entries["did:plc:friend"] = models.AccountBlockCacheEntry{
		ID:               "did:plc:friend",
		Handle:           "friend.example.test",
		ProbabilisticSet: f,
		BlockCount:       1,
		LastSyncedAt:     time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, cs.SaveSnapshot(ctx, snapshot))

	loaded, found, err := cs.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "did:plc:owner", loaded.OwnerID)
	require.Len(t, loaded.Entries, 1)
	assert.True(t, loaded.Entries["did:plc:friend"].ProbabilisticSet.MightContain("did:plc:target"))
}

func TestBlockCacheStore_SaveSnapshotCapacityPassthrough(t *testing.T) {
	ctx := context.Background()
	cs := NewBlockCacheStore(NewMemoryKV(16), logger.Nop())

	snapshot := cs.CreateEmpty("did:plc:owner")
	err := cs.SaveSnapshot(ctx, snapshot)
	require.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestBlockCacheStore_StatusRoundTrip(t *testing.T) {
	ctx := context.Background()
	cs := newTestCacheStore()

	status, err := cs.LoadStatus(ctx)
	require.NoError(t, err)
	assert.False(t, status.Running)
	assert.Zero(t, status.TotalCount)

	saved := models.SyncStatus{
		PassID:          "pass-1",
		TotalCount:      42,
		SyncedCount:     17,
		Running:         true,
		LastHeartbeatAt: time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
		Errors:          []string{"fetch blocks for did:plc:flaky: timeout"},
	}
	require.NoError(t, cs.SaveStatus(ctx, saved))

	status, err = cs.LoadStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, status)
}

func TestBlockCacheStore_AuthRoundTrip(t *testing.T) {
	ctx := context.Background()
	cs := newTestCacheStore()

	_, found, err := cs.LoadAuth(ctx)
	require.NoError(t, err)
	require.False(t, found)

	auth := models.AuthContext{
		SubjectID:        "did:plc:owner",
		AccessCredential: "opaque-token",
		ServiceOrigin:    "https://pds.example.test",
	}
	require.NoError(t, cs.SaveAuth(ctx, auth))

	loaded, found, err := cs.LoadAuth(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, auth, loaded)
}

func TestBlockCacheStore_ClearKeepsAuth(t *testing.T) {
	ctx := context.Background()
	cs := newTestCacheStore()

	require.NoError(t, cs.SaveSnapshot(ctx, cs.CreateEmpty("did:plc:owner")))
	require.NoError(t, cs.SaveStatus(ctx, models.SyncStatus{TotalCount: 5}))
	require.NoError(t, cs.SaveAuth(ctx, models.AuthContext{
		SubjectID: "did:plc:owner", AccessCredential: "tok",
	}))

	require.NoError(t, cs.Clear(ctx))

	_, found, err := cs.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	status, err := cs.LoadStatus(ctx)
	require.NoError(t, err)
	assert.Zero(t, status.TotalCount)
	assert.False(t, status.Running)

	_, found, err = cs.LoadAuth(ctx)
	require.NoError(t, err)
	assert.True(t, found, "auth context must survive a cache clear")
}
