// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/blocklens/blocklens/internal/adapter"
	"github.com/blocklens/blocklens/internal/bloom"
	"github.com/blocklens/blocklens/internal/logger"
	"github.com/blocklens/blocklens/internal/mock"
	"github.com/blocklens/blocklens/internal/store"
	"github.com/blocklens/blocklens/models"
)

func newLookupFixture(t *testing.T) (LookupService, store.CacheStore, *mock.MockProtocolClient) {
	t.Helper()

	ctrl := gomock.NewController(t)
	client := mock.NewMockProtocolClient(ctrl)
	cacheStore := store.NewBlockCacheStore(store.NewMemoryKV(0), logger.Nop())

	return NewLookupService(cacheStore, client, logger.Nop()), cacheStore, client
}

func entryWithBlocks(id string, blocks ...string) models.AccountBlockCacheEntry {
	filter := bloom.New(len(blocks), bloom.Params{})
	for _, b := range blocks {
		filter.Add(b)
	}
	return models.AccountBlockCacheEntry{
		ID:               id,
		Handle:           id + ".test",
		ProbabilisticSet: filter,
		BlockCount:       len(blocks),
		LastSyncedAt:     time.Now(),
	}
}

// seedSnapshot persists a snapshot with accounts a (blocks the target) and b
// (blocks nobody, so no entry).
func seedSnapshot(t *testing.T, cacheStore store.CacheStore) {
	t.Helper()

	snapshot := models.NewCacheSnapshot(testOwner)
	snapshot.FollowedAccounts = []models.FollowedAccount{
		{ID: "did:plc:a", Handle: "a.test"},
		{ID: "did:plc:b", Handle: "b.test"},
	}
	snapshot.Entries["did:plc:a"] = entryWithBlocks("did:plc:a", testTarget)
	require.NoError(t, cacheStore.SaveSnapshot(context.Background(), snapshot))
}

func TestCandidates_ReturnsBlockersOfTarget(t *testing.T) {
	svc, cacheStore, _ := newLookupFixture(t)
	seedSnapshot(t, cacheStore)

	candidates, err := svc.Candidates(context.Background(), testTarget)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "did:plc:a", candidates[0].ID)
}

func TestCandidates_NoFalseNegatives(t *testing.T) {
	svc, cacheStore, _ := newLookupFixture(t)

	blocked := make([]string, 200)
	for i := range blocked {
		blocked[i] = fmt.Sprintf("did:plc:blocked-%03d", i)
	}

	snapshot := models.NewCacheSnapshot(testOwner)
	snapshot.FollowedAccounts = []models.FollowedAccount{{ID: "did:plc:a", Handle: "a.test"}}
	snapshot.Entries["did:plc:a"] = entryWithBlocks("did:plc:a", blocked...)
	require.NoError(t, cacheStore.SaveSnapshot(context.Background(), snapshot))

	for _, target := range blocked {
		candidates, err := svc.Candidates(context.Background(), target)
		require.NoError(t, err)
		require.Len(t, candidates, 1, "every actually blocked id must surface as a candidate")
	}
}

func TestCandidates_CacheNotReady(t *testing.T) {
	svc, _, _ := newLookupFixture(t)

	_, err := svc.Candidates(context.Background(), testTarget)
	require.ErrorIs(t, err, ErrCacheNotReady)
}

func TestVerify_ConfirmsOnlyRealBlockers(t *testing.T) {
	svc, cacheStore, client := newLookupFixture(t)
	seedSnapshot(t, cacheStore)
	ctx := context.Background()

	client.EXPECT().ListBlocks(gomock.Any(), "did:plc:a", "").Return([]string{testTarget}, nil)
	client.EXPECT().ListBlocks(gomock.Any(), "did:plc:b", "").Return([]string{"did:plc:other"}, nil)

	// did:plc:stranger is not followed and must not trigger a fetch.
	confirmed, err := svc.Verify(ctx, testTarget, []string{"did:plc:a", "did:plc:b", "did:plc:stranger"})
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	assert.Equal(t, "did:plc:a", confirmed[0].ID)
}

func TestVerify_FetchFailureDropsCandidate(t *testing.T) {
	svc, cacheStore, client := newLookupFixture(t)
	seedSnapshot(t, cacheStore)

	client.EXPECT().ListBlocks(gomock.Any(), "did:plc:a", "").
		Return(nil, adapter.ErrRateLimited)

	confirmed, err := svc.Verify(context.Background(), testTarget, []string{"did:plc:a"})
	require.NoError(t, err)
	assert.Empty(t, confirmed)
}

func TestLookup_BothDirections(t *testing.T) {
	svc, cacheStore, client := newLookupFixture(t)
	seedSnapshot(t, cacheStore)

	// The target blocks did:plc:b plus somebody the owner does not follow.
	client.EXPECT().ListBlocks(gomock.Any(), testTarget, "").
		Return([]string{"did:plc:b", "did:plc:unrelated"}, nil)

	result, err := svc.Lookup(context.Background(), testTarget)
	require.NoError(t, err)

	require.Len(t, result.BlockedBy, 1)
	assert.Equal(t, "did:plc:a", result.BlockedBy[0].ID)

	require.Len(t, result.Blocking, 1)
	assert.Equal(t, "did:plc:b", result.Blocking[0].ID)
}

func TestLookup_ReadsSnapshotOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockProtocolClient(ctrl)
	cacheStore := mock.NewMockCacheStore(ctrl)
	svc := NewLookupService(cacheStore, client, logger.Nop())

	snapshot := models.NewCacheSnapshot(testOwner)
	snapshot.FollowedAccounts = []models.FollowedAccount{
		{ID: "did:plc:a", Handle: "a.test"},
		{ID: "did:plc:b", Handle: "b.test"},
	}
	snapshot.Entries["did:plc:a"] = entryWithBlocks("did:plc:a", testTarget)

	// Both halves of the answer come from one snapshot read, so a checkpoint
	// landing mid-request cannot split the response across cache states.
	cacheStore.EXPECT().LoadSnapshot(gomock.Any()).Return(snapshot, true, nil).Times(1)
	client.EXPECT().ListBlocks(gomock.Any(), testTarget, "").
		Return([]string{"did:plc:b"}, nil)

	result, err := svc.Lookup(context.Background(), testTarget)
	require.NoError(t, err)
	require.Len(t, result.BlockedBy, 1)
	assert.Equal(t, "did:plc:a", result.BlockedBy[0].ID)
	require.Len(t, result.Blocking, 1)
	assert.Equal(t, "did:plc:b", result.Blocking[0].ID)
}

func TestLookup_TargetFetchFailureSurfaces(t *testing.T) {
	svc, cacheStore, client := newLookupFixture(t)
	seedSnapshot(t, cacheStore)

	client.EXPECT().ListBlocks(gomock.Any(), testTarget, "").
		Return(nil, adapter.ErrRateLimited)

	_, err := svc.Lookup(context.Background(), testTarget)
	require.ErrorIs(t, err, adapter.ErrRateLimited)
}

func TestProfileBlocks_Passthrough(t *testing.T) {
	svc, _, client := newLookupFixture(t)

	client.EXPECT().ListBlocks(gomock.Any(), testTarget, "").
		Return([]string{"did:plc:x", "did:plc:y"}, nil)

	blocks, err := svc.ProfileBlocks(context.Background(), testTarget)
	require.NoError(t, err)
	assert.Equal(t, []string{"did:plc:x", "did:plc:y"}, blocks)
}
