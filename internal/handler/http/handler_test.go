// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/blocklens/blocklens/internal/logger"
	"github.com/blocklens/blocklens/internal/mock"
	"github.com/blocklens/blocklens/internal/service"
	"github.com/blocklens/blocklens/models"
)

type handlerFixture struct {
	syncService   *mock.MockSyncService
	lookupService *mock.MockLookupService
	syncJob       *mock.MockSyncJob
	server        *httptest.Server
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &handlerFixture{
		syncService:   mock.NewMockSyncService(ctrl),
		lookupService: mock.NewMockLookupService(ctrl),
		syncJob:       mock.NewMockSyncJob(ctrl),
	}

	h := NewHandler(f.syncService, f.lookupService, f.syncJob, "v1.2.3", logger.Nop())
	f.server = httptest.NewServer(h.Init())
	t.Cleanup(f.server.Close)

	return f
}

func (f *handlerFixture) do(t *testing.T, method, path, body string) *http.Response {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, f.server.URL+path, reader)
	require.NoError(t, err)

	resp, err := f.server.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func jsonDecode(resp *http.Response, v any) error {
	return json.NewDecoder(resp.Body).Decode(v)
}

func TestSetAuth_AcceptsAndTriggersPass(t *testing.T) {
	f := newHandlerFixture(t)

	f.syncService.EXPECT().SetAuth(gomock.Any(), models.AuthContext{
		SubjectID:        "did:plc:owner",
		AccessCredential: "tok",
	}).Return(nil)
	f.syncJob.EXPECT().Trigger()

	resp := f.do(t, http.MethodPost, "/api/auth",
		`{"subject_id":"did:plc:owner","access_credential":"tok"}`)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
}

func TestSetAuth_InvalidJSON(t *testing.T) {
	f := newHandlerFixture(t)

	resp := f.do(t, http.MethodPost, "/api/auth", `{not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSetAuth_InvalidCredentials(t *testing.T) {
	f := newHandlerFixture(t)

	f.syncService.EXPECT().SetAuth(gomock.Any(), gomock.Any()).
		Return(service.ErrInvalidAuth)

	resp := f.do(t, http.MethodPost, "/api/auth", `{"access_credential":"junk"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTriggerSync(t *testing.T) {
	f := newHandlerFixture(t)

	f.syncJob.EXPECT().Trigger()

	resp := f.do(t, http.MethodPost, "/api/sync/trigger", "")
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
}

func TestSyncStatus(t *testing.T) {
	f := newHandlerFixture(t)

	f.syncService.EXPECT().Status(gomock.Any()).
		Return(models.SyncStatus{TotalCount: 42, SyncedCount: 10, Running: true}, nil)

	resp := f.do(t, http.MethodGet, "/api/sync/status", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var status models.SyncStatus
	require.NoError(t, jsonDecode(resp, &status))
	assert.Equal(t, 42, status.TotalCount)
	assert.True(t, status.Running)
}

func TestLookup(t *testing.T) {
	f := newHandlerFixture(t)

	f.lookupService.EXPECT().Lookup(gomock.Any(), "did:plc:target").
		Return(models.LookupResult{
			BlockedBy: []models.FollowedAccount{{ID: "did:plc:a", Handle: "a.test"}},
			Blocking:  []models.FollowedAccount{},
		}, nil)

	resp := f.do(t, http.MethodGet, "/api/lookup/did:plc:target", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result models.LookupResult
	require.NoError(t, jsonDecode(resp, &result))
	require.Len(t, result.BlockedBy, 1)
	assert.Equal(t, "did:plc:a", result.BlockedBy[0].ID)
}

func TestLookup_CacheNotReady(t *testing.T) {
	f := newHandlerFixture(t)

	f.lookupService.EXPECT().Lookup(gomock.Any(), "did:plc:target").
		Return(models.LookupResult{}, service.ErrCacheNotReady)

	resp := f.do(t, http.MethodGet, "/api/lookup/did:plc:target", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestVerifyCandidates(t *testing.T) {
	f := newHandlerFixture(t)

	f.lookupService.EXPECT().Verify(gomock.Any(), "did:plc:target", []string{"did:plc:a", "did:plc:b"}).
		Return([]models.FollowedAccount{{ID: "did:plc:a", Handle: "a.test"}}, nil)

	resp := f.do(t, http.MethodPost, "/api/lookup/did:plc:target/verify",
		`{"candidate_ids":["did:plc:a","did:plc:b"]}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var verified models.VerifyResponse
	require.NoError(t, jsonDecode(resp, &verified))
	require.Len(t, verified.Confirmed, 1)
	assert.Equal(t, "did:plc:a", verified.Confirmed[0].ID)
}

func TestVerifyCandidates_InvalidJSON(t *testing.T) {
	f := newHandlerFixture(t)

	resp := f.do(t, http.MethodPost, "/api/lookup/did:plc:target/verify", `]`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProfileBlocks(t *testing.T) {
	f := newHandlerFixture(t)

	f.lookupService.EXPECT().ProfileBlocks(gomock.Any(), "did:plc:target").
		Return([]string{"did:plc:x"}, nil)

	resp := f.do(t, http.MethodGet, "/api/profiles/did:plc:target/blocks", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var blocks models.ProfileBlocksResponse
	require.NoError(t, jsonDecode(resp, &blocks))
	assert.Equal(t, "did:plc:target", blocks.TargetID)
	assert.Equal(t, []string{"did:plc:x"}, blocks.Blocks)
}

func TestClearCache(t *testing.T) {
	f := newHandlerFixture(t)

	f.syncService.EXPECT().ClearCache(gomock.Any()).Return(nil)
	f.syncJob.EXPECT().Trigger()

	resp := f.do(t, http.MethodPost, "/api/cache/clear", "")
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
}

func TestGetVersion(t *testing.T) {
	f := newHandlerFixture(t)

	resp := f.do(t, http.MethodGet, "/api/version", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := make([]byte, 16)
	n, _ := resp.Body.Read(body)
	assert.Equal(t, "v1.2.3", string(body[:n]))
}
