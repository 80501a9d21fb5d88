// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blocklens/blocklens/internal/config"
	"github.com/blocklens/blocklens/internal/logger"
	"github.com/blocklens/blocklens/models"
)

// mapCache is a trivial cache.Cache[string] for tests.
type mapCache struct {
	mu    sync.Mutex
	items map[string]string
}

func newMapCache() *mapCache {
	return &mapCache{items: make(map[string]string)}
}

func (c *mapCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[key]
	return v, ok
}

func (c *mapCache) Set(key, value string, _ int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
	return true
}

func (c *mapCache) SetWithTTL(key, value string, cost int64, _ time.Duration) bool {
	return c.Set(key, value, cost)
}

func (c *mapCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]string)
}

func testConfig(baseURL string) config.Adapter {
	return config.Adapter{
		DirectoryURL:     baseURL,
		AppViewURL:       baseURL,
		RequestTimeout:   5 * time.Second,
		RetryCount:       2,
		RetryWaitTime:    time.Millisecond,
		RetryMaxWaitTime: 5 * time.Millisecond,
	}
}

func TestListFollows_PageDecode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/xrpc/app.bsky.graph.getFollows", r.URL.Path)
		require.Equal(t, "did:plc:owner", r.URL.Query().Get("actor"))
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"cursor": "page2",
			"follows": []map[string]string{
				{"did": "did:plc:a", "handle": "a.test", "displayName": "Ann"},
				{"did": "did:plc:b", "handle": "b.test"},
			},
		})
	}))
	defer srv.Close()

	c := NewHTTPProtocolClient(testConfig(srv.URL), newMapCache(), logger.Nop())
	c.SetAuth(models.AuthContext{SubjectID: "did:plc:owner", AccessCredential: "tok"})

	page, err := c.ListFollows(context.Background(), "did:plc:owner", "")
	require.NoError(t, err)
	assert.Equal(t, "page2", page.NextCursor)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "did:plc:a", page.Items[0].ID)
	assert.Equal(t, "Ann", page.Items[0].DisplayName)
}

func TestListFollows_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewHTTPProtocolClient(testConfig(srv.URL), newMapCache(), logger.Nop())

	_, err := c.ListFollows(context.Background(), "did:plc:owner", "")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestListBlocks_Paginated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/xrpc/com.atproto.repo.listRecords", r.URL.Path)
		require.Equal(t, "app.bsky.graph.block", r.URL.Query().Get("collection"))

		if r.URL.Query().Get("cursor") == "" {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"cursor": "next",
				"records": []map[string]any{
					{"value": map[string]string{"subject": "did:plc:t1"}},
					{"value": map[string]string{"subject": "did:plc:t2"}},
				},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"records": []map[string]any{
				{"value": map[string]string{"subject": "did:plc:t3"}},
			},
		})
	}))
	defer srv.Close()

	c := NewHTTPProtocolClient(testConfig(srv.URL), newMapCache(), logger.Nop())

	blocks, err := c.ListBlocks(context.Background(), "did:plc:acc", srv.URL)
	require.NoError(t, err)
	assert.Equal(t, []string{"did:plc:t1", "did:plc:t2", "did:plc:t3"}, blocks)
}

func TestListBlocks_WithheldRepoIsEmptyNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewHTTPProtocolClient(testConfig(srv.URL), newMapCache(), logger.Nop())

	blocks, err := c.ListBlocks(context.Background(), "did:plc:gone", srv.URL)
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestResolveOrigin_ParsesAndCaches(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		require.Equal(t, "/did:plc:acc", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"service": []map[string]string{
				{"id": "#atproto_labeler", "type": "AtprotoLabeler", "serviceEndpoint": "https://labeler.test"},
				{"id": "#atproto_pds", "type": "AtprotoPersonalDataServer", "serviceEndpoint": "https://pds.test"},
			},
		})
	}))
	defer srv.Close()

	c := NewHTTPProtocolClient(testConfig(srv.URL), newMapCache(), logger.Nop())

	origin, err := c.ResolveOrigin(context.Background(), "did:plc:acc")
	require.NoError(t, err)
	assert.Equal(t, "https://pds.test", origin)

	origin, err = c.ResolveOrigin(context.Background(), "did:plc:acc")
	require.NoError(t, err)
	assert.Equal(t, "https://pds.test", origin)
	assert.Equal(t, 1, hits, "second resolve must hit the cache")
}

func TestResolveOrigin_NoPDSService(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"service": []map[string]string{}})
	}))
	defer srv.Close()

	c := NewHTTPProtocolClient(testConfig(srv.URL), newMapCache(), logger.Nop())

	_, err := c.ResolveOrigin(context.Background(), "did:plc:acc")
	require.ErrorIs(t, err, ErrOriginNotFound)
}

func TestRetry_TransientServerErrorRecovers(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"follows": []map[string]string{}})
	}))
	defer srv.Close()

	c := NewHTTPProtocolClient(testConfig(srv.URL), newMapCache(), logger.Nop())

	_, err := c.ListFollows(context.Background(), "did:plc:owner", "")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
