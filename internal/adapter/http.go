// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/blocklens/blocklens/internal/cache"
	"github.com/blocklens/blocklens/internal/config"
	"github.com/blocklens/blocklens/internal/logger"
	"github.com/blocklens/blocklens/models"
)

const (
	pageLimit       = 100
	originCacheTTL  = 12 * time.Hour
	originCacheCost = 1

	blockCollection = "app.bsky.graph.block"
	pdsServiceType  = "AtprotoPersonalDataServer"
)

type httpProtocolClient struct {
	client       *resty.Client
	appViewURL   string
	directoryURL string

	originCache cache.Cache[string]

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPProtocolClient constructs the HTTP/XRPC implementation of
// [ProtocolClient]. Transient failures (429, 5xx, network errors) are
// retried with exponential backoff per the adapter configuration; retries
// exhausted surface as [ErrRateLimited] or a wrapped transport error.
// originCache memoises directory lookups so a sync pass resolves each
// distinct origin once.
func NewHTTPProtocolClient(cfg config.Adapter, originCache cache.Cache[string], log *logger.Logger) ProtocolClient {
	cli := resty.New().
		SetTimeout(cfg.RequestTimeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(cfg.RetryWaitTime).
		SetRetryMaxWaitTime(cfg.RetryMaxWaitTime).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= http.StatusInternalServerError
		})

	return &httpProtocolClient{
		client:       cli,
		appViewURL:   strings.TrimRight(cfg.AppViewURL, "/"),
		directoryURL: strings.TrimRight(cfg.DirectoryURL, "/"),
		originCache:  originCache,
		logger:       log,
	}
}

// SetAuth implements [ProtocolClient]. It stores the access credential
// (whitespace-trimmed) for use in the Authorization header of subsequent
// requests.
func (h *httpProtocolClient) SetAuth(auth models.AuthContext) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(auth.AccessCredential)
}

func (h *httpProtocolClient) request(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)

	h.mu.RLock()
	token := h.token
	h.mu.RUnlock()
	if token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}

	return req
}

type wireFollow struct {
	DID         string `json:"did"`
	Handle      string `json:"handle"`
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar"`
}

type followsResponse struct {
	Cursor  string       `json:"cursor"`
	Follows []wireFollow `json:"follows"`
}

// ListFollows implements [ProtocolClient] against the app view's
// app.bsky.graph.getFollows endpoint.
func (h *httpProtocolClient) ListFollows(ctx context.Context, subjectID, cursor string) (FollowPage, error) {
	req := h.request(ctx).
		SetQueryParam("actor", subjectID).
		SetQueryParam("limit", fmt.Sprint(pageLimit))
	if cursor != "" {
		req.SetQueryParam("cursor", cursor)
	}

	resp, err := req.Get(h.appViewURL + "/xrpc/app.bsky.graph.getFollows")
	if err != nil {
		return FollowPage{}, fmt.Errorf("list follows request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return FollowPage{}, fmt.Errorf("list follows for %s: %w", subjectID, err)
	}

	var body followsResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return FollowPage{}, fmt.Errorf("%w: decode follows response: %w", ErrMalformedResponse, err)
	}

	page := FollowPage{
		Items:      make([]models.FollowedAccount, 0, len(body.Follows)),
		NextCursor: body.Cursor,
	}
	for _, f := range body.Follows {
		page.Items = append(page.Items, models.FollowedAccount{
			ID:          f.DID,
			Handle:      f.Handle,
			DisplayName: f.DisplayName,
			AvatarRef:   f.Avatar,
		})
	}

	return page, nil
}

type wireBlockRecord struct {
	Value struct {
		Subject string `json:"subject"`
	} `json:"value"`
}

type listRecordsResponse struct {
	Cursor  string            `json:"cursor"`
	Records []wireBlockRecord `json:"records"`
}

// ListBlocks implements [ProtocolClient]. Block records are public and live
// on the account's own origin, so the complete list is read via the
// com.atproto.repo.listRecords endpoint, page by page. Accounts whose
// repositories are gone or withheld (404/400) yield an empty list.
func (h *httpProtocolClient) ListBlocks(ctx context.Context, accountID, originHint string) ([]string, error) {
	origin := originHint
	if origin == "" {
		resolved, err := h.ResolveOrigin(ctx, accountID)
		if err != nil {
			return nil, fmt.Errorf("list blocks for %s: %w", accountID, err)
		}
		origin = resolved
	}

	blocks := make([]string, 0)
	cursor := ""
	for {
		req := h.request(ctx).
			SetQueryParam("repo", accountID).
			SetQueryParam("collection", blockCollection).
			SetQueryParam("limit", fmt.Sprint(pageLimit))
		if cursor != "" {
			req.SetQueryParam("cursor", cursor)
		}

		resp, err := req.Get(strings.TrimRight(origin, "/") + "/xrpc/com.atproto.repo.listRecords")
		if err != nil {
			return nil, fmt.Errorf("list blocks request for %s: %w", accountID, err)
		}
		if resp.StatusCode() == http.StatusNotFound || resp.StatusCode() == http.StatusBadRequest {
			// Withheld or gone repository: an empty list, not an error.
			return []string{}, nil
		}
		if err = mapHTTPError(resp); err != nil {
			return nil, fmt.Errorf("list blocks for %s: %w", accountID, err)
		}

		var body listRecordsResponse
		if err = json.Unmarshal(resp.Body(), &body); err != nil {
			return nil, fmt.Errorf("%w: decode block records: %w", ErrMalformedResponse, err)
		}

		for _, rec := range body.Records {
			if rec.Value.Subject != "" {
				blocks = append(blocks, rec.Value.Subject)
			}
		}

		if body.Cursor == "" || len(body.Records) == 0 {
			return blocks, nil
		}
		cursor = body.Cursor
	}
}

type didDocument struct {
	Service []struct {
		ID              string `json:"id"`
		Type            string `json:"type"`
		ServiceEndpoint string `json:"serviceEndpoint"`
	} `json:"service"`
}

// ResolveOrigin implements [ProtocolClient] against the identity directory.
// Lookups are memoised in the injected cache for [originCacheTTL].
func (h *httpProtocolClient) ResolveOrigin(ctx context.Context, accountID string) (string, error) {
	if origin, ok := h.originCache.Get(accountID); ok {
		return origin, nil
	}

	resp, err := h.request(ctx).Get(h.directoryURL + "/" + accountID)
	if err != nil {
		return "", fmt.Errorf("resolve origin request: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return "", fmt.Errorf("resolve origin for %s: %w", accountID, ErrOriginNotFound)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", fmt.Errorf("resolve origin for %s: %w", accountID, err)
	}

	var doc didDocument
	if err = json.Unmarshal(resp.Body(), &doc); err != nil {
		return "", fmt.Errorf("%w: decode did document: %w", ErrMalformedResponse, err)
	}

	for _, svc := range doc.Service {
		if svc.Type == pdsServiceType && svc.ServiceEndpoint != "" {
			h.originCache.SetWithTTL(accountID, svc.ServiceEndpoint, originCacheCost, originCacheTTL)
			return svc.ServiceEndpoint, nil
		}
	}

	return "", fmt.Errorf("resolve origin for %s: %w", accountID, ErrOriginNotFound)
}

func mapHTTPError(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	switch resp.StatusCode() {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("unexpected status %d", resp.StatusCode())
	}
}
