// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

package http

import (
	"errors"
	"net/http"

	"github.com/blocklens/blocklens/internal/adapter"
	"github.com/blocklens/blocklens/internal/service"
	"github.com/blocklens/blocklens/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidAuth:   http.StatusBadRequest,
	service.ErrCacheNotReady: http.StatusConflict,

	adapter.ErrUnauthorized:      http.StatusBadGateway,
	adapter.ErrRateLimited:       http.StatusBadGateway,
	adapter.ErrMalformedResponse: http.StatusBadGateway,
	adapter.ErrNotFound:          http.StatusNotFound,
	adapter.ErrOriginNotFound:    http.StatusNotFound,

	store.ErrCapacityExceeded: http.StatusInsufficientStorage,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
