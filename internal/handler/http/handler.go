// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

// Package http implements the daemon's inbound HTTP surface: the local JSON
// API through which UI collaborators hand over credentials, trigger sync
// passes, and query block relationships.
package http

import (
	"github.com/blocklens/blocklens/internal/logger"
	"github.com/blocklens/blocklens/internal/service"
)

type Handler struct {
	syncService   service.SyncService
	lookupService service.LookupService
	syncJob       service.SyncJob

	version string
	logger  *logger.Logger
}

func NewHandler(syncService service.SyncService, lookupService service.LookupService, syncJob service.SyncJob, version string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		syncService:   syncService,
		lookupService: lookupService,
		syncJob:       syncJob,
		version:       version,
		logger:        logger,
	}
}
