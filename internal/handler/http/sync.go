// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

package http

import (
	"net/http"

	"github.com/blocklens/blocklens/internal/logger"
	"github.com/blocklens/blocklens/internal/utils"
	"github.com/blocklens/blocklens/models"
)

// triggerSync schedules an immediate sync pass. The pass runs in the
// background; callers poll /api/sync/status for progress.
func (h *Handler) triggerSync(w http.ResponseWriter, r *http.Request) {
	h.syncJob.Trigger()

	utils.WriteJSON(w, models.AckResponse{Status: "accepted"}, http.StatusAccepted)
}

func (h *Handler) syncStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	status, err := h.syncService.Status(ctx)
	if err != nil {
		log.Error().Str("func", "*Handler.syncStatus").Msg("error loading sync status")
		http.Error(w, "error loading sync status", statusFromError(err))
		return
	}

	utils.WriteJSON(w, status, http.StatusOK)
}

// clearCache wipes the snapshot and sync status, then schedules a pass so
// the cache starts rebuilding without further prompting.
func (h *Handler) clearCache(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := h.syncService.ClearCache(ctx); err != nil {
		log.Error().Str("func", "*Handler.clearCache").Msg("error clearing cache")
		http.Error(w, "error clearing cache", statusFromError(err))
		return
	}

	h.syncJob.Trigger()

	utils.WriteJSON(w, models.AckResponse{Status: "cleared"}, http.StatusAccepted)
}
