// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

package http

import (
	"encoding/json"
	"net/http"

	"github.com/blocklens/blocklens/internal/logger"
	"github.com/blocklens/blocklens/internal/utils"
	"github.com/blocklens/blocklens/models"
)

// setAuth receives the session credentials from the UI collaborator, hands
// them to the sync service, and kicks off a pass so the cache starts building
// right away. Credential values are never logged.
func (h *Handler) setAuth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var auth models.AuthContext
	if err := json.NewDecoder(r.Body).Decode(&auth); err != nil {
		log.Err(err).Str("func", "*Handler.setAuth").Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.syncService.SetAuth(ctx, auth); err != nil {
		log.Error().Str("func", "*Handler.setAuth").Msg("error storing auth context")
		http.Error(w, "error storing auth context", statusFromError(err))
		return
	}

	h.syncJob.Trigger()

	utils.WriteJSON(w, models.AckResponse{Status: "accepted"}, http.StatusAccepted)
}
