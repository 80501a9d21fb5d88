// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/blocklens/blocklens/internal/logger"
	"github.com/blocklens/blocklens/internal/utils"
	"github.com/blocklens/blocklens/models"
)

// lookup answers both block directions for a target profile: probabilistic
// blocked-by candidates from the cache plus the exact followed accounts the
// target blocks.
func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	targetID := chi.URLParam(r, "targetID")
	if targetID == "" {
		http.Error(w, "no target id was given", http.StatusBadRequest)
		return
	}

	result, err := h.lookupService.Lookup(ctx, targetID)
	if err != nil {
		log.Error().Str("func", "*Handler.lookup").Str("target_id", targetID).Msg("error looking up target")
		http.Error(w, "error looking up target", statusFromError(err))
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

// verifyCandidates confirms a set of probabilistic candidates with fresh
// block list fetches and returns only the real blockers.
func (h *Handler) verifyCandidates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	targetID := chi.URLParam(r, "targetID")
	if targetID == "" {
		http.Error(w, "no target id was given", http.StatusBadRequest)
		return
	}

	var request models.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.verifyCandidates").Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	confirmed, err := h.lookupService.Verify(ctx, targetID, request.CandidateIDs)
	if err != nil {
		log.Error().Str("func", "*Handler.verifyCandidates").Str("target_id", targetID).Msg("error verifying candidates")
		http.Error(w, "error verifying candidates", statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.VerifyResponse{Confirmed: confirmed}, http.StatusOK)
}

func (h *Handler) profileBlocks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	targetID := chi.URLParam(r, "targetID")
	if targetID == "" {
		http.Error(w, "no target id was given", http.StatusBadRequest)
		return
	}

	blocks, err := h.lookupService.ProfileBlocks(ctx, targetID)
	if err != nil {
		log.Error().Str("func", "*Handler.profileBlocks").Str("target_id", targetID).Msg("error fetching profile blocks")
		http.Error(w, "error fetching profile blocks", statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.ProfileBlocksResponse{TargetID: targetID, Blocks: blocks}, http.StatusOK)
}
