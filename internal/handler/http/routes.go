// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Route("/api", func(r chi.Router) {
		r.Post("/auth", h.setAuth)

		r.Post("/sync/trigger", h.triggerSync)
		r.Get("/sync/status", h.syncStatus)

		r.Get("/lookup/{targetID}", h.lookup)
		r.Post("/lookup/{targetID}/verify", h.verifyCandidates)
		r.Get("/profiles/{targetID}/blocks", h.profileBlocks)

		r.Post("/cache/clear", h.clearCache)

		r.Get("/version", h.getVersion)
	})

	return router
}
