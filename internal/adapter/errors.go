// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

package adapter

import "errors"

// Sentinel errors mapped from transport-level failures. Callers match them
// with [errors.Is].
var (
	// ErrUnauthorized indicates the remote service rejected the engine's
	// credentials (HTTP 401/403).
	ErrUnauthorized = errors.New("client unauthorized")

	// ErrRateLimited indicates the remote service throttled the request and
	// the client's retries were exhausted (HTTP 429).
	ErrRateLimited = errors.New("rate limited by remote service")

	// ErrNotFound indicates the requested account or record does not exist
	// (HTTP 404).
	ErrNotFound = errors.New("remote resource not found")

	// ErrOriginNotFound indicates the identity directory has no usable
	// service endpoint for the account.
	ErrOriginNotFound = errors.New("origin not found for account")

	// ErrMalformedResponse indicates the remote response could not be
	// decoded. Treated by the orchestrator as a per-account fetch failure.
	ErrMalformedResponse = errors.New("malformed remote response")
)
