// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

// Package adapter provides the outbound transport layer of the engine: the
// protocol client that fetches follow and block lists from the remote graph
// service.
//
// The primary abstraction is [ProtocolClient], which decouples the service
// layer from the wire protocol. The package ships an HTTP implementation
// ([NewHTTPProtocolClient]) that talks XRPC-style endpoints with retry and
// exponential backoff on transient failures.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrRateLimited] for 429, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/blocklens/blocklens/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// FollowPage is one page of a paginated follow listing.
type FollowPage struct {
	Items []models.FollowedAccount

	// NextCursor is the token for the next page; empty when the listing is
	// exhausted.
	NextCursor string
}

// ProtocolClient is the engine's view of the remote graph service.
// Implementations handle serialisation, authentication headers, per-call
// timeouts, and retry with exponential backoff on rate limiting or
// transient failures; exhausted retries surface as errors the caller
// records per account.
type ProtocolClient interface {
	// SetAuth stores the credentials attached to subsequent requests.
	// Called when the engine receives a new auth context.
	SetAuth(auth models.AuthContext)

	// ListFollows returns one page of the subject's follow list. Call
	// repeatedly with the returned cursor until NextCursor is empty; the
	// concatenation of pages is complete and order-stable, though it may
	// contain duplicates across page boundaries that the caller drops.
	ListFollows(ctx context.Context, subjectID, cursor string) (FollowPage, error)

	// ListBlocks returns the complete block list of accountID (target ids
	// only). originHint, when non-empty, addresses the request directly to
	// the origin that hosts the account's records, skipping resolution.
	// Hidden or inaccessible block lists yield an empty list, not an error.
	ListBlocks(ctx context.Context, accountID, originHint string) ([]string, error)

	// ResolveOrigin resolves accountID to the origin hosting its records.
	// Results are cached. Returns [ErrOriginNotFound] when the directory
	// has no usable service entry for the account.
	ResolveOrigin(ctx context.Context, accountID string) (string, error)
}
