// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

package models

// FollowedAccount is one account the subject follows. Identity is ID (an
// opaque, stable decentralized identifier); Handle and DisplayName are
// denormalized display data captured at sync time and may go stale.
type FollowedAccount struct {
	// ID is the stable identifier of the account (e.g. "did:plc:abc123").
	ID string `json:"id"`

	// Handle is the human-readable handle at the time of the last sync.
	Handle string `json:"handle"`

	// DisplayName is the optional profile display name.
	DisplayName string `json:"display_name,omitempty"`

	// AvatarRef is an optional reference (URL or CID) to the avatar image.
	AvatarRef string `json:"avatar_ref,omitempty"`
}
