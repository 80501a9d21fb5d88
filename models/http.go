// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

package models

// LookupResult is the externally consumed answer to "who blocks / is blocked
// by this profile" among the accounts the subject follows.
type LookupResult struct {
	// BlockedBy lists followed accounts whose cached block set contains the
	// target. Computed from probabilistic candidates on the fast path, so it
	// may contain false positives until verified.
	BlockedBy []FollowedAccount `json:"blocked_by"`

	// Blocking lists followed accounts that the target profile blocks.
	// Always exact: it is computed from a single fresh fetch of the target's
	// own block list intersected with the followed-account id set.
	Blocking []FollowedAccount `json:"blocking"`
}

// VerifyRequest asks the engine to exactly confirm a set of probabilistic
// candidates against freshly fetched block lists.
type VerifyRequest struct {
	CandidateIDs []string `json:"candidate_ids"`
}

// VerifyResponse carries the candidates whose current block list really does
// contain the target.
type VerifyResponse struct {
	Confirmed []FollowedAccount `json:"confirmed"`
}

// ProfileBlocksResponse carries the raw block id list of one profile.
type ProfileBlocksResponse struct {
	TargetID string   `json:"target_id"`
	Blocks   []string `json:"blocks"`
}

// AckResponse acknowledges a request whose work proceeds asynchronously.
type AckResponse struct {
	Status string `json:"status"`
}
