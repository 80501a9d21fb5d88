// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

package models

// AuthContext carries the credentials on whose behalf the engine syncs.
// It is produced by an external collaborator (the UI extracts it from the
// host session) and the engine only consumes a copy persisted to the store.
// Credential fields must never appear in logs or status strings.
type AuthContext struct {
	// SubjectID is the id of the authenticated account (the cache owner).
	SubjectID string `json:"subject_id"`

	// AccessCredential is the opaque access token presented to the remote
	// service. The engine does not interpret it beyond optionally reading
	// the subject claim when SubjectID is not supplied.
	AccessCredential string `json:"access_credential"`

	// RefreshCredential is the optional long-lived token. Stored for the
	// external collaborator's benefit; the engine never uses it directly.
	RefreshCredential string `json:"refresh_credential,omitempty"`

	// ServiceOrigin is the base URL of the service the subject session
	// belongs to (e.g. "https://bsky.social").
	ServiceOrigin string `json:"service_origin"`
}

// Valid reports whether the context carries enough data to sync.
func (a AuthContext) Valid() bool {
	return a.SubjectID != "" && a.AccessCredential != ""
}
