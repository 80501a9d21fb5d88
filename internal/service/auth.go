// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

package service

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// subjectFromCredential reads the subject claim out of the access credential.
// The token is decoded without signature verification: the engine is not the
// credential's audience and only needs the subject id the remote service
// already vouched for when it issued the token.
func subjectFromCredential(credential string) (string, error) {
	token, _, err := jwt.NewParser().ParseUnverified(credential, jwt.MapClaims{})
	if err != nil {
		return "", fmt.Errorf("decode access credential: %w", err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("read subject claim: %w", err)
	}
	if subject == "" {
		return "", fmt.Errorf("access credential carries no subject claim")
	}

	return subject, nil
}
