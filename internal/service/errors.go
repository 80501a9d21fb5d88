// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

package service

import "errors"

var (
	// ErrInvalidAuth indicates the supplied auth context carries no usable
	// credentials.
	ErrInvalidAuth = errors.New("invalid auth context")

	// ErrCacheNotReady indicates no snapshot has been built yet, so lookups
	// have nothing to answer from.
	ErrCacheNotReady = errors.New("block cache not built yet")
)
