// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

// Package server wires and runs the daemon's HTTP transport.
//
// It provides orchestration for the server lifecycle, including startup,
// signal handling, and graceful shutdown.
package server
