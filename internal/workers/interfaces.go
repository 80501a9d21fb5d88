// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

// Package workers provides abstractions for managing and running background
// workers in the daemon. It defines the Worker interface and a Workers
// aggregate that runs multiple workers in a unified way.
package workers

// Worker is the interface that must be implemented by any background worker.
// It defines a single Run method that starts the worker's execution.
//
// Implementations are expected to block for the duration of their work or
// spawn goroutines internally.
type Worker interface {
	Run()
}

// WorkerFunc adapts a plain function to the Worker interface.
type WorkerFunc func()

func (f WorkerFunc) Run() { f() }
