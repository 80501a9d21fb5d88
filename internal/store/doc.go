// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

// Package store implements the persistence layer of the engine: a durable
// key-value backing store abstraction ([KVStore]) with a byte quota, a
// typed block-cache store ([CacheStore]) layered on top of it, and the
// quota guard ([Guard]) that keeps the serialized cache under its ceiling.
//
// The KV store ships in two flavours: SQLite-backed (production, survives
// process restarts) and in-memory (tests). Both enforce the same capacity
// semantics: Set fails with [ErrCapacityExceeded] when the write would push
// the total stored bytes over the configured ceiling.
package store
