// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// blocklens daemon. It aggregates all sub-configurations and is populated by
// merging values from environment variables, command-line flags, and an
// optional JSON file, with built-in defaults filling the gaps.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Server holds network address and timeout settings for the local HTTP
	// API the daemon exposes to UI collaborators.
	Server Server `envPrefix:"SERVER_"`

	// Storage holds configuration for the durable key-value backing store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds configuration for the outbound protocol client.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Sync holds tunables of the background synchronization pass.
	Sync Sync `envPrefix:"SYNC_"`

	// Cache holds sizing tunables for the block cache and its bloom filters.
	Cache Cache `envPrefix:"CACHE_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Server holds network and timeout settings for the inbound HTTP surface.
type Server struct {
	// HTTPAddress is the TCP address on which the daemon listens, in
	// "host:port" format. The API is meant for local collaborators, so the
	// default binds to localhost only.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the configuration of the persistence layer.
type Storage struct {
	// DB holds the local database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the SQLite key-value backing store.
type DB struct {
	// DSN is the SQLite file path (or ":memory:" for tests).
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Adapter holds settings of the outbound protocol client used to fetch
// follow and block lists from the remote graph service.
type Adapter struct {
	// DirectoryURL is the identity directory used to resolve an account id
	// to the origin that hosts its public records.
	// Env: ADAPTER_DIRECTORY_URL
	DirectoryURL string `env:"DIRECTORY_URL"`

	// AppViewURL is the aggregated view service used to fetch follow lists.
	// Env: ADAPTER_APPVIEW_URL
	AppViewURL string `env:"APPVIEW_URL"`

	// RequestTimeout bounds each outbound call.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// RetryCount is how many times a transient or rate-limited request is
	// retried before its failure surfaces to the caller.
	// Env: ADAPTER_RETRY_COUNT
	RetryCount int `env:"RETRY_COUNT"`

	// RetryWaitTime is the initial backoff delay between retries; resty
	// grows it exponentially up to RetryMaxWaitTime.
	// Env: ADAPTER_RETRY_WAIT_TIME
	RetryWaitTime time.Duration `env:"RETRY_WAIT_TIME"`

	// RetryMaxWaitTime caps the exponential backoff delay.
	// Env: ADAPTER_RETRY_MAX_WAIT_TIME
	RetryMaxWaitTime time.Duration `env:"RETRY_MAX_WAIT_TIME"`
}

// Sync holds the tunables of a synchronization pass. The defaults encode the
// engine's rate-limit etiquette and durability tradeoffs; see the field
// comments before changing them.
type Sync struct {
	// Interval is how often the background job starts a new pass.
	// Env: SYNC_INTERVAL
	Interval time.Duration `env:"INTERVAL"`

	// BatchSize is the number of followed accounts whose block lists are
	// fetched concurrently. It doubles as the concurrency bound.
	// Env: SYNC_BATCH_SIZE
	BatchSize int `env:"BATCH_SIZE"`

	// CheckpointEveryBatches is how many batches may complete between
	// snapshot persists. Larger values mean fewer writes but up to that many
	// batches of work lost if the process dies between checkpoints.
	// Env: SYNC_CHECKPOINT_EVERY_BATCHES
	CheckpointEveryBatches int `env:"CHECKPOINT_EVERY_BATCHES"`

	// InterBatchDelay is the pause inserted between batches (not after the
	// last) to respect third-party rate limits.
	// Env: SYNC_INTER_BATCH_DELAY
	InterBatchDelay time.Duration `env:"INTER_BATCH_DELAY"`

	// StaleLockThreshold is the heartbeat age beyond which a persisted
	// "running" status is considered a leftover lock from a terminated
	// process and may be forcibly cleared.
	// Env: SYNC_STALE_LOCK_THRESHOLD
	StaleLockThreshold time.Duration `env:"STALE_LOCK_THRESHOLD"`
}

// Cache holds sizing tunables for the persisted block cache.
type Cache struct {
	// QuotaCeilingBytes is the storage budget for the serialized snapshot.
	// Env: CACHE_QUOTA_CEILING_BYTES
	QuotaCeilingBytes int64 `env:"QUOTA_CEILING_BYTES"`

	// ProactivePruneRatio is the fraction of the ceiling at which a pass
	// prunes old entries before starting (e.g. 0.9 = 90%).
	// Env: CACHE_PROACTIVE_PRUNE_RATIO
	ProactivePruneRatio float64 `env:"PROACTIVE_PRUNE_RATIO"`

	// BloomBitsPerElement and BloomHashCount size the per-account bloom
	// filters; the defaults target roughly a 0.1% false-positive rate.
	// Env: CACHE_BLOOM_BITS_PER_ELEMENT, CACHE_BLOOM_HASH_COUNT
	BloomBitsPerElement int `env:"BLOOM_BITS_PER_ELEMENT"`
	BloomHashCount      int `env:"BLOOM_HASH_COUNT"`
}

// GetConfig loads, merges, and validates the daemon configuration from all
// available sources. Returns a fully populated *StructuredConfig or an error
// if any source fails to load or the final config fails validation.
func GetConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
