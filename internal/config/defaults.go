// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

package config

import "time"

// defaults returns the built-in configuration. It is merged last, so any
// value provided by env, flags, or the JSON file wins over it.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		Server: Server{
			HTTPAddress:    "localhost:8474",
			RequestTimeout: 30 * time.Second,
		},
		Storage: Storage{
			DB: DB{DSN: "blocklens.db"},
		},
		Adapter: Adapter{
			DirectoryURL:     "https://plc.directory",
			AppViewURL:       "https://public.api.bsky.app",
			RequestTimeout:   15 * time.Second,
			RetryCount:       3,
			RetryWaitTime:    500 * time.Millisecond,
			RetryMaxWaitTime: 5 * time.Second,
		},
		Sync: Sync{
			Interval:               time.Hour,
			BatchSize:              5,
			CheckpointEveryBatches: 10,
			InterBatchDelay:        500 * time.Millisecond,
			StaleLockThreshold:     5 * time.Minute,
		},
		Cache: Cache{
			QuotaCeilingBytes:   8 << 20, // 8MiB
			ProactivePruneRatio: 0.9,
			BloomBitsPerElement: 15,
			BloomHashCount:      10,
		},
	}
}
