// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// daemon invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or one of the sentinel errors
// from errors.go otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.DirectoryURL == "" || cfg.Adapter.AppViewURL == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Sync.BatchSize <= 0 || cfg.Sync.CheckpointEveryBatches <= 0 || cfg.Sync.StaleLockThreshold <= 0 {
		return ErrInvalidSyncConfigs
	}

	if cfg.Cache.QuotaCeilingBytes <= 0 ||
		cfg.Cache.ProactivePruneRatio <= 0 || cfg.Cache.ProactivePruneRatio > 1 ||
		cfg.Cache.BloomBitsPerElement <= 0 || cfg.Cache.BloomHashCount <= 0 {
		return ErrInvalidCacheConfigs
	}

	return nil
}
