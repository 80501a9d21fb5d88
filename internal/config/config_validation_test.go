// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate_DefaultsAreValid(t *testing.T) {
	require.NoError(t, defaults().validate())
}

func TestValidate_RejectsBrokenGroups(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{
			name:    "empty server address",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = "" },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name:    "empty dsn",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "missing directory url",
			mutate:  func(cfg *StructuredConfig) { cfg.Adapter.DirectoryURL = "" },
			wantErr: ErrInvalidAdapterConfigs,
		},
		{
			name:    "zero batch size",
			mutate:  func(cfg *StructuredConfig) { cfg.Sync.BatchSize = 0 },
			wantErr: ErrInvalidSyncConfigs,
		},
		{
			name:    "zero quota",
			mutate:  func(cfg *StructuredConfig) { cfg.Cache.QuotaCeilingBytes = 0 },
			wantErr: ErrInvalidCacheConfigs,
		},
		{
			name:    "prune ratio above one",
			mutate:  func(cfg *StructuredConfig) { cfg.Cache.ProactivePruneRatio = 1.5 },
			wantErr: ErrInvalidCacheConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(cfg)
			require.ErrorIs(t, cfg.validate(), tt.wantErr)
		})
	}
}
