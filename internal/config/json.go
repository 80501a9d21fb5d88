// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly duration parsing ("500ms", "1h").
type StructuredJSONConfig struct {
	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Adapter struct {
		DirectoryURL     string   `json:"directory_url"`
		AppViewURL       string   `json:"appview_url"`
		RequestTimeout   Duration `json:"request_timeout"`
		RetryCount       int      `json:"retry_count"`
		RetryWaitTime    Duration `json:"retry_wait_time"`
		RetryMaxWaitTime Duration `json:"retry_max_wait_time"`
	} `json:"adapter,omitempty"`

	Sync struct {
		Interval               Duration `json:"interval"`
		BatchSize              int      `json:"batch_size"`
		CheckpointEveryBatches int      `json:"checkpoint_every_batches"`
		InterBatchDelay        Duration `json:"inter_batch_delay"`
		StaleLockThreshold     Duration `json:"stale_lock_threshold"`
	} `json:"sync,omitempty"`

	Cache struct {
		QuotaCeilingBytes   int64   `json:"quota_ceiling_bytes"`
		ProactivePruneRatio float64 `json:"proactive_prune_ratio"`
		BloomBitsPerElement int     `json:"bloom_bits_per_element"`
		BloomHashCount      int     `json:"bloom_hash_count"`
	} `json:"cache,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Adapter: Adapter{
			DirectoryURL:     jsonCfg.Adapter.DirectoryURL,
			AppViewURL:       jsonCfg.Adapter.AppViewURL,
			RequestTimeout:   time.Duration(jsonCfg.Adapter.RequestTimeout),
			RetryCount:       jsonCfg.Adapter.RetryCount,
			RetryWaitTime:    time.Duration(jsonCfg.Adapter.RetryWaitTime),
			RetryMaxWaitTime: time.Duration(jsonCfg.Adapter.RetryMaxWaitTime),
		},
		Sync: Sync{
			Interval:               time.Duration(jsonCfg.Sync.Interval),
			BatchSize:              jsonCfg.Sync.BatchSize,
			CheckpointEveryBatches: jsonCfg.Sync.CheckpointEveryBatches,
			InterBatchDelay:        time.Duration(jsonCfg.Sync.InterBatchDelay),
			StaleLockThreshold:     time.Duration(jsonCfg.Sync.StaleLockThreshold),
		},
		Cache: Cache{
			QuotaCeilingBytes:   jsonCfg.Cache.QuotaCeilingBytes,
			ProactivePruneRatio: jsonCfg.Cache.ProactivePruneRatio,
			BloomBitsPerElement: jsonCfg.Cache.BloomBitsPerElement,
			BloomHashCount:      jsonCfg.Cache.BloomHashCount,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
