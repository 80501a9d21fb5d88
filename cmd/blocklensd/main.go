// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The blocklens authors

package main

import (
	"context"
	"fmt"

	"github.com/blocklens/blocklens/internal/adapter"
	blcache "github.com/blocklens/blocklens/internal/cache/ristretto"
	"github.com/blocklens/blocklens/internal/config"
	blhttp "github.com/blocklens/blocklens/internal/handler/http"
	"github.com/blocklens/blocklens/internal/logger"
	"github.com/blocklens/blocklens/internal/server"
	"github.com/blocklens/blocklens/internal/service"
	"github.com/blocklens/blocklens/internal/store"
	"github.com/blocklens/blocklens/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("blocklensd")
	cfg, err := config.GetConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	db, err := store.NewConnectSQLite(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	// The KV ceiling sits above the snapshot quota so the tiny status and
	// auth records never compete with the snapshot for space.
	kv := store.NewSQLiteKV(db, cfg.Cache.QuotaCeilingBytes+store.KVOverheadAllowanceBytes, log)
	cacheStore := store.NewBlockCacheStore(kv, log)

	originCache, err := blcache.New[string]()
	if err != nil {
		log.Fatal().Err(err).Msg("error creating origin cache")
	}

	client := adapter.NewHTTPProtocolClient(cfg.Adapter, originCache, log)

	syncService := service.NewSyncService(cacheStore, client, cfg.Sync, cfg.Cache, log)
	lookupService := service.NewLookupService(cacheStore, client, log)
	syncJob := service.NewSyncJob(syncService, cfg.Sync.Interval, log)
	defer syncJob.Stop()

	handler := blhttp.NewHandler(syncService, lookupService, syncJob, buildVersion, log)

	srv, err := server.NewServer(handler.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	workers.NewWorkers(
		workers.WorkerFunc(func() { syncJob.Start(ctx) }),
	).Run()

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
