package main

import (
	"context"
	_ "embed"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"time"

	"figdash/pkg/cache"
	"figdash/pkg/config"
	"figdash/pkg/figma"
	"figdash/pkg/log"
	"figdash/pkg/mirror"
	"figdash/pkg/reconciler"
	"figdash/pkg/refstore"
	"figdash/pkg/server"
)

const (
	mirrorDirPerm = 0750
	loadTimeout   = 30 * time.Second
)

//go:embed VERSION
var Version string

func main() {
	// Initialize logger first
	_ = log.Logger

	envFile := flag.String("env", "", "Path to an optional .env file")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if *debug || cfg.Debug {
		log.SetDebugMode()
	}

	if err := os.MkdirAll(filepath.Dir(cfg.MirrorPath), mirrorDirPerm); err != nil {
		log.Fatal().Err(err).Str("mirror_path", cfg.MirrorPath).Msg("Failed to create mirror directory")
	}

	// The mirror is best-effort storage; running without it just means no
	// list survives a restart.
	deviceMirror, err := mirror.Open(cfg.MirrorPath)
	if err != nil {
		log.Warn().Err(err).Str("mirror_path", cfg.MirrorPath).Msg("Mirror unavailable, running without persistence")
		deviceMirror = nil
	}
	defer func() {
		if closeErr := deviceMirror.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Failed to close mirror")
		}
	}()

	var fetcher reconciler.FileFetcher
	if cfg.HasToken() {
		client, err := figma.NewClient(cfg.FigmaAPIBase, cfg.FigmaToken, cfg.RetryMax, cfg.RequestTimeout)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to build API client")
		}
		fetcher = client
	} else {
		log.Warn().Msg("No access token configured; remote features disabled")
	}

	store := refstore.New()
	engine := reconciler.New(deviceMirror, store, fetcher, refstore.DefaultClientID, reconciler.Options{
		BackfillDelay: cfg.BackfillDelay,
		SyncLogSize:   cfg.SyncLogSize,
	})

	go func() {
		loadCtx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		engine.Load(loadCtx)
		cancel()

		// Backfill paces itself between fetches and can legitimately run
		// for minutes on a large list, so it is not bound by the load
		// deadline.
		engine.Backfill(context.Background())
	}()

	if cfg.HasToken() {
		engine.StartAutoSync(cfg.AutoSyncInterval)
	}

	srv := server.New(cfg, cache.New(), store, engine, strings.TrimSpace(Version))
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Server failed to start")
	}

	os.Exit(0)
}
