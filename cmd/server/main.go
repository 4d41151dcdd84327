package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openpdfa/openpdfa/internal/api"
	"github.com/openpdfa/openpdfa/internal/cache"
	"github.com/openpdfa/openpdfa/internal/config"
	"github.com/openpdfa/openpdfa/internal/convert"
	"github.com/openpdfa/openpdfa/internal/executor"
	"github.com/openpdfa/openpdfa/internal/gs"
	"github.com/openpdfa/openpdfa/internal/logging"
	"github.com/openpdfa/openpdfa/internal/scratch"
	"github.com/openpdfa/openpdfa/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	// Resolve Ghostscript before accepting any traffic; the resolved
	// path is immutable for the process lifetime.
	tool, err := gs.Resolve(cfg)
	if err != nil {
		logger.Fatalw("ghostscript resolution failed", "error", err)
	}
	logger.Infow("openpdfa: ghostscript resolved", "path", tool.Path, "timeout", tool.Timeout)

	files, err := scratch.NewManager(cfg.TempDir, logger)
	if err != nil {
		logger.Fatalw("scratch directory unavailable", "error", err)
	}
	logger.Infow("openpdfa: scratch directory ready", "dir", files.Dir())

	converter := convert.New(tool, files, executor.New(logger), logger)

	if cfg.RedisURL != "" {
		resultCache, err := cache.New(cfg.RedisURL, time.Duration(cfg.CacheTTLSeconds)*time.Second, logger)
		if err != nil {
			logger.Warnw("openpdfa: result cache unavailable, continuing without", "error", err)
		} else {
			defer resultCache.Close()
			converter.SetCache(resultCache)
			logger.Infow("openpdfa: redis result cache enabled", "ttl_seconds", cfg.CacheTTLSeconds)
		}
	}

	var auditStore *store.Store
	if cfg.DataDir != "" {
		auditStore, err = store.Open(cfg.DataDir)
		if err != nil {
			logger.Fatalw("failed to open audit store", "error", err)
		}
		defer auditStore.Close()
		logger.Infow("openpdfa: audit log enabled", "dir", cfg.DataDir)
	} else {
		logger.Info("openpdfa: no OPENPDFA_DATA_DIR configured, audit log disabled")
	}

	server := api.NewServer(api.ServerOpts{
		Converter: converter,
		Store:     auditStore,
		APIKey:    cfg.APIKey,
		MaxBodyMB: cfg.MaxBodyMB,
		Logger:    logger,
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Infow("openpdfa: starting server", "addr", addr)

	go func() {
		if err := server.Start(addr); err != nil {
			logger.Errorw("server error", "error", err)
		}
	}()

	<-quit
	logger.Info("openpdfa: shutting down...")
	if err := server.Close(); err != nil {
		logger.Errorw("error closing server", "error", err)
	}
}
