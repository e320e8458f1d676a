package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/albumvault/fetchd/internal/adapter"
	"github.com/albumvault/fetchd/internal/config"
	"github.com/albumvault/fetchd/internal/logger"
	"github.com/albumvault/fetchd/internal/storage"
	"github.com/albumvault/fetchd/internal/sweeper"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadSweeperConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags: map[string]string{
			"service": "sweeper",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting storage sweeper")

	clock := adapter.NewClock()

	storageManager, err := storage.NewManager(cfg.Storage, clock)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to initialize storage", zap.Error(err), zap.String("root", cfg.Storage.Root))
	}

	storageSweeper := sweeper.NewStorageSweeper(&sweeper.StorageSweeperConfig{
		MaxAge:      cfg.Storage.CleanupMaxAge,
		Interval:    cfg.SweepInterval,
		ClearCovers: true,
	}, storageManager, clock)

	logger.InfoCtx(ctx, "Initialized storage sweeper",
		zap.String("root", cfg.Storage.Root),
		zap.Duration("max_age", cfg.Storage.CleanupMaxAge),
		zap.Duration("interval", cfg.SweepInterval),
	)

	// Start the sweeper in a goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := storageSweeper.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.ErrorCtx(ctx, err)
	}

	// Cancel context to stop the sweeper
	cancel()

	// Give the sweeper time to shut down gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()

	if err := storageSweeper.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err)
	}

	logger.InfoCtx(shutdownCtx, "Sweeper stopped")
}
