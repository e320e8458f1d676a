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
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/albumvault/fetchd/internal/adapter"
	"github.com/albumvault/fetchd/internal/api"
	"github.com/albumvault/fetchd/internal/api/middleware"
	"github.com/albumvault/fetchd/internal/config"
	"github.com/albumvault/fetchd/internal/downloader"
	"github.com/albumvault/fetchd/internal/events"
	"github.com/albumvault/fetchd/internal/gate"
	"github.com/albumvault/fetchd/internal/logger"
	"github.com/albumvault/fetchd/internal/orchestrator"
	"github.com/albumvault/fetchd/internal/provider"
	"github.com/albumvault/fetchd/internal/storage"
	"github.com/albumvault/fetchd/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadFetchdConfig(*configFile, *envPath)
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
			"service": "fetchd",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting fetchd")

	// Connect to the provenance ledger database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}
	if err := store.Migrate(db); err != nil {
		logger.FatalCtx(ctx, "Failed to run database migrations", zap.Error(err))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	dataStore := store.NewPGStore(db)

	// Initialize adapters
	clock := adapter.NewClock()
	fs := adapter.NewFileSystem()
	httpClient := adapter.NewHTTPClient(cfg.Mirrors.AttemptTimeout)

	// Managed storage root
	storageManager, err := storage.NewManager(cfg.Storage, clock)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to initialize storage", zap.Error(err), zap.String("root", cfg.Storage.Root))
	}

	// Mirror-failover downloader
	contentProvider := provider.NewHTTPProvider(httpClient, fs)
	dl := downloader.New(contentProvider, storageManager, fs, cfg.Mirrors)

	// Worker pool
	downloadGate := gate.New(cfg.Worker)

	// Event publishing over NATS JetStream, enabled only when a URL is
	// configured
	var publisher events.Publisher
	if cfg.NATS.URL != "" {
		publisher, err = events.NewPublisher(cfg.NATS, adapter.NewNatsJetStream())
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err), zap.String("url", cfg.NATS.URL))
		}
		defer publisher.Close()
		logger.InfoCtx(ctx, "Connected to NATS", zap.String("url", cfg.NATS.URL))
	} else {
		logger.WarnCtx(ctx, "NATS URL not configured, fetch events will not be published")
	}

	orch := orchestrator.New(dataStore, downloadGate, storageManager, dl, publisher, clock, cfg.Mirrors, cfg.Storage)

	// Create and start server
	srv := api.NewServer(api.ServerConfig{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}, orch, dataStore)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	// Drain in-flight downloads before exiting
	orch.Shutdown()

	logger.Info("fetchd stopped")
}
