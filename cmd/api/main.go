package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/masknetdesign/mercado-online/internal/admin"
	"github.com/masknetdesign/mercado-online/internal/cart"
	"github.com/masknetdesign/mercado-online/internal/config"
	"github.com/masknetdesign/mercado-online/internal/database"
	"github.com/masknetdesign/mercado-online/internal/gateway"
	"github.com/masknetdesign/mercado-online/internal/handler"
	"github.com/masknetdesign/mercado-online/internal/kvstore"
	"github.com/masknetdesign/mercado-online/internal/router"
	"github.com/masknetdesign/mercado-online/internal/settings"
	"github.com/masknetdesign/mercado-online/internal/storefront"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present; real environment variables win.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Str("gateway", cfg.Gateway.Mode).Msg("starting mercado-online API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Local key-value store for the cart snapshot, settings and demo data
	var kv kvstore.Store
	switch cfg.Storage.Backend {
	case config.StorageRedis:
		kv, err = kvstore.NewRedisStore(ctx, cfg.Storage.RedisAddr, cfg.Storage.RedisPassword, cfg.Storage.RedisDB, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize redis store: %w", err)
		}
	default:
		kv, err = kvstore.NewFileStore(cfg.Storage.DataDir, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize file store: %w", err)
		}
	}

	// Backend gateway: demo (kvstore-seeded) or postgres + S3
	var gw gateway.Gateway
	if cfg.Gateway.Mode == config.GatewayPostgres {
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer pool.Close()

		if err := database.EnsureSchema(ctx, pool, logger); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}

		images, err := gateway.NewS3ImageStore(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 image store: %w", err)
		}

		gw = gateway.NewPostgres(pool, images, logger)
	} else {
		gw = gateway.NewDemo(kv, logger)
		logger.Info().Msg("running in demo mode, catalogue seeded into local storage")
	}

	// Shared settings service and cart store
	settingsSvc := settings.NewService(kv, logger)
	cartStore := cart.NewStore(kv, logger)

	// Controllers
	storefrontCtrl := storefront.New(gw, cartStore, settingsSvc, logger)
	storefrontCtrl.Start(ctx)

	adminCtrl := admin.New(gw, settingsSvc, logger)
	sessions := admin.NewSessions()

	// Initialize HTTP handlers
	storefrontHandler := handler.NewStorefrontHandler(storefrontCtrl, logger)
	adminHandler := handler.NewAdminHandler(adminCtrl, sessions, logger)

	// Initialize router
	mux := router.New(storefrontHandler, adminHandler, sessions, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
