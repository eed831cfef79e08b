package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campuskit/rollcall/internal/api"
	"github.com/campuskit/rollcall/internal/auth"
	"github.com/campuskit/rollcall/internal/config"
	"github.com/campuskit/rollcall/internal/database"
	"github.com/campuskit/rollcall/internal/facial"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	logger.Info("starting Rollcall API",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.Port),
	)

	// Database pool
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	// Face detection
	detector, err := facial.NewCascadeDetector(cfg.CascadePath)
	if err != nil {
		return fmt.Errorf("failed to load face cascade: %w", err)
	}
	defer func() { _ = detector.Close() }()

	extractor := facial.NewExtractor(detector, cfg.DescriptorSize)

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, time.Duration(cfg.JWTExpiryHrs)*time.Hour)

	// Setup router
	router := api.NewRouter(logger, &api.Dependencies{
		DB:          pool,
		JWTService:  jwtService,
		Extractor:   extractor,
		UploadDir:   cfg.UploadDir,
		Threshold:   cfg.SimilarityThreshold,
		MaxUploadMB: cfg.MaxUploadMB,
	})
	router.Setup()

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info("server listening", slog.String("addr", addr))
		if err := router.Listen(addr); err != nil {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down server...")
	if err := router.Shutdown(); err != nil {
		logger.Error("shutdown error", slog.Any("error", err))
	}

	<-shutdownCtx.Done()
	logger.Info("server stopped")

	return nil
}
