// Package main implements the entry point for the MicroPay API server,
// which exposes the registration, transfer and notification workflows over
// HTTP.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/micropay/micropay-api/internal/config"
	"github.com/micropay/micropay-api/internal/platform/logger"
)

func main() {
	app, err := initializeApp(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.run(context.Background()); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
}

// initializeApp loads configuration, sets up logging and builds the full
// dependency graph: database, AWS clients, stores, services and handlers.
func initializeApp(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if _, err := logger.Setup(cfg.Server); err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"aws_region", cfg.AWS.Region)

	app, err := newApplication(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build application: %w", err)
	}

	return app, nil
}
