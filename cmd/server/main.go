// Package main implements the mixforge-api server: the generation task
// relay endpoints, the provider callback receiver, and the retention
// cleanup trigger.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mixforge/mixforge-api/internal/config"
	"github.com/mixforge/mixforge-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run database migrations (up|down|status) and exit")
	flag.Parse()

	if err := run(*migrateCmd); err != nil {
		log.Fatalf("mixforge-api: %v", err)
	}
}

// run loads configuration, wires the application, and either executes a
// migration command or starts the HTTP server. Any missing required
// configuration fails here, before any work is attempted.
func run(migrateCmd string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	if migrateCmd != "" {
		return runMigrations(cfg, appLogger, migrateCmd)
	}

	ctx := context.Background()

	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	appLogger.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"public_base_url", cfg.Server.PublicBaseURL,
		"pid", os.Getpid())

	return app.startHTTPServer(ctx, app.setupRouter())
}
