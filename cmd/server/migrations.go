package main

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"github.com/mixforge/mixforge-api/internal/config"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// runMigrations executes the requested goose command against the configured
// database and returns. The migrations ship embedded in the binary so
// deployments need no migration files on disk.
func runMigrations(cfg *config.Config, log *slog.Logger, command string) error {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database for migrations: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close migration database connection", "error", err)
		}
	}()

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	log.Info("running migrations", "command", command)

	switch command {
	case "up":
		err = goose.Up(db, "migrations")
	case "down":
		err = goose.Down(db, "migrations")
	case "status":
		err = goose.Status(db, "migrations")
	default:
		return fmt.Errorf("unknown migration command %q (want up, down, or status)", command)
	}
	if err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	log.Info("migrations finished", "command", command)
	return nil
}
