package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/mixforge/mixforge-api/internal/cleanup"
	"github.com/mixforge/mixforge-api/internal/config"
	"github.com/mixforge/mixforge-api/internal/domain"
	"github.com/mixforge/mixforge-api/internal/platform/gcs"
	"github.com/mixforge/mixforge-api/internal/platform/postgres"
	"github.com/mixforge/mixforge-api/internal/platform/redis"
	"github.com/mixforge/mixforge-api/internal/platform/suno"
	"github.com/mixforge/mixforge-api/internal/relay"
)

// application holds the wired dependency graph. Lifecycle is owned here:
// newApplication constructs everything, cleanup releases it in reverse
// order on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	db          *sql.DB
	statusCache *redis.StatusCache
	blobStore   *gcs.BlobStore

	relayService *relay.Service
	sweep        *cleanup.Sweep
}

// newApplication wires the full dependency graph from configuration.
// Every external dependency is verified reachable before the server
// accepts traffic.
func newApplication(ctx context.Context, cfg *config.Config, log *slog.Logger) (*application, error) {
	db, err := setupAppDatabase(cfg, log)
	if err != nil {
		return nil, err
	}

	statusCache, err := redis.NewStatusCache(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect status cache: %w", err)
	}
	log.Info("status cache connected", "addr", cfg.Redis.Addr)

	blobStore, err := gcs.NewBlobStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob store: %w", err)
	}

	providerClient, err := suno.NewClient(cfg.Suno, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider client: %w", err)
	}

	relayService, err := relay.NewService(providerClient, statusCache, cfg.Server.PublicBaseURL, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create relay service: %w", err)
	}

	trackStore := postgres.NewTrackStore(db)
	buckets := domain.BucketSet{
		Uploads:   cfg.Storage.UploadsBucket,
		Stems:     cfg.Storage.StemsBucket,
		Generated: cfg.Storage.GeneratedBucket,
	}
	sweep, err := cleanup.NewSweep(trackStore, blobStore, buckets, cfg.Cleanup, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create cleanup sweep: %w", err)
	}

	return &application{
		config:       cfg,
		logger:       log,
		db:           db,
		statusCache:  statusCache,
		blobStore:    blobStore,
		relayService: relayService,
		sweep:        sweep,
	}, nil
}

// cleanup releases held connections. Errors are logged, not returned; this
// runs on the shutdown path where there is nothing left to abort.
func (app *application) cleanup() {
	if err := app.blobStore.Close(); err != nil {
		app.logger.Error("failed to close blob store", "error", err)
	}
	if err := app.statusCache.Close(); err != nil {
		app.logger.Error("failed to close status cache", "error", err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database", "error", err)
	}
}
