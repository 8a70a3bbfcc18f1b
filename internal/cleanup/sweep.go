// Package cleanup implements the retention sweep over soft-deleted tracks:
// scan records past the retention cutoff, cascade deletion to their blobs
// best-effort, then remove the catalog rows.
package cleanup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mixforge/mixforge-api/internal/config"
	"github.com/mixforge/mixforge-api/internal/domain"
	"github.com/mixforge/mixforge-api/internal/platform/logger"
	"github.com/mixforge/mixforge-api/internal/store"
)

// Summary is the accounting for one sweep run. Each counter increments
// exactly once per outcome.
type Summary struct {
	Scanned      int       `json:"scanned"`
	DocsDeleted  int       `json:"docsDeleted"`
	DocsFailed   int       `json:"docsFailed"`
	FilesDeleted int       `json:"filesDeleted"`
	FilesFailed  int       `json:"filesFailed"`
	Cutoff       time.Time `json:"cutoff"`
}

// Sweep is the retention cleanup job.
type Sweep struct {
	logger  *slog.Logger
	tracks  store.TrackStore
	blobs   store.BlobStore
	buckets domain.BucketSet
	cfg     config.CleanupConfig

	// now is injected so tests can pin the cutoff.
	now func() time.Time
}

// NewSweep creates a sweep over the given stores.
func NewSweep(tracks store.TrackStore, blobs store.BlobStore, buckets domain.BucketSet, cfg config.CleanupConfig, log *slog.Logger) (*Sweep, error) {
	if tracks == nil {
		return nil, errors.New("track store cannot be nil")
	}
	if blobs == nil {
		return nil, errors.New("blob store cannot be nil")
	}
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.PageSize <= 0 || cfg.MaxDocsPerRun <= 0 || cfg.RetentionDays <= 0 {
		return nil, errors.New("cleanup page size, max docs per run, and retention days must be positive")
	}

	return &Sweep{
		logger:  log.With("component", "cleanup"),
		tracks:  tracks,
		blobs:   blobs,
		buckets: buckets,
		cfg:     cfg,
		now:     time.Now,
	}, nil
}

// Run executes one bounded sweep. The scan completes before any deletion so
// offset pagination never skews against a shrinking result set. Per-item
// failures land in the summary counters; only a scan failure aborts the run.
func (s *Sweep) Run(ctx context.Context) (Summary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With("run_id", uuid.NewString())

	cutoff := s.now().UTC().AddDate(0, 0, -s.cfg.RetentionDays)
	summary := Summary{Cutoff: cutoff}

	log.Info("retention sweep starting",
		"cutoff", cutoff,
		"retention_days", s.cfg.RetentionDays,
		"max_docs", s.cfg.MaxDocsPerRun)

	expired, err := s.collect(ctx, cutoff)
	if err != nil {
		return summary, fmt.Errorf("failed to scan expired tracks: %w", err)
	}
	summary.Scanned = len(expired)

	for _, track := range expired {
		s.deleteTrack(ctx, log, track, &summary)
	}

	log.Info("retention sweep finished",
		"scanned", summary.Scanned,
		"docs_deleted", summary.DocsDeleted,
		"docs_failed", summary.DocsFailed,
		"files_deleted", summary.FilesDeleted,
		"files_failed", summary.FilesFailed)
	return summary, nil
}

// collect pages through the eligible set until a short page or the per-run
// cap, without deleting anything.
func (s *Sweep) collect(ctx context.Context, cutoff time.Time) ([]domain.TrackRecord, error) {
	var collected []domain.TrackRecord
	offset := 0

	for len(collected) < s.cfg.MaxDocsPerRun {
		limit := s.cfg.PageSize
		if remaining := s.cfg.MaxDocsPerRun - len(collected); remaining < limit {
			limit = remaining
		}

		page, err := s.tracks.ListExpiredDeleted(ctx, cutoff, limit, offset)
		if err != nil {
			return nil, err
		}

		collected = append(collected, page...)
		offset += len(page)

		if len(page) < limit {
			break
		}
	}

	return collected, nil
}

// deleteTrack cascades one record: blobs first, best effort, then the row
// regardless of blob outcomes. Objects already absent count as deleted so
// reruns after a partial failure converge instead of re-failing.
func (s *Sweep) deleteTrack(ctx context.Context, log *slog.Logger, track domain.TrackRecord, summary *Summary) {
	refs := domain.DedupeFileRefs(track.FileRefs(s.buckets))

	for _, ref := range refs {
		err := s.blobs.Delete(ctx, ref.BucketID, ref.FileID)
		switch {
		case err == nil, store.IsNotFoundError(err):
			summary.FilesDeleted++
		default:
			summary.FilesFailed++
			log.Warn("failed to delete blob",
				"track_id", track.ID,
				"bucket_id", ref.BucketID,
				"file_id", ref.FileID,
				"error", err)
		}
	}

	err := s.tracks.Delete(ctx, track.ID)
	switch {
	case err == nil, store.IsNotFoundError(err):
		summary.DocsDeleted++
	default:
		summary.DocsFailed++
		log.Warn("failed to delete track record",
			"track_id", track.ID,
			"error", err)
	}
}
