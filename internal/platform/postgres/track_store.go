// Package postgres contains the PostgreSQL-backed store implementations.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mixforge/mixforge-api/internal/domain"
	"github.com/mixforge/mixforge-api/internal/platform/logger"
	"github.com/mixforge/mixforge-api/internal/store"
)

// TrackStore implements the store.TrackStore interface using PostgreSQL.
type TrackStore struct {
	db store.DBTX
}

// NewTrackStore creates a new TrackStore.
func NewTrackStore(db store.DBTX) *TrackStore {
	return &TrackStore{
		db: db,
	}
}

// ListExpiredDeleted returns up to limit soft-deleted tracks whose
// deleted_at is at or before cutoff, ordered by deletion time so repeated
// sweeps drain the oldest backlog first.
func (s *TrackStore) ListExpiredDeleted(ctx context.Context, cutoff time.Time, limit, offset int) ([]domain.TrackRecord, error) {
	log := logger.FromContext(ctx)

	query := `
		SELECT id, title, source, is_deleted, deleted_at,
		       file_id, bucket_id,
		       original_file_id, stem_vocals_id, stem_drums_id, stem_bass_id, stem_other_id,
		       created_at, updated_at
		FROM tracks
		WHERE is_deleted = TRUE AND deleted_at <= $1
		ORDER BY deleted_at ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := s.db.QueryContext(ctx, query, cutoff.UTC(), limit, offset)
	if err != nil {
		log.Error("failed to query expired deleted tracks",
			"cutoff", cutoff,
			"error", err)
		return nil, fmt.Errorf("failed to query expired deleted tracks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tracks []domain.TrackRecord

	for rows.Next() {
		var (
			t         domain.TrackRecord
			deletedAt sql.NullTime
			fileID    sql.NullString
			bucketID  sql.NullString
			original  sql.NullString
			vocals    sql.NullString
			drums     sql.NullString
			bass      sql.NullString
			other     sql.NullString
		)

		if err := rows.Scan(
			&t.ID, &t.Title, &t.Source, &t.IsDeleted, &deletedAt,
			&fileID, &bucketID,
			&original, &vocals, &drums, &bass, &other,
			&t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			log.Error("failed to scan track row", "error", err)
			return nil, fmt.Errorf("failed to scan track row: %w", err)
		}

		if deletedAt.Valid {
			deleted := deletedAt.Time
			t.DeletedAt = &deleted
		}
		t.FileID = fileID.String
		t.BucketID = bucketID.String
		t.OriginalFileID = original.String
		t.StemVocalsID = vocals.String
		t.StemDrumsID = drums.String
		t.StemBassID = bass.String
		t.StemOtherID = other.String

		tracks = append(tracks, t)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating track rows", "error", err)
		return nil, fmt.Errorf("error iterating track rows: %w", err)
	}

	return tracks, nil
}

// Delete removes the track row permanently.
func (s *TrackStore) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tracks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete track",
			"track_id", id,
			"error", err)
		return fmt.Errorf("failed to delete track: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrTrackNotFound
	}

	return nil
}
