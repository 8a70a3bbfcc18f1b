package store

import (
	"context"
	"time"

	"github.com/mixforge/mixforge-api/internal/domain"
)

// TrackStore provides the slice of the track catalog the cleanup sweep
// needs: scanning soft-deleted records past a cutoff and hard-deleting them.
type TrackStore interface {
	// ListExpiredDeleted returns up to limit soft-deleted tracks whose
	// deletedAt is at or before cutoff, ordered by deletion time, starting
	// at offset. A short page means the scan has reached the end of the
	// eligible set.
	ListExpiredDeleted(ctx context.Context, cutoff time.Time, limit, offset int) ([]domain.TrackRecord, error)

	// Delete removes the track row permanently. Deleting an absent row
	// returns ErrTrackNotFound.
	Delete(ctx context.Context, id string) error
}
