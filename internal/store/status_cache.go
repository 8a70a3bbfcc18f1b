package store

import (
	"context"
	"time"

	"github.com/mixforge/mixforge-api/internal/domain"
)

// StatusCache holds the last known status record per task with per-key
// expiry. It is a fast path populated by provider callbacks, not the source
// of truth: a miss (or any cache failure) simply routes the caller to the
// upstream provider.
type StatusCache interface {
	// Get returns the cached record for taskID, or ErrStatusNotCached when
	// no live record exists.
	Get(ctx context.Context, taskID string) (*domain.StatusRecord, error)

	// Put stores record under taskID with the given time-to-live, replacing
	// any existing record wholesale. Concurrent writers race with
	// last-write-wins semantics by design.
	Put(ctx context.Context, taskID string, record *domain.StatusRecord, ttl time.Duration) error
}
