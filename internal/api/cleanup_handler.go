package api

import (
	"context"
	"net/http"
	"time"

	"github.com/mixforge/mixforge-api/internal/api/shared"
	"github.com/mixforge/mixforge-api/internal/cleanup"
	"github.com/mixforge/mixforge-api/internal/platform/logger"
	"github.com/mixforge/mixforge-api/internal/redact"
)

// SweepRunner runs one retention sweep.
type SweepRunner interface {
	Run(ctx context.Context) (cleanup.Summary, error)
}

// CleanupHandler serves the cleanup trigger route.
type CleanupHandler struct {
	sweep         SweepRunner
	retentionDays int
}

// NewCleanupHandler creates a handler over the given sweep.
func NewCleanupHandler(sweep SweepRunner, retentionDays int) *CleanupHandler {
	return &CleanupHandler{sweep: sweep, retentionDays: retentionDays}
}

// Run handles POST /api/cleanup. Per-item failures are reported inside a 200
// summary; only a fatal failure (the scan itself breaking) produces a 500.
func (h *CleanupHandler) Run(w http.ResponseWriter, r *http.Request) {
	summary, err := h.sweep.Run(r.Context())
	if err != nil {
		log := logger.FromContext(r.Context())
		log.Error("retention sweep failed", "error", err)
		shared.RespondWithJSON(w, r, http.StatusInternalServerError, CleanupErrorResponse{
			OK:      false,
			Message: redact.Error(err),
		})
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CleanupResponse{
		OK:            true,
		Scanned:       summary.Scanned,
		DocsDeleted:   summary.DocsDeleted,
		DocsFailed:    summary.DocsFailed,
		FilesDeleted:  summary.FilesDeleted,
		FilesFailed:   summary.FilesFailed,
		RetentionDays: h.retentionDays,
		Cutoff:        summary.Cutoff.Format(time.RFC3339),
	})
}
