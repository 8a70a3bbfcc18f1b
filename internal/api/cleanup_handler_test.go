package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mixforge/mixforge-api/internal/cleanup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSweep implements SweepRunner with a settable function field.
type mockSweep struct {
	RunFn func(ctx context.Context) (cleanup.Summary, error)
}

func (m *mockSweep) Run(ctx context.Context) (cleanup.Summary, error) {
	if m.RunFn != nil {
		return m.RunFn(ctx)
	}
	return cleanup.Summary{}, nil
}

func TestCleanupHandler_Run(t *testing.T) {
	t.Run("reports_summary", func(t *testing.T) {
		cutoff := time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)
		handler := NewCleanupHandler(&mockSweep{
			RunFn: func(context.Context) (cleanup.Summary, error) {
				return cleanup.Summary{
					Scanned:      12,
					DocsDeleted:  11,
					DocsFailed:   1,
					FilesDeleted: 30,
					FilesFailed:  2,
					Cutoff:       cutoff,
				}, nil
			},
		}, 30)

		w := httptest.NewRecorder()
		handler.Run(w, httptest.NewRequest("POST", "/api/cleanup", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var resp CleanupResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.OK)
		assert.Equal(t, 12, resp.Scanned)
		assert.Equal(t, 11, resp.DocsDeleted)
		assert.Equal(t, 1, resp.DocsFailed)
		assert.Equal(t, 30, resp.FilesDeleted)
		assert.Equal(t, 2, resp.FilesFailed)
		assert.Equal(t, 30, resp.RetentionDays)
		assert.Equal(t, "2025-06-15T09:30:00Z", resp.Cutoff)
	})

	t.Run("per_item_failures_still_report_200", func(t *testing.T) {
		handler := NewCleanupHandler(&mockSweep{
			RunFn: func(context.Context) (cleanup.Summary, error) {
				return cleanup.Summary{Scanned: 5, DocsFailed: 5, FilesFailed: 9}, nil
			},
		}, 30)

		w := httptest.NewRecorder()
		handler.Run(w, httptest.NewRequest("POST", "/api/cleanup", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"ok":true`)
	})

	t.Run("fatal_failure_reports_500", func(t *testing.T) {
		handler := NewCleanupHandler(&mockSweep{
			RunFn: func(context.Context) (cleanup.Summary, error) {
				return cleanup.Summary{}, errors.New("failed to scan expired tracks: pq: relation does not exist")
			},
		}, 30)

		w := httptest.NewRecorder()
		handler.Run(w, httptest.NewRequest("POST", "/api/cleanup", nil))

		require.Equal(t, http.StatusInternalServerError, w.Code)
		var resp CleanupErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.OK)
		assert.NotEmpty(t, resp.Message)
	})
}
