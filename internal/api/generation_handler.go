package api

import (
	"context"
	"net/http"

	"github.com/mixforge/mixforge-api/internal/api/shared"
	"github.com/mixforge/mixforge-api/internal/domain"
	"github.com/mixforge/mixforge-api/internal/platform/logger"
	"github.com/mixforge/mixforge-api/internal/platform/suno"
)

// RelayService is the slice of the relay the handlers depend on.
type RelayService interface {
	Submit(ctx context.Context, params suno.GenerateParams) (string, error)
	IngestCallback(ctx context.Context, payload suno.CallbackPayload) error
	QueryStatus(ctx context.Context, taskID string) (*domain.StatusRecord, error)
}

// GenerationHandler serves the generation relay routes.
type GenerationHandler struct {
	relay RelayService
}

// NewGenerationHandler creates a handler over the given relay service.
func NewGenerationHandler(relay RelayService) *GenerationHandler {
	return &GenerationHandler{relay: relay}
}

// Submit handles POST /api/generate.
func (h *GenerationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	taskID, err := h.relay.Submit(r.Context(), req.GenerateParams)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, GenerateResponse{TaskID: taskID})
}

// Callback handles POST /api/generate/callback.
//
// The provider treats any non-200 as a delivery failure and redelivers, so
// this endpoint acknowledges unconditionally: malformed bodies and unknown
// callback kinds are logged and dropped, never bounced.
func (h *GenerationHandler) Callback(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var payload suno.CallbackPayload
	if err := shared.DecodeJSON(r, &payload); err != nil {
		log.Warn("undecodable generation callback dropped", "error", err)
		shared.RespondWithJSON(w, r, http.StatusOK, CallbackAck{OK: true})
		return
	}

	if err := h.relay.IngestCallback(r.Context(), payload); err != nil {
		log.Error("failed to ingest generation callback",
			"task_id", payload.Data.TaskID,
			"callback_type", payload.Data.CallbackType,
			"error", err)
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CallbackAck{OK: true})
}

// Status handles GET /api/generate/status.
func (h *GenerationHandler) Status(w http.ResponseWriter, r *http.Request) {
	taskID := r.URL.Query().Get("taskId")
	if taskID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "taskId is required")
		return
	}

	record, err := h.relay.QueryStatus(r.Context(), taskID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	artifacts := record.Artifacts
	if artifacts == nil {
		artifacts = []domain.Artifact{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, StatusResponse{
		TaskID:    record.TaskID,
		Status:    record.Status,
		Artifacts: artifacts,
	})
}
