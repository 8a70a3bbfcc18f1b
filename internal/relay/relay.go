// Package relay brokers generation tasks between clients and the upstream
// music provider. It submits jobs, folds the provider's push callbacks into
// the status cache, and answers status queries from the cache with a
// synchronous provider pull as fallback.
//
// The cache is a best-effort fast path, never the source of truth. Callback
// writes replace the whole record; two callbacks racing for the same task
// resolve last-write-wins, which is acceptable because the provider's
// notifications are monotonic in practice and the pull fallback always
// reflects upstream truth.
package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mixforge/mixforge-api/internal/domain"
	"github.com/mixforge/mixforge-api/internal/platform/logger"
	"github.com/mixforge/mixforge-api/internal/platform/suno"
	"github.com/mixforge/mixforge-api/internal/store"
)

// callbackPath is where the provider pushes task notifications, relative to
// the service's public base URL.
const callbackPath = "/api/generate/callback"

// Provider is the slice of the upstream client the relay depends on.
type Provider interface {
	// Generate submits a generation job and returns the provider task id.
	Generate(ctx context.Context, params suno.GenerateParams, callbackURL string) (string, error)

	// RecordInfo pulls the provider's current view of a task.
	RecordInfo(ctx context.Context, taskID string) (*domain.StatusRecord, error)
}

// Service implements the generation task relay.
type Service struct {
	logger        *slog.Logger
	provider      Provider
	cache         store.StatusCache
	publicBaseURL string
}

// NewService creates a relay service. All dependencies are required.
func NewService(provider Provider, cache store.StatusCache, publicBaseURL string, log *slog.Logger) (*Service, error) {
	if provider == nil {
		return nil, errors.New("provider cannot be nil")
	}
	if cache == nil {
		return nil, errors.New("cache cannot be nil")
	}
	if publicBaseURL == "" {
		return nil, errors.New("public base URL cannot be empty")
	}
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &Service{
		logger:        log.With("component", "relay"),
		provider:      provider,
		cache:         cache,
		publicBaseURL: publicBaseURL,
	}, nil
}

// Submit forwards a generation request to the provider with this service's
// callback address and returns the provider-issued task id. Nothing is
// cached on submission; the first cache entry arrives with the first
// callback.
func (s *Service) Submit(ctx context.Context, params suno.GenerateParams) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	taskID, err := s.provider.Generate(ctx, params, s.publicBaseURL+callbackPath)
	if err != nil {
		log.Warn("generation submission failed", "error", err)
		return "", fmt.Errorf("failed to submit generation task: %w", err)
	}

	log.Info("generation task submitted", "task_id", taskID)
	return taskID, nil
}

// IngestCallback folds one provider notification into the status cache.
//
// A payload without a task id is dropped silently: the provider occasionally
// delivers malformed bodies and there is nothing to key a record on. An
// unknown callback kind returns ErrUnknownCallbackKind and leaves the cache
// untouched. Cache write failures are returned to the caller for logging but
// the notification is considered consumed either way.
func (s *Service) IngestCallback(ctx context.Context, payload suno.CallbackPayload) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	taskID := payload.Data.TaskID
	if taskID == "" {
		log.Warn("callback without task id dropped",
			"callback_type", payload.Data.CallbackType)
		return nil
	}

	status, err := callbackStatus(payload)
	if err != nil {
		return fmt.Errorf("callback for task %s: %w", taskID, err)
	}

	record := &domain.StatusRecord{
		TaskID:    taskID,
		Status:    status,
		Artifacts: []domain.Artifact{},
	}
	if status == domain.TaskStatusComplete {
		for _, track := range payload.Data.Data {
			record.Artifacts = append(record.Artifacts, track.Artifact())
		}
	}

	if err := s.cache.Put(ctx, taskID, record, status.CacheTTL()); err != nil {
		log.Error("failed to cache callback status",
			"task_id", taskID,
			"status", status,
			"error", err)
		return fmt.Errorf("failed to cache status for task %s: %w", taskID, err)
	}

	log.Info("callback ingested",
		"task_id", taskID,
		"callback_type", payload.Data.CallbackType,
		"status", status,
		"artifact_count", len(record.Artifacts))
	return nil
}

// QueryStatus answers a status query from the cache, falling back to one
// synchronous provider pull on a miss. Cache failures are treated as misses.
// The pulled record is returned without writing it back; only callbacks
// populate the cache, so a pull never extends a record's lifetime.
func (s *Service) QueryStatus(ctx context.Context, taskID string) (*domain.StatusRecord, error) {
	if taskID == "" {
		return nil, ErrEmptyTaskID
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	record, err := s.cache.Get(ctx, taskID)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, store.ErrStatusNotCached) {
		log.Warn("status cache read failed, falling back to provider",
			"task_id", taskID,
			"error", err)
	}

	record, err = s.provider.RecordInfo(ctx, taskID)
	if err != nil {
		log.Warn("provider status pull failed",
			"task_id", taskID,
			"error", err)
		return nil, fmt.Errorf("failed to pull status for task %s: %w", taskID, err)
	}

	return record, nil
}

// callbackStatus maps a callback kind (and, for error callbacks, the
// provider code) onto the domain status the record should carry.
func callbackStatus(payload suno.CallbackPayload) (domain.TaskStatus, error) {
	switch payload.Data.CallbackType {
	case suno.CallbackTypeComplete:
		return domain.TaskStatusComplete, nil
	case suno.CallbackTypeError:
		// Code 400 marks content moderation rejections; everything else is
		// a generation failure.
		if payload.Code == 400 {
			return domain.TaskStatusRejected, nil
		}
		return domain.TaskStatusGenerateFailed, nil
	case suno.CallbackTypeText:
		return domain.TaskStatusTextReady, nil
	case suno.CallbackTypeFirst:
		return domain.TaskStatusFirstReady, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCallbackKind, payload.Data.CallbackType)
	}
}
