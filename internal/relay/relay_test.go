package relay

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mixforge/mixforge-api/internal/domain"
	"github.com/mixforge/mixforge-api/internal/platform/suno"
	"github.com/mixforge/mixforge-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProvider implements Provider with settable function fields.
type mockProvider struct {
	GenerateFn   func(ctx context.Context, params suno.GenerateParams, callbackURL string) (string, error)
	RecordInfoFn func(ctx context.Context, taskID string) (*domain.StatusRecord, error)

	generateCalls   int
	recordInfoCalls int
}

func (m *mockProvider) Generate(ctx context.Context, params suno.GenerateParams, callbackURL string) (string, error) {
	m.generateCalls++
	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, params, callbackURL)
	}
	return "task-1", nil
}

func (m *mockProvider) RecordInfo(ctx context.Context, taskID string) (*domain.StatusRecord, error) {
	m.recordInfoCalls++
	if m.RecordInfoFn != nil {
		return m.RecordInfoFn(ctx, taskID)
	}
	return &domain.StatusRecord{TaskID: taskID, Status: domain.TaskStatusPending}, nil
}

// mockStatusCache implements store.StatusCache with settable function fields.
type mockStatusCache struct {
	GetFn func(ctx context.Context, taskID string) (*domain.StatusRecord, error)
	PutFn func(ctx context.Context, taskID string, record *domain.StatusRecord, ttl time.Duration) error

	putCalls []putCall
}

type putCall struct {
	taskID string
	record *domain.StatusRecord
	ttl    time.Duration
}

func (m *mockStatusCache) Get(ctx context.Context, taskID string) (*domain.StatusRecord, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, taskID)
	}
	return nil, store.ErrStatusNotCached
}

func (m *mockStatusCache) Put(ctx context.Context, taskID string, record *domain.StatusRecord, ttl time.Duration) error {
	m.putCalls = append(m.putCalls, putCall{taskID: taskID, record: record, ttl: ttl})
	if m.PutFn != nil {
		return m.PutFn(ctx, taskID, record, ttl)
	}
	return nil
}

func newTestService(t *testing.T, provider *mockProvider, cache *mockStatusCache) *Service {
	t.Helper()

	svc, err := NewService(provider, cache, "https://api.mixforge.example.com",
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return svc
}

func TestNewService_Validation(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name     string
		provider Provider
		cache    store.StatusCache
		baseURL  string
		logger   *slog.Logger
	}{
		{name: "nil_provider", provider: nil, cache: &mockStatusCache{}, baseURL: "https://x", logger: log},
		{name: "nil_cache", provider: &mockProvider{}, cache: nil, baseURL: "https://x", logger: log},
		{name: "empty_base_url", provider: &mockProvider{}, cache: &mockStatusCache{}, baseURL: "", logger: log},
		{name: "nil_logger", provider: &mockProvider{}, cache: &mockStatusCache{}, baseURL: "https://x", logger: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewService(tt.provider, tt.cache, tt.baseURL, tt.logger)

			assert.Error(t, err)
			assert.Nil(t, svc)
		})
	}
}

func TestService_Submit(t *testing.T) {
	t.Run("forwards_params_and_callback_url", func(t *testing.T) {
		var gotCallback string
		var gotPrompt string
		provider := &mockProvider{
			GenerateFn: func(_ context.Context, params suno.GenerateParams, callbackURL string) (string, error) {
				gotPrompt = params.Prompt
				gotCallback = callbackURL
				return "task-42", nil
			},
		}
		cache := &mockStatusCache{}
		svc := newTestService(t, provider, cache)

		taskID, err := svc.Submit(context.Background(), suno.GenerateParams{Prompt: "rainy jazz"})

		require.NoError(t, err)
		assert.Equal(t, "task-42", taskID)
		assert.Equal(t, "rainy jazz", gotPrompt)
		assert.Equal(t, "https://api.mixforge.example.com/api/generate/callback", gotCallback)
		assert.Empty(t, cache.putCalls, "submission must not seed the cache")
	})

	t.Run("provider_failure_passes_through", func(t *testing.T) {
		upstreamErr := &suno.UpstreamError{StatusCode: 429, Body: "credit exhausted"}
		provider := &mockProvider{
			GenerateFn: func(context.Context, suno.GenerateParams, string) (string, error) {
				return "", upstreamErr
			},
		}
		cache := &mockStatusCache{}
		svc := newTestService(t, provider, cache)

		taskID, err := svc.Submit(context.Background(), suno.GenerateParams{Prompt: "x"})

		assert.Empty(t, taskID)
		gotUpstream, ok := suno.IsUpstreamError(err)
		require.True(t, ok)
		assert.Equal(t, 429, gotUpstream.StatusCode)
		assert.Empty(t, cache.putCalls)
	})
}

func TestService_IngestCallback(t *testing.T) {
	tests := []struct {
		name         string
		payload      suno.CallbackPayload
		wantStatus   domain.TaskStatus
		wantTTL      time.Duration
		wantArtifact bool
	}{
		{
			name: "complete_with_artifacts",
			payload: suno.CallbackPayload{
				Code: 200,
				Data: suno.CallbackData{
					CallbackType: suno.CallbackTypeComplete,
					TaskID:       "task-1",
					Data: []suno.CallbackTrack{
						{ID: "a1", Title: "Track A", AudioURL: "https://cdn/a1.mp3", Duration: 120.5},
					},
				},
			},
			wantStatus:   domain.TaskStatusComplete,
			wantTTL:      domain.TerminalStatusTTL,
			wantArtifact: true,
		},
		{
			name: "error_code_400_is_rejection",
			payload: suno.CallbackPayload{
				Code: 400,
				Data: suno.CallbackData{CallbackType: suno.CallbackTypeError, TaskID: "task-2"},
			},
			wantStatus: domain.TaskStatusRejected,
			wantTTL:    domain.TerminalStatusTTL,
		},
		{
			name: "error_other_code_is_generation_failure",
			payload: suno.CallbackPayload{
				Code: 500,
				Data: suno.CallbackData{CallbackType: suno.CallbackTypeError, TaskID: "task-3"},
			},
			wantStatus: domain.TaskStatusGenerateFailed,
			wantTTL:    domain.TerminalStatusTTL,
		},
		{
			name: "text_is_intermediate",
			payload: suno.CallbackPayload{
				Code: 200,
				Data: suno.CallbackData{CallbackType: suno.CallbackTypeText, TaskID: "task-4"},
			},
			wantStatus: domain.TaskStatusTextReady,
			wantTTL:    domain.IntermediateStatusTTL,
		},
		{
			name: "first_is_intermediate",
			payload: suno.CallbackPayload{
				Code: 200,
				Data: suno.CallbackData{CallbackType: suno.CallbackTypeFirst, TaskID: "task-5"},
			},
			wantStatus: domain.TaskStatusFirstReady,
			wantTTL:    domain.IntermediateStatusTTL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := &mockStatusCache{}
			svc := newTestService(t, &mockProvider{}, cache)

			err := svc.IngestCallback(context.Background(), tt.payload)

			require.NoError(t, err)
			require.Len(t, cache.putCalls, 1)
			call := cache.putCalls[0]
			assert.Equal(t, tt.payload.Data.TaskID, call.taskID)
			assert.Equal(t, tt.wantStatus, call.record.Status)
			assert.Equal(t, tt.wantTTL, call.ttl)
			if tt.wantArtifact {
				require.Len(t, call.record.Artifacts, 1)
				assert.Equal(t, "a1", call.record.Artifacts[0].ID)
				assert.Equal(t, "https://cdn/a1.mp3", call.record.Artifacts[0].MediaURL)
			} else {
				assert.Empty(t, call.record.Artifacts)
			}
		})
	}

	t.Run("missing_task_id_is_a_no_op", func(t *testing.T) {
		cache := &mockStatusCache{}
		svc := newTestService(t, &mockProvider{}, cache)

		err := svc.IngestCallback(context.Background(), suno.CallbackPayload{
			Code: 200,
			Data: suno.CallbackData{CallbackType: suno.CallbackTypeComplete},
		})

		assert.NoError(t, err)
		assert.Empty(t, cache.putCalls)
	})

	t.Run("unknown_kind_fails_without_cache_write", func(t *testing.T) {
		cache := &mockStatusCache{}
		svc := newTestService(t, &mockProvider{}, cache)

		err := svc.IngestCallback(context.Background(), suno.CallbackPayload{
			Code: 200,
			Data: suno.CallbackData{CallbackType: "progress", TaskID: "task-9"},
		})

		assert.ErrorIs(t, err, ErrUnknownCallbackKind)
		assert.Empty(t, cache.putCalls)
	})

	t.Run("repeated_ingestion_is_idempotent", func(t *testing.T) {
		cache := &mockStatusCache{}
		svc := newTestService(t, &mockProvider{}, cache)
		payload := suno.CallbackPayload{
			Code: 200,
			Data: suno.CallbackData{
				CallbackType: suno.CallbackTypeComplete,
				TaskID:       "task-1",
				Data:         []suno.CallbackTrack{{ID: "a1"}},
			},
		}

		require.NoError(t, svc.IngestCallback(context.Background(), payload))
		require.NoError(t, svc.IngestCallback(context.Background(), payload))

		require.Len(t, cache.putCalls, 2)
		assert.Equal(t, cache.putCalls[0].record, cache.putCalls[1].record)
		assert.Equal(t, cache.putCalls[0].ttl, cache.putCalls[1].ttl)
	})

	t.Run("cache_write_failure_surfaces", func(t *testing.T) {
		cacheErr := errors.New("redis: connection refused")
		cache := &mockStatusCache{
			PutFn: func(context.Context, string, *domain.StatusRecord, time.Duration) error {
				return cacheErr
			},
		}
		svc := newTestService(t, &mockProvider{}, cache)

		err := svc.IngestCallback(context.Background(), suno.CallbackPayload{
			Code: 200,
			Data: suno.CallbackData{CallbackType: suno.CallbackTypeText, TaskID: "task-1"},
		})

		assert.ErrorIs(t, err, cacheErr)
	})
}

func TestService_QueryStatus(t *testing.T) {
	t.Run("cache_hit_skips_provider", func(t *testing.T) {
		cached := &domain.StatusRecord{TaskID: "task-1", Status: domain.TaskStatusFirstReady}
		cache := &mockStatusCache{
			GetFn: func(context.Context, string) (*domain.StatusRecord, error) {
				return cached, nil
			},
		}
		provider := &mockProvider{}
		svc := newTestService(t, provider, cache)

		record, err := svc.QueryStatus(context.Background(), "task-1")

		require.NoError(t, err)
		assert.Equal(t, cached, record)
		assert.Zero(t, provider.recordInfoCalls)
	})

	t.Run("miss_pulls_provider_exactly_once", func(t *testing.T) {
		cache := &mockStatusCache{}
		provider := &mockProvider{
			RecordInfoFn: func(_ context.Context, taskID string) (*domain.StatusRecord, error) {
				return &domain.StatusRecord{TaskID: taskID, Status: domain.TaskStatusComplete}, nil
			},
		}
		svc := newTestService(t, provider, cache)

		record, err := svc.QueryStatus(context.Background(), "task-1")

		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusComplete, record.Status)
		assert.Equal(t, 1, provider.recordInfoCalls)
		assert.Empty(t, cache.putCalls, "pull fallback must not write back")
	})

	t.Run("cache_failure_fails_open_to_provider", func(t *testing.T) {
		cache := &mockStatusCache{
			GetFn: func(context.Context, string) (*domain.StatusRecord, error) {
				return nil, errors.New("redis: connection refused")
			},
		}
		provider := &mockProvider{
			RecordInfoFn: func(_ context.Context, taskID string) (*domain.StatusRecord, error) {
				return &domain.StatusRecord{TaskID: taskID, Status: domain.TaskStatusPending}, nil
			},
		}
		svc := newTestService(t, provider, cache)

		record, err := svc.QueryStatus(context.Background(), "task-1")

		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusPending, record.Status)
		assert.Equal(t, 1, provider.recordInfoCalls)
	})

	t.Run("provider_failure_after_miss_surfaces", func(t *testing.T) {
		cache := &mockStatusCache{}
		provider := &mockProvider{
			RecordInfoFn: func(context.Context, string) (*domain.StatusRecord, error) {
				return nil, &suno.UpstreamError{StatusCode: 404, Body: "task not found"}
			},
		}
		svc := newTestService(t, provider, cache)

		record, err := svc.QueryStatus(context.Background(), "task-1")

		assert.Nil(t, record)
		gotUpstream, ok := suno.IsUpstreamError(err)
		require.True(t, ok)
		assert.Equal(t, 404, gotUpstream.StatusCode)
	})

	t.Run("empty_task_id_rejected", func(t *testing.T) {
		provider := &mockProvider{}
		svc := newTestService(t, provider, &mockStatusCache{})

		record, err := svc.QueryStatus(context.Background(), "")

		assert.Nil(t, record)
		assert.ErrorIs(t, err, ErrEmptyTaskID)
		assert.Zero(t, provider.recordInfoCalls)
	})
}
