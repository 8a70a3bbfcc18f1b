// Package suno implements the client for the upstream music generation
// provider (kie.ai's Suno API). It exposes the two calls the relay needs,
// submitting a generation job and pulling a task's status, and normalizes
// the provider's wire shapes into domain types at the boundary.
package suno

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/mixforge/mixforge-api/internal/config"
	"github.com/mixforge/mixforge-api/internal/domain"
)

const (
	generatePath   = "/api/v1/generate"
	recordInfoPath = "/api/v1/generate/record-info"
)

// Client talks to the upstream generation provider over HTTP.
type Client struct {
	logger     *slog.Logger
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a provider client from configuration.
//
// The request timeout applies per round trip; the client performs no
// retries of its own. Retry policy belongs to the caller.
func NewClient(cfg config.SunoConfig, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: API key cannot be empty", ErrInvalidConfig)
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: base URL cannot be empty", ErrInvalidConfig)
	}
	if cfg.RequestTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("%w: request timeout must be positive", ErrInvalidConfig)
	}

	return &Client{
		logger:     logger,
		httpClient: &http.Client{Timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
	}, nil
}

// Generate submits a generation job with the given callback address and
// returns the provider-issued task identifier. A non-2xx answer surfaces as
// *UpstreamError carrying the provider's status code and body.
func (c *Client) Generate(ctx context.Context, params GenerateParams, callbackURL string) (string, error) {
	body, err := json.Marshal(generateRequest{
		GenerateParams: params,
		CallBackURL:    callbackURL,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generatePath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build generate request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read generate response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Warn("provider rejected generation request",
			"status_code", resp.StatusCode)
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if parsed.Data.TaskID == "" {
		return "", fmt.Errorf("%w: missing task id", ErrMalformedResponse)
	}

	c.logger.Debug("generation task created",
		"task_id", parsed.Data.TaskID)
	return parsed.Data.TaskID, nil
}

// RecordInfo pulls the provider's current view of a task and returns it
// mapped into a domain status record. This is the synchronous fallback for
// tasks whose callbacks have not arrived (or expired from the cache).
func (c *Client) RecordInfo(ctx context.Context, taskID string) (*domain.StatusRecord, error) {
	endpoint := fmt.Sprintf("%s%s?taskId=%s", c.baseURL, recordInfoPath, url.QueryEscape(taskID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build record-info request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("record-info request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read record-info response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var parsed recordInfoResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	status, err := mapWireStatus(parsed.Data.Status)
	if err != nil {
		return nil, err
	}

	record := &domain.StatusRecord{
		TaskID:    taskID,
		Status:    status,
		Artifacts: []domain.Artifact{},
	}
	if status == domain.TaskStatusComplete {
		for _, track := range parsed.Data.Response.SunoData {
			record.Artifacts = append(record.Artifacts, track.artifact())
		}
	}

	return record, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
}
