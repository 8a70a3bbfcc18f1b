package api

import (
	"errors"
	"net/http"

	"github.com/mixforge/mixforge-api/internal/platform/suno"
	"github.com/mixforge/mixforge-api/internal/relay"
	"github.com/mixforge/mixforge-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types to clients. Upstream provider rejections pass
// their original status code through so the UI can react to rate limits and
// moderation responses directly.
func MapErrorToStatusCode(err error) int {
	var upstreamErr *suno.UpstreamError
	switch {
	case errors.As(err, &upstreamErr):
		if upstreamErr.StatusCode >= http.StatusBadRequest {
			return upstreamErr.StatusCode
		}
		return http.StatusBadGateway

	case errors.Is(err, relay.ErrEmptyTaskID):
		return http.StatusBadRequest

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, suno.ErrUnknownProviderStatus),
		errors.Is(err, suno.ErrMalformedResponse):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err. Raw error
// strings never reach the client; upstream provider bodies do, because the
// original request was made on the client's behalf and the provider's
// detail (credit exhaustion, moderation) is what the UI surfaces.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var upstreamErr *suno.UpstreamError
	switch {
	case errors.As(err, &upstreamErr):
		if upstreamErr.Body != "" {
			return upstreamErr.Body
		}
		return "Upstream provider error"

	case errors.Is(err, relay.ErrEmptyTaskID):
		return "taskId is required"

	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	case errors.Is(err, suno.ErrUnknownProviderStatus),
		errors.Is(err, suno.ErrMalformedResponse):
		return "Upstream provider returned an unexpected response"

	default:
		return "An unexpected error occurred"
	}
}
