package suno

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig indicates the client was constructed with missing or
	// invalid configuration.
	ErrInvalidConfig = errors.New("invalid suno client configuration")

	// ErrUnknownProviderStatus indicates the provider reported a status
	// string outside its documented set. The closed domain enum makes this
	// an error rather than a silent fall-through.
	ErrUnknownProviderStatus = errors.New("unknown provider status")

	// ErrMalformedResponse indicates the provider answered 2xx but the body
	// did not carry the fields the contract promises.
	ErrMalformedResponse = errors.New("malformed provider response")
)

// UpstreamError is a non-2xx answer from the provider, preserved with
// enough detail for the caller to pass through or log. The relay never
// retries these; retry policy belongs to the caller.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream provider error: status %d: %s", e.StatusCode, e.Body)
}

// IsUpstreamError reports whether err is (or wraps) an UpstreamError,
// returning it when so.
func IsUpstreamError(err error) (*UpstreamError, bool) {
	var upstreamErr *UpstreamError
	if errors.As(err, &upstreamErr) {
		return upstreamErr, true
	}
	return nil, false
}
