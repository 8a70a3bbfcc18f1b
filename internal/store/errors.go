package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic form of the entity-specific not-found
	// errors below.
	ErrNotFound = errors.New("entity not found")

	// ErrStatusNotCached indicates a cache miss for a task's status record.
	// The relay treats this (and any other cache failure) as a signal to
	// fall through to the upstream provider.
	ErrStatusNotCached = fmt.Errorf("%w: status record", ErrNotFound)

	// ErrTrackNotFound indicates that the requested track does not exist in
	// the document store.
	ErrTrackNotFound = fmt.Errorf("%w: track", ErrNotFound)

	// ErrBlobNotFound indicates that the referenced object does not exist in
	// the blob store.
	ErrBlobNotFound = fmt.Errorf("%w: blob", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
