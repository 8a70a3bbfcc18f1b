package store

import "context"

// BlobStore deletes binary objects by bucket and object identifier. The
// sweep is its only consumer; uploads and downloads are handled by the
// presentation layer outside this service.
type BlobStore interface {
	// Delete removes one object. Implementations map a missing object to
	// ErrBlobNotFound so callers can distinguish "already gone" from a
	// transport failure.
	Delete(ctx context.Context, bucketID, fileID string) error
}
