// Package gcs implements the blob store on Google Cloud Storage. The only
// operation this service needs is deletion; uploads happen in the
// presentation layer with signed URLs.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/storage"
	"github.com/mixforge/mixforge-api/internal/store"
)

// BlobStore implements store.BlobStore using a GCS client. Bucket names are
// passed per call because track records can pin a bucket explicitly.
type BlobStore struct {
	client *storage.Client
}

// NewBlobStore creates a GCS-backed blob store using ambient credentials
// (service account or workload identity).
func NewBlobStore(ctx context.Context) (*BlobStore, error) {
	initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := storage.NewClient(initCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &BlobStore{client: client}, nil
}

// Delete removes one object. A missing object maps to store.ErrBlobNotFound.
func (b *BlobStore) Delete(ctx context.Context, bucketID, fileID string) error {
	err := b.client.Bucket(bucketID).Object(fileID).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("%w: %s/%s", store.ErrBlobNotFound, bucketID, fileID)
	}
	if err != nil {
		return fmt.Errorf("failed to delete blob %s/%s: %w", bucketID, fileID, err)
	}
	return nil
}

// Close releases the underlying client.
func (b *BlobStore) Close() error {
	return b.client.Close()
}
