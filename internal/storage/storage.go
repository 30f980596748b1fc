// Package storage persists uploaded post images. The backend is selected by
// configuration: local disk for development, S3 for production.
package storage

import (
	"context"
	"io"

	"lifelog/internal/config"
)

// Store writes image blobs and resolves their public URLs.
type Store interface {
	// Put writes the blob under key and returns the URL clients use to
	// fetch it.
	Put(ctx context.Context, key, contentType string, r io.Reader, size int64) (string, error)
}

// New builds the Store named by cfg.StorageBackend.
func New(cfg *config.Config) (Store, error) {
	if cfg.StorageBackend == "s3" {
		return NewS3Store(cfg.S3Region, cfg.S3Bucket, cfg.S3Endpoint)
	}
	return NewLocalStore(cfg.StorageDir, cfg.StorageBaseURL)
}
