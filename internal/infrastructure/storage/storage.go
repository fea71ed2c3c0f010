// Package storage persists uploaded files and returns the URL they are served from.
package storage

import (
	"context"
	"fmt"
	"io"

	"blood-donation-api/config"
)

type FileStorage interface {
	Save(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// New builds the storage selected by cfg.Driver ("local" or "s3").
func New(ctx context.Context, cfg config.StorageConfig) (FileStorage, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalStorage(cfg.UploadDir, "/public/uploads"), nil
	case "s3":
		return NewS3Storage(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
