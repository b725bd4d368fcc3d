package apblob

import (
	"context"

	"github.com/pkg/errors"
	sconfig "github.com/rmorlok/connlifecycle/internal/schema/config"
)

// NewFromConfig creates the blob storage client selected by the configuration.
func NewFromConfig(ctx context.Context, cfg *sconfig.BlobStorage) (Client, error) {
	if cfg == nil || cfg.InnerVal == nil {
		return nil, errors.New("blob storage configuration is required")
	}

	switch v := cfg.InnerVal.(type) {
	case *sconfig.BlobStorageMemory:
		return NewMemoryClient(), nil
	case *sconfig.BlobStorageS3:
		return NewS3Client(ctx, v)
	default:
		return nil, errors.New("blob storage type not supported")
	}
}
