package registry

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/rmorlok/connlifecycle/internal/apblob"
	sconfig "github.com/rmorlok/connlifecycle/internal/schema/config"
)

// NewForRoot creates the registry client selected by the configuration.
func NewForRoot(ctx context.Context, root *sconfig.Root, logger *slog.Logger) (Client, error) {
	if root == nil || root.Registry == nil || root.Registry.InnerVal == nil {
		return nil, errors.New("registry configuration is required")
	}

	switch v := root.Registry.InnerVal.(type) {
	case *sconfig.RegistryRemote:
		return NewRemoteClient(v, logger), nil
	case *sconfig.RegistrySnapshot:
		return NewSnapshotClient(v, logger), nil
	case *sconfig.RegistryBlob:
		blobs, err := apblob.NewFromConfig(ctx, v.Storage)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create blob storage for registry")
		}
		return NewBlobClient(blobs, v.GetKeyOrDefault(), logger), nil
	default:
		return nil, errors.New("registry type not supported")
	}
}
