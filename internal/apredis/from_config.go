package apredis

import (
	"context"

	"github.com/pkg/errors"
	sconfig "github.com/rmorlok/connlifecycle/internal/schema/config"
)

// NewForRoot creates a new redis client from the specified configuration. The type of the client
// returned will be determined by the configuration.
func NewForRoot(ctx context.Context, root *sconfig.Root) (Client, error) {
	if root == nil || root.Redis == nil || root.Redis.InnerVal == nil {
		return nil, errors.New("redis configuration is required")
	}

	switch v := root.Redis.InnerVal.(type) {
	case *sconfig.RedisMiniredis:
		return NewMiniredis(v)
	case *sconfig.RedisReal:
		return NewRedis(ctx, v)
	default:
		return nil, errors.New("redis type not supported")
	}
}
