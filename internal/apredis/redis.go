package apredis

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	sconfig "github.com/rmorlok/connlifecycle/internal/schema/config"
)

var redisClient *redis.Client
var redisOnce sync.Once
var redisErr error

// NewRedis creates a new redis connection to a real redis instance. The client is shared for the process.
func NewRedis(ctx context.Context, redisConfig *sconfig.RedisReal) (Client, error) {
	if redisClient == nil {
		redisOnce.Do(func() {
			redisClient = redis.NewClient(redisConfig.ToRedisOptions())

			// Test the connection to ensure it's working
			_, err := redisClient.Ping(ctx).Result()
			if err != nil {
				redisErr = errors.Wrap(err, "failed to connect to real Redis server")
				return
			}
		})
	}

	if redisErr != nil {
		return nil, redisErr
	}

	return redisClient, nil
}
