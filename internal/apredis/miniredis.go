package apredis

import (
	"context"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	sconfig "github.com/rmorlok/connlifecycle/internal/schema/config"
)

var miniredisServer *miniredis.Miniredis
var miniredisClient *redis.Client
var miniredisMutex sync.Mutex
var miniredisErr error

// NewMiniredis starts (once per process) an in-memory redis and returns a client connected to it.
func NewMiniredis(redisConfig *sconfig.RedisMiniredis) (Client, error) {
	miniredisMutex.Lock()
	defer miniredisMutex.Unlock()

	if miniredisServer == nil && miniredisErr == nil {
		server, err := miniredis.Run()
		if err != nil {
			miniredisErr = errors.Wrap(err, "failed to start miniredis server")
			return nil, miniredisErr
		}

		client := redis.NewClient(&redis.Options{
			Addr:     server.Addr(),
			Protocol: 2,
		})

		// Test the connection to ensure it's working
		if _, err := client.Ping(context.Background()).Result(); err != nil {
			server.Close()
			miniredisErr = errors.Wrap(err, "failed to connect to miniredis client")
			return nil, miniredisErr
		}

		miniredisServer = server
		miniredisClient = client
	}

	if miniredisErr != nil {
		return nil, miniredisErr
	}

	return miniredisClient, nil
}

// NewTestMiniredis starts a miniredis private to the test. The server is returned so tests can manipulate time
// or inspect keys.
func NewTestMiniredis(t testing.TB) (Client, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr:     server.Addr(),
		Protocol: 2,
	})
	t.Cleanup(func() { _ = client.Close() })

	return client, server
}
