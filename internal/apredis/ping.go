package apredis

import (
	"context"
	"log/slog"
)

// Ping reports whether redis answers. Failures are logged rather than returned so this can back health checks.
func Ping(ctx context.Context, c Client, logger *slog.Logger) bool {
	if c == nil {
		logger.Error("redis client is unexpectedly nil")
		return false
	}

	if _, err := c.Ping(ctx).Result(); err != nil {
		logger.Error("failed to connect to redis server", "error", err)
		return false
	}

	return true
}
