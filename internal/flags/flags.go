// Package flags answers feature flag queries. Values come from config, optionally overridden per flag in redis.
package flags

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rmorlok/connlifecycle/internal/apredis"
	sconfig "github.com/rmorlok/connlifecycle/internal/schema/config"
)

// PauseSyncsWithUnsupportedVersions allows the support state run to pause connections on unsupported versions.
const PauseSyncsWithUnsupportedVersions = "pause_syncs_with_unsupported_versions"

//go:generate mockgen -source=./flags.go -destination=./mock/flags.go -package=mock
type Client interface {
	// IsEnabled reports the flag's value. Unknown flags are disabled.
	IsEnabled(ctx context.Context, flag string) (bool, error)
}

type staticClient struct {
	values map[string]bool
}

// NewStaticClient serves fixed values.
func NewStaticClient(values map[string]bool) Client {
	cpy := make(map[string]bool, len(values))
	for k, v := range values {
		cpy[k] = v
	}
	return &staticClient{values: cpy}
}

func (c *staticClient) IsEnabled(_ context.Context, flag string) (bool, error) {
	return c.values[flag], nil
}

type redisOverrideClient struct {
	fallback Client
	r        apredis.Client
	prefix   string
}

// NewRedisOverrideClient reads prefix+flag from redis. A missing key defers to fallback. Stored values use
// strconv.ParseBool syntax.
func NewRedisOverrideClient(r apredis.Client, prefix string, fallback Client) Client {
	return &redisOverrideClient{
		fallback: fallback,
		r:        r,
		prefix:   prefix,
	}
}

func (c *redisOverrideClient) IsEnabled(ctx context.Context, flag string) (bool, error) {
	val, err := c.r.Get(ctx, c.prefix+flag).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return c.fallback.IsEnabled(ctx, flag)
		}
		return false, errors.Wrapf(err, "failed to read flag '%s'", flag)
	}

	enabled, err := strconv.ParseBool(val)
	if err != nil {
		return false, errors.Wrapf(err, "flag '%s' has non-boolean value '%s'", flag, val)
	}

	return enabled, nil
}

// StaticValuesForRoot collects the configured flag values. Explicit entries under lifecycle.flags.static win over
// the dedicated lifecycle settings.
func StaticValuesForRoot(root *sconfig.Root) map[string]bool {
	values := make(map[string]bool)
	if root == nil || root.Lifecycle == nil {
		return values
	}

	values[PauseSyncsWithUnsupportedVersions] = root.Lifecycle.PauseSyncsWithUnsupportedVersions

	if f := root.Lifecycle.GetFlags(); f != nil {
		for k, v := range f.Static {
			values[k] = v
		}
	}

	return values
}

// NewForRoot builds the flag client the configuration asks for. r may be nil when redis overrides are disabled.
func NewForRoot(root *sconfig.Root, r apredis.Client) (Client, error) {
	static := NewStaticClient(StaticValuesForRoot(root))
	if root == nil {
		return static, nil
	}

	f := root.Lifecycle.GetFlags()
	if f == nil || !f.RedisOverrides {
		return static, nil
	}

	if r == nil {
		return nil, errors.New("redis overrides for flags require a redis client")
	}

	return NewRedisOverrideClient(r, f.GetKeyPrefixOrDefault(), static), nil
}
