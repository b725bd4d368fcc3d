package apredis

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/rmorlok/connlifecycle/internal/config"
	sconfig "github.com/rmorlok/connlifecycle/internal/schema/config"
)

// MustApplyTestConfig points the config at miniredis and returns a client for a fresh server private to the test.
func MustApplyTestConfig(t testing.TB, cfg config.C) (config.C, Client, *miniredis.Miniredis) {
	t.Helper()

	if cfg == nil {
		cfg = config.FromRoot(&sconfig.Root{})
	}

	root := cfg.GetRoot()
	if root == nil {
		panic("No root in config")
	}

	root.Redis = &sconfig.Redis{InnerVal: &sconfig.RedisMiniredis{Provider: sconfig.RedisProviderMiniredis}}

	r, server := NewTestMiniredis(t)
	return cfg, r, server
}
