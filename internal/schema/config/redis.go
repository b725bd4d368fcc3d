package config

import (
	"github.com/invopop/jsonschema"
	"github.com/rmorlok/connlifecycle/internal/schema/common"
)

type RedisProvider string

const (
	RedisProviderMiniredis RedisProvider = "miniredis"
	RedisProviderRedis     RedisProvider = "redis"
)

// RedisImpl is the interface implemented by concrete Redis configurations.
type RedisImpl interface {
	GetProvider() RedisProvider
	Validate(vc *common.ValidationContext) error
}

// Redis is the holder for a RedisImpl instance.
type Redis struct {
	InnerVal RedisImpl `json:"-" yaml:"-"`
}

func (Redis) JSONSchema() *jsonschema.Schema {
	return discriminatedObjectSchema("provider", string(RedisProviderRedis), string(RedisProviderMiniredis))
}

func (r *Redis) GetProvider() RedisProvider {
	if r == nil || r.InnerVal == nil {
		return ""
	}
	return r.InnerVal.GetProvider()
}

func (r *Redis) Validate(vc *common.ValidationContext) error {
	if r == nil || r.InnerVal == nil {
		return vc.NewError("redis must be specified")
	}
	return r.InnerVal.Validate(vc)
}

var _ RedisImpl = (*Redis)(nil)
