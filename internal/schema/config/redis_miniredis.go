package config

import "github.com/rmorlok/connlifecycle/internal/schema/common"

// RedisMiniredis runs an in-process redis. Only suitable for local development and tests.
type RedisMiniredis struct {
	Provider RedisProvider `json:"provider" yaml:"provider"`
}

func (d *RedisMiniredis) GetProvider() RedisProvider {
	return RedisProviderMiniredis
}

func (d *RedisMiniredis) Validate(vc *common.ValidationContext) error {
	return nil
}
