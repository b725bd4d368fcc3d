package config

import (
	"github.com/rmorlok/connlifecycle/internal/schema/common"
)

// Flags controls where feature flag values are read from. Static values always come from config; when
// RedisOverrides is set, a value stored in redis under KeyPrefix+flag name takes precedence.
type Flags struct {
	Static         map[string]bool `json:"static,omitempty" yaml:"static,omitempty"`
	RedisOverrides bool            `json:"redis_overrides,omitempty" yaml:"redis_overrides,omitempty"`
	KeyPrefix      string          `json:"key_prefix,omitempty" yaml:"key_prefix,omitempty"`
}

func (f *Flags) GetKeyPrefixOrDefault() string {
	if f == nil || f.KeyPrefix == "" {
		return "flags:"
	}
	return f.KeyPrefix
}

func (f *Flags) Validate(vc *common.ValidationContext) error {
	if f == nil {
		return nil
	}

	for k := range f.Static {
		if k == "" {
			return vc.NewErrorForField("static", "flag names must not be empty")
		}
	}

	return nil
}
