package config

import (
	"log/slog"

	"github.com/hashicorp/go-multierror"
	"github.com/rmorlok/connlifecycle/internal/schema/common"
)

type Root struct {
	Database  *Database      `json:"database" yaml:"database"`
	Logging   *LoggingConfig `json:"logging,omitempty" yaml:"logging,omitempty"`
	Redis     *Redis         `json:"redis,omitempty" yaml:"redis,omitempty"`
	Registry  *Registry      `json:"registry" yaml:"registry"`
	Lifecycle *Lifecycle     `json:"lifecycle,omitempty" yaml:"lifecycle,omitempty"`
	Worker    *Worker        `json:"worker,omitempty" yaml:"worker,omitempty"`
}

func (r *Root) GetRootLogger() *slog.Logger {
	if r == nil || r.Logging == nil {
		return (&LoggingConfigNone{Type: LoggingConfigTypeNone}).GetRootLogger()
	}

	return r.Logging.GetRootLogger()
}

func (r *Root) Validate() error {
	vc := &common.ValidationContext{Path: "$"}
	result := &multierror.Error{}

	if r.Database == nil {
		result = multierror.Append(result, vc.NewError("database block is required"))
	} else if err := r.Database.Validate(vc.PushField("database")); err != nil {
		result = multierror.Append(result, err)
	}

	if r.Registry == nil {
		result = multierror.Append(result, vc.NewError("registry block is required"))
	} else if err := r.Registry.Validate(vc.PushField("registry")); err != nil {
		result = multierror.Append(result, err)
	}

	if r.Redis != nil {
		if err := r.Redis.Validate(vc.PushField("redis")); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if err := r.Lifecycle.Validate(vc.PushField("lifecycle")); err != nil {
		result = multierror.Append(result, err)
	}

	if err := r.Worker.Validate(vc.PushField("worker")); err != nil {
		result = multierror.Append(result, err)
	}

	if r.Lifecycle.GetFlags() != nil && r.Lifecycle.GetFlags().RedisOverrides && r.Redis == nil {
		result = multierror.Append(result, vc.PushField("lifecycle").PushField("flags").NewErrorForField("redis_overrides", "redis overrides require a redis block"))
	}

	return result.ErrorOrNil()
}
