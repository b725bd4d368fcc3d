package config

import (
	"net/url"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/rmorlok/connlifecycle/internal/schema/common"
)

type RegistryRemote struct {
	Provider   RegistryProvider `json:"provider" yaml:"provider"`
	BaseUrl    string           `json:"base_url" yaml:"base_url"`
	Timeout    *HumanDuration   `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	RetryCount int              `json:"retry_count,omitempty" yaml:"retry_count,omitempty"`
	UserAgent  string           `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
}

func (r *RegistryRemote) GetProvider() RegistryProvider {
	return RegistryProviderRemote
}

func (r *RegistryRemote) GetTimeoutOrDefault() time.Duration {
	if r.Timeout == nil || r.Timeout.Duration == 0 {
		return 30 * time.Second
	}
	return r.Timeout.Duration
}

func (r *RegistryRemote) GetUserAgentOrDefault() string {
	if r.UserAgent == "" {
		return "connlifecycle"
	}
	return r.UserAgent
}

func (r *RegistryRemote) Validate(vc *common.ValidationContext) error {
	result := &multierror.Error{}

	if r.BaseUrl == "" {
		result = multierror.Append(result, vc.NewErrorForField("base_url", "base_url must be specified"))
	} else if u, err := url.Parse(r.BaseUrl); err != nil || u.Scheme == "" || u.Host == "" {
		result = multierror.Append(result, vc.NewErrorfForField("base_url", "base_url '%s' is not an absolute url", r.BaseUrl))
	}

	if r.RetryCount < 0 {
		result = multierror.Append(result, vc.NewErrorForField("retry_count", "retry_count must not be negative"))
	}

	return result.ErrorOrNil()
}
