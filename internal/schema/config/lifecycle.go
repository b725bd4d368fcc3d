package config

import (
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/robfig/cron/v3"
	"github.com/rmorlok/connlifecycle/internal/schema/common"
)

type DeploymentMode string

const (
	DeploymentModeCloud      DeploymentMode = "cloud"
	DeploymentModeSelfHosted DeploymentMode = "self_hosted"
)

const (
	defaultReconcileCatalogCron   = "*/30 * * * *"
	defaultUpdateSupportStateCron = "0 0 * * *"
)

// Lifecycle configures how connector definitions are reconciled with the catalog and how their support
// states are maintained.
type Lifecycle struct {
	DeploymentMode DeploymentMode `json:"deployment_mode,omitempty" yaml:"deployment_mode,omitempty"`

	// PauseSyncsWithUnsupportedVersions is the static value of the flag that allows connections running
	// unsupported versions to be paused. Redis overrides take precedence when enabled.
	PauseSyncsWithUnsupportedVersions bool `json:"pause_syncs_with_unsupported_versions,omitempty" yaml:"pause_syncs_with_unsupported_versions,omitempty"`

	ReconcileCatalogCron    string         `json:"reconcile_catalog_cron,omitempty" yaml:"reconcile_catalog_cron,omitempty"`
	UpdateSupportStatesCron string         `json:"update_support_states_cron,omitempty" yaml:"update_support_states_cron,omitempty"`
	ReconcileLockDuration   *HumanDuration `json:"reconcile_lock_duration,omitempty" yaml:"reconcile_lock_duration,omitempty"`
	DefaultProtocolVersion  string         `json:"default_protocol_version,omitempty" yaml:"default_protocol_version,omitempty"`

	Flags *Flags `json:"flags,omitempty" yaml:"flags,omitempty"`
}

func (l *Lifecycle) GetDeploymentModeOrDefault() DeploymentMode {
	if l == nil || l.DeploymentMode == "" {
		return DeploymentModeSelfHosted
	}
	return l.DeploymentMode
}

func (l *Lifecycle) IsCloud() bool {
	return l.GetDeploymentModeOrDefault() == DeploymentModeCloud
}

func (l *Lifecycle) GetReconcileCatalogCronOrDefault() string {
	if l == nil || l.ReconcileCatalogCron == "" {
		return defaultReconcileCatalogCron
	}
	return l.ReconcileCatalogCron
}

func (l *Lifecycle) GetUpdateSupportStatesCronOrDefault() string {
	if l == nil || l.UpdateSupportStatesCron == "" {
		return defaultUpdateSupportStateCron
	}
	return l.UpdateSupportStatesCron
}

func (l *Lifecycle) GetReconcileLockDurationOrDefault() time.Duration {
	if l == nil || l.ReconcileLockDuration == nil || l.ReconcileLockDuration.Duration == 0 {
		return 10 * time.Minute
	}
	return l.ReconcileLockDuration.Duration
}

func (l *Lifecycle) GetDefaultProtocolVersionOrDefault() string {
	if l == nil || l.DefaultProtocolVersion == "" {
		return "0.2.0"
	}
	return l.DefaultProtocolVersion
}

func (l *Lifecycle) GetFlags() *Flags {
	if l == nil {
		return nil
	}
	return l.Flags
}

func (l *Lifecycle) Validate(vc *common.ValidationContext) error {
	if l == nil {
		return nil
	}

	result := &multierror.Error{}

	switch l.DeploymentMode {
	case "", DeploymentModeCloud, DeploymentModeSelfHosted:
	default:
		result = multierror.Append(result, vc.NewErrorfForField("deployment_mode", "unknown deployment mode '%s'", l.DeploymentMode))
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if l.ReconcileCatalogCron != "" {
		if _, err := parser.Parse(l.ReconcileCatalogCron); err != nil {
			result = multierror.Append(result, vc.NewErrorfForField("reconcile_catalog_cron", "invalid cron schedule: %s", err.Error()))
		}
	}

	if l.UpdateSupportStatesCron != "" {
		if _, err := parser.Parse(l.UpdateSupportStatesCron); err != nil {
			result = multierror.Append(result, vc.NewErrorfForField("update_support_states_cron", "invalid cron schedule: %s", err.Error()))
		}
	}

	if err := l.Flags.Validate(vc.PushField("flags")); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}
