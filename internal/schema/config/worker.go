package config

import (
	"github.com/hashicorp/go-multierror"
	"github.com/rmorlok/connlifecycle/internal/schema/common"
)

type Worker struct {
	HealthCheckPort *uint64 `json:"health_check_port,omitempty" yaml:"health_check_port,omitempty"`
	Concurrency     *int    `json:"concurrency,omitempty" yaml:"concurrency,omitempty"`
}

func (w *Worker) GetHealthCheckPort() uint64 {
	if w == nil || w.HealthCheckPort == nil {
		return 8081
	}
	return *w.HealthCheckPort
}

func (w *Worker) GetConcurrency() int {
	if w == nil || w.Concurrency == nil || *w.Concurrency <= 0 {
		return 4
	}
	return *w.Concurrency
}

func (w *Worker) Validate(vc *common.ValidationContext) error {
	if w == nil {
		return nil
	}

	result := &multierror.Error{}

	if w.HealthCheckPort != nil && (*w.HealthCheckPort == 0 || *w.HealthCheckPort > 65535) {
		result = multierror.Append(result, vc.NewErrorfForField("health_check_port", "invalid port %d", *w.HealthCheckPort))
	}

	if w.Concurrency != nil && *w.Concurrency < 0 {
		result = multierror.Append(result, vc.NewErrorForField("concurrency", "concurrency must not be negative"))
	}

	return result.ErrorOrNil()
}
